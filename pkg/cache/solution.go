package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vrpbench/internal/model"
	"vrpbench/internal/solver"
)

// SolutionCache специализированный кэш решений VRP. Ключ строится из хеша
// экземпляра, имени решателя, лимита времени и хеша опций, поэтому повторный
// запуск того же решателя на той же задаче с тем же бюджетом отдаёт
// закэшированное решение.
type SolutionCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// NewSolutionCache создаёт кэш решений поверх произвольного бэкенда
func NewSolutionCache(cache Cache, defaultTTL time.Duration) *SolutionCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolutionCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает закэшированное решение. Второй результат false означает
// промах кэша.
func (sc *SolutionCache) Get(ctx context.Context, inst *model.VRPInstance, solverName string, timeLimit time.Duration, opts solver.Options) (*model.VRPSolution, bool, error) {
	key := sc.key(inst, solverName, timeLimit, opts)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var sol model.VRPSolution
	if err := json.Unmarshal(data, &sol); err != nil {
		// Повреждённая запись, удаляем и считаем промахом
		_ = sc.cache.Delete(ctx, key)
		return nil, false, nil
	}

	return &sol, true, nil
}

// Set сохраняет решение в кэш. Решения-заглушки с ошибкой не кэшируются:
// повторная попытка может пройти.
func (sc *SolutionCache) Set(ctx context.Context, inst *model.VRPInstance, timeLimit time.Duration, opts solver.Options, sol *model.VRPSolution, ttl time.Duration) error {
	if sol == nil || sol.IsError() {
		return nil
	}
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	data, err := json.Marshal(sol)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, sc.key(inst, sol.SolverName, timeLimit, opts), data, ttl)
}

// Invalidate удаляет все закэшированные решения для экземпляра
func (sc *SolutionCache) Invalidate(ctx context.Context, inst *model.VRPInstance) error {
	pattern := fmt.Sprintf("solve:%s:*", InstanceHash(inst))
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll удаляет весь кэш решений
func (sc *SolutionCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}

func (sc *SolutionCache) key(inst *model.VRPInstance, solverName string, timeLimit time.Duration, opts solver.Options) string {
	return BuildSolveKeyWithOptions(InstanceHash(inst), solverName, timeLimit, OptionsHash(opts))
}
