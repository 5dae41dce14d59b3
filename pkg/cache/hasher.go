package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"vrpbench/internal/model"
	"vrpbench/internal/solver"
)

// InstanceHash вычисляет хеш экземпляра задачи для использования как ключ
// кэша. Хеш покрывает всё, что влияет на решение: локации, транспорт,
// матрицу расстояний и тип задачи. Имя экземпляра не входит в хеш.
func InstanceHash(inst *model.VRPInstance) string {
	if inst == nil {
		return ""
	}

	hash := sha256.Sum256(instanceToCanonical(inst))
	return hex.EncodeToString(hash[:16])
}

// instanceToCanonical создаёт детерминированное представление экземпляра
func instanceToCanonical(inst *model.VRPInstance) []byte {
	var result []byte

	result = append(result, []byte(fmt.Sprintf("p:%s;", inst.ProblemType))...)

	// Локации сортируем по ID
	locs := make([]model.Location, len(inst.Locations))
	copy(locs, inst.Locations)
	sort.Slice(locs, func(i, j int) bool { return locs[i].ID < locs[j].ID })
	for _, l := range locs {
		result = append(result, []byte(fmt.Sprintf("l:%d:%.6f:%.6f:%d:%d:%d:%d;",
			l.ID, l.X, l.Y, l.Demand, l.ServiceTime, l.TimeWindowStart, l.TimeWindowEnd))...)
	}

	// Транспорт сортируем по ID
	vehicles := make([]model.Vehicle, len(inst.Vehicles))
	copy(vehicles, inst.Vehicles)
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	for _, v := range vehicles {
		result = append(result, []byte(fmt.Sprintf("v:%d:%d:%d:%d;",
			v.ID, v.Capacity, v.DepotID, v.MaxTime))...)
	}

	// Матрица в порядке строк
	for i, row := range inst.DistanceMatrix {
		for j, d := range row {
			result = append(result, []byte(fmt.Sprintf("m:%d:%d:%.6f;", i, j, d))...)
		}
	}

	return result
}

// OptionsHash вычисляет хеш опций решателя. Пустые опции дают пустой хеш.
func OptionsHash(opts solver.Options) string {
	if len(opts) == 0 {
		return ""
	}

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data []byte
	for _, k := range keys {
		data = append(data, []byte(fmt.Sprintf("%s=%v;", k, opts[k]))...)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// BuildSolveKey строит ключ кэша для результата решения. Хеш экземпляра
// идёт первым, чтобы инвалидация по экземпляру работала префиксным паттерном.
// Лимит времени входит в ключ: решение, найденное за секундный бюджет, не
// должно отдаваться как результат минутного.
func BuildSolveKey(instanceHash, solverName string, timeLimit time.Duration) string {
	return fmt.Sprintf("solve:%s:%s:%s", instanceHash, solverName, timeLimit)
}

// BuildSolveKeyWithOptions строит ключ с учётом опций решателя
func BuildSolveKeyWithOptions(instanceHash, solverName string, timeLimit time.Duration, optionsHash string) string {
	if optionsHash == "" {
		return BuildSolveKey(instanceHash, solverName, timeLimit)
	}
	return fmt.Sprintf("%s:%s", BuildSolveKey(instanceHash, solverName, timeLimit), optionsHash)
}

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
