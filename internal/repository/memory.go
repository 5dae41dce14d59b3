package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vrpbench/internal/model"
)

// MemoryResultRepository потокобезопасное in-memory хранилище результатов
type MemoryResultRepository struct {
	mu      sync.RWMutex
	records []*ResultRecord
	byID    map[string]*ResultRecord
}

// NewMemoryResultRepository создаёт пустое хранилище
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		byID: make(map[string]*ResultRecord),
	}
}

func (r *MemoryResultRepository) Save(ctx context.Context, sol *model.VRPSolution) (string, error) {
	rec, err := NewRecord(sol)
	if err != nil {
		return "", err
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	r.byID[rec.ID] = rec

	return rec.ID, nil
}

func (r *MemoryResultRepository) GetByID(ctx context.Context, id string) (*ResultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrResultNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *MemoryResultRepository) List(ctx context.Context, opts *ListOptions) ([]*ResultRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*ResultRecord
	// Новые сначала
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if opts != nil && !matchFilter(rec, opts.Filter) {
			continue
		}
		matched = append(matched, rec)
	}
	total := int64(len(matched))

	if opts != nil {
		if opts.Offset > 0 {
			if opts.Offset >= len(matched) {
				matched = nil
			} else {
				matched = matched[opts.Offset:]
			}
		}
		if opts.Limit > 0 && opts.Limit < len(matched) {
			matched = matched[:opts.Limit]
		}
	}

	out := make([]*ResultRecord, len(matched))
	for i, rec := range matched {
		clone := *rec
		out[i] = &clone
	}
	return out, total, nil
}

func (r *MemoryResultRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrResultNotFound
	}
	delete(r.byID, id)
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryResultRepository) Clear(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.records))
	r.records = nil
	r.byID = make(map[string]*ResultRecord)
	return n, nil
}

func matchFilter(rec *ResultRecord, f *ListFilter) bool {
	if f == nil {
		return true
	}
	if f.SolverName != "" && rec.SolverName != f.SolverName {
		return false
	}
	if f.InstanceName != "" && rec.InstanceName != f.InstanceName {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	return true
}
