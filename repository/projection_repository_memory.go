package repository

import (
	"context"
	"sync"

	"scheme-details/domain"
)

// ProjectionRepositoryMemory is an in-memory implementation of ProjectionRepository.
type ProjectionRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.ProjectionRecord
}

// NewProjectionRepositoryMemory creates a new in-memory projection repository.
func NewProjectionRepositoryMemory() *ProjectionRepositoryMemory {
	return &ProjectionRepositoryMemory{
		data: []domain.ProjectionRecord{},
	}
}

// Save stores the projection in memory.
func (r *ProjectionRepositoryMemory) Save(
	_ context.Context,
	record domain.ProjectionRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *ProjectionRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.ProjectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.ProjectionRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
