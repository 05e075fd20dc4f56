package repository

import (
	"context"

	"scheme-details/domain"
)

type ProjectionRepository interface {
	Save(ctx context.Context, record domain.ProjectionRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ProjectionRecord, error)
}
