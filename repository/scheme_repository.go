package repository

import (
	"context"
	"errors"

	"scheme-details/domain"
)

var (
	ErrSchemeNotFound   = errors.New("scheme not found")
	ErrDuplicateNavDate = errors.New("duplicate nav date")
)

// SchemeRepository serves the static data of a scheme. NavSeries is ordered
// by date ascending.
type SchemeRepository interface {
	Scheme(ctx context.Context, code string) (domain.SchemeDetails, error)
	NavSeries(ctx context.Context, code string) ([]domain.NavSample, error)
	ReturnAnalysis(ctx context.Context, code string) (domain.ReturnAnalysis, error)
	SimilarFunds(ctx context.Context, code string) ([]domain.SimilarFund, error)
}
