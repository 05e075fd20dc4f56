package repository

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"scheme-details/domain"
)

//go:embed bundle/*.json
var embeddedBundles embed.FS

// BundleRepository serves schemes from bundles held in memory.
type BundleRepository struct {
	bundles map[string]domain.Bundle
}

// NewBundleRepository indexes bundles by scheme code. NAV samples are sorted
// by date and must not repeat a date; a later bundle with the same code
// replaces an earlier one.
func NewBundleRepository(bundles ...domain.Bundle) (*BundleRepository, error) {
	r := &BundleRepository{bundles: make(map[string]domain.Bundle, len(bundles))}
	for _, b := range bundles {
		if strings.TrimSpace(b.Scheme.Code) == "" {
			return nil, fmt.Errorf("bundle %q has no scheme code", b.Scheme.Name)
		}
		nb, err := normalizeBundle(b)
		if err != nil {
			return nil, err
		}
		r.bundles[b.Scheme.Code] = nb
	}
	return r, nil
}

// NewEmbeddedBundleRepository serves the bundles compiled into the binary.
func NewEmbeddedBundleRepository() (*BundleRepository, error) {
	bundles, err := LoadEmbeddedBundles()
	if err != nil {
		return nil, err
	}
	return NewBundleRepository(bundles...)
}

func LoadEmbeddedBundles() ([]domain.Bundle, error) {
	entries, err := fs.ReadDir(embeddedBundles, "bundle")
	if err != nil {
		return nil, err
	}
	var out []domain.Bundle
	for _, e := range entries {
		data, err := embeddedBundles.ReadFile(path.Join("bundle", e.Name()))
		if err != nil {
			return nil, err
		}
		b, err := DecodeBundle(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, b)
	}
	return out, nil
}

func ReadBundleFile(name string) (domain.Bundle, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return domain.Bundle{}, err
	}
	return DecodeBundle(data)
}

func DecodeBundle(data []byte) (domain.Bundle, error) {
	var b domain.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return domain.Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	return b, nil
}

// normalizeBundle sorts the NAV samples by date and rejects repeated dates.
func normalizeBundle(b domain.Bundle) (domain.Bundle, error) {
	nav := slices.Clone(b.Nav)
	slices.SortStableFunc(nav, func(a, c domain.NavSample) int {
		return a.Date.Compare(c.Date)
	})
	for i := 1; i < len(nav); i++ {
		if nav[i].Date.Equal(nav[i-1].Date) {
			return domain.Bundle{}, fmt.Errorf("%s: %w: %s",
				b.Scheme.Code, ErrDuplicateNavDate, nav[i].Date.Format(time.RFC3339))
		}
	}
	b.Nav = nav
	return b, nil
}

// Codes lists the scheme codes in sorted order.
func (r *BundleRepository) Codes() []string {
	codes := make([]string, 0, len(r.bundles))
	for code := range r.bundles {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (r *BundleRepository) Bundles() []domain.Bundle {
	out := make([]domain.Bundle, 0, len(r.bundles))
	for _, code := range r.Codes() {
		out = append(out, r.bundles[code])
	}
	return out
}

func (r *BundleRepository) lookup(code string) (domain.Bundle, error) {
	b, ok := r.bundles[code]
	if !ok {
		return domain.Bundle{}, fmt.Errorf("%s: %w", code, ErrSchemeNotFound)
	}
	return b, nil
}

func (r *BundleRepository) Scheme(_ context.Context, code string) (domain.SchemeDetails, error) {
	b, err := r.lookup(code)
	if err != nil {
		return domain.SchemeDetails{}, err
	}
	return b.Scheme, nil
}

func (r *BundleRepository) NavSeries(_ context.Context, code string) ([]domain.NavSample, error) {
	b, err := r.lookup(code)
	if err != nil {
		return nil, err
	}
	return slices.Clone(b.Nav), nil
}

func (r *BundleRepository) ReturnAnalysis(_ context.Context, code string) (domain.ReturnAnalysis, error) {
	b, err := r.lookup(code)
	if err != nil {
		return domain.ReturnAnalysis{}, err
	}
	return b.ReturnAnalysis, nil
}

func (r *BundleRepository) SimilarFunds(_ context.Context, code string) ([]domain.SimilarFund, error) {
	b, err := r.lookup(code)
	if err != nil {
		return nil, err
	}
	return slices.Clone(b.SimilarFunds), nil
}
