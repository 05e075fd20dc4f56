package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"scheme-details/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schemes (
	code            TEXT PRIMARY KEY,
	details         TEXT NOT NULL,
	return_analysis TEXT NOT NULL,
	similar_funds   TEXT NOT NULL,
	updated_at      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scheme_nav (
	scheme_code TEXT NOT NULL,
	date        TEXT NOT NULL,
	date_unix   INTEGER NOT NULL,
	nav         REAL NOT NULL,
	PRIMARY KEY (scheme_code, date_unix)
);
CREATE TABLE IF NOT EXISTS projections (
	id              TEXT PRIMARY KEY,
	amount          REAL NOT NULL,
	tenure_years    REAL NOT NULL,
	mode            TEXT NOT NULL,
	annual_rate     REAL NOT NULL,
	total_invested  REAL NOT NULL,
	estimated_value REAL NOT NULL,
	total_returns   REAL NOT NULL,
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projections_created_at ON projections(created_at);
`

// SQLiteStore keeps imported scheme bundles and the projection history. NAV
// dates are stored with their original offset and ordered by instant; a
// bundle that repeats a date is rejected, as in BundleRepository.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path (or an in-memory DSN such as ":memory:") and ensures
// the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !memory && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if memory {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db}
	if err := s.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Import replaces everything stored for the bundle's scheme.
func (s *SQLiteStore) Import(ctx context.Context, b domain.Bundle) error {
	if strings.TrimSpace(b.Scheme.Code) == "" {
		return errors.New("bundle has no scheme code")
	}
	b, err := normalizeBundle(b)
	if err != nil {
		return err
	}

	details, err := json.Marshal(b.Scheme)
	if err != nil {
		return err
	}
	analysis, err := json.Marshal(b.ReturnAnalysis)
	if err != nil {
		return err
	}
	similar, err := json.Marshal(b.SimilarFunds)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schemes(code, details, return_analysis, similar_funds, updated_at)
		VALUES(?,?,?,?,?)
		ON CONFLICT(code) DO UPDATE SET
			details=excluded.details,
			return_analysis=excluded.return_analysis,
			similar_funds=excluded.similar_funds,
			updated_at=excluded.updated_at`,
		b.Scheme.Code, string(details), string(analysis), string(similar), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("upsert scheme %s: %w", b.Scheme.Code, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM scheme_nav WHERE scheme_code=?`, b.Scheme.Code); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO scheme_nav(scheme_code, date, date_unix, nav) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, sample := range b.Nav {
		if _, err := stmt.ExecContext(ctx, b.Scheme.Code,
			sample.Date.Format(time.RFC3339Nano), sample.Date.UnixNano(), sample.Nav,
		); err != nil {
			return fmt.Errorf("insert nav %s: %w", sample.Date.Format(time.DateOnly), err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) loadScheme(ctx context.Context, code string) (details, analysis, similar string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT details, return_analysis, similar_funds FROM schemes WHERE code=?`, code,
	).Scan(&details, &analysis, &similar)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("%s: %w", code, ErrSchemeNotFound)
	}
	return details, analysis, similar, err
}

func (s *SQLiteStore) Scheme(ctx context.Context, code string) (domain.SchemeDetails, error) {
	raw, _, _, err := s.loadScheme(ctx, code)
	if err != nil {
		return domain.SchemeDetails{}, err
	}
	var details domain.SchemeDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return domain.SchemeDetails{}, fmt.Errorf("decode scheme %s: %w", code, err)
	}
	return details, nil
}

func (s *SQLiteStore) ReturnAnalysis(ctx context.Context, code string) (domain.ReturnAnalysis, error) {
	_, raw, _, err := s.loadScheme(ctx, code)
	if err != nil {
		return domain.ReturnAnalysis{}, err
	}
	var analysis domain.ReturnAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return domain.ReturnAnalysis{}, fmt.Errorf("decode return analysis %s: %w", code, err)
	}
	return analysis, nil
}

func (s *SQLiteStore) SimilarFunds(ctx context.Context, code string) ([]domain.SimilarFund, error) {
	_, _, raw, err := s.loadScheme(ctx, code)
	if err != nil {
		return nil, err
	}
	var funds []domain.SimilarFund
	if err := json.Unmarshal([]byte(raw), &funds); err != nil {
		return nil, fmt.Errorf("decode similar funds %s: %w", code, err)
	}
	return funds, nil
}

func (s *SQLiteStore) NavSeries(ctx context.Context, code string) ([]domain.NavSample, error) {
	if _, _, _, err := s.loadScheme(ctx, code); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, nav FROM scheme_nav WHERE scheme_code=? ORDER BY date_unix ASC`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.NavSample
	for rows.Next() {
		var (
			date string
			nav  float64
		)
		if err := rows.Scan(&date, &nav); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("nav date %q: %w", date, err)
		}
		out = append(out, domain.NavSample{Date: t, Nav: nav})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, record domain.ProjectionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projections(id, amount, tenure_years, mode, annual_rate,
			total_invested, estimated_value, total_returns, created_at)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		record.ID, record.Input.Amount, record.Input.TenureYears, string(record.Input.Mode), record.AnnualRate,
		record.Result.TotalInvested, record.Result.EstimatedValue, record.Result.TotalReturns,
		record.CreatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.ProjectionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, tenure_years, mode, annual_rate,
			total_invested, estimated_value, total_returns, created_at
		FROM projections ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProjectionRecord
	for rows.Next() {
		var (
			r       domain.ProjectionRecord
			mode    string
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Input.Amount, &r.Input.TenureYears, &mode, &r.AnnualRate,
			&r.Result.TotalInvested, &r.Result.EstimatedValue, &r.Result.TotalReturns, &created); err != nil {
			return nil, err
		}
		r.Input.Mode = domain.Mode(mode)
		r.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
