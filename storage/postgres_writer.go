package storage

import (
	"context"
	"fmt"
	"saucedemo-e2e/models"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresWriter keeps the history of check results across runs.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sort_checks (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID NOT NULL,
	case_name TEXT NOT NULL,
	sort_field TEXT NOT NULL,
	sort_direction TEXT NOT NULL,
	sort_value TEXT NOT NULL,
	passed BOOLEAN NOT NULL,
	divergence INTEGER NOT NULL DEFAULT -1,
	error TEXT,
	raw_values TEXT[] NOT NULL DEFAULT '{}',
	sort_values TEXT[] NOT NULL DEFAULT '{}',
	dropped TEXT[] NOT NULL DEFAULT '{}',
	duration_ms BIGINT NOT NULL,
	checked_at TIMESTAMPTZ NOT NULL,
	UNIQUE (run_id, case_name)
);

CREATE INDEX IF NOT EXISTS idx_sort_checks_checked_at ON sort_checks(checked_at);
CREATE INDEX IF NOT EXISTS idx_sort_checks_passed ON sort_checks(passed);
`

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := w.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

const insertSQL = `
INSERT INTO sort_checks (
	run_id, case_name, sort_field, sort_direction, sort_value, passed,
	divergence, error, raw_values, sort_values, dropped, duration_ms, checked_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (run_id, case_name) DO NOTHING;
`

func (w *PostgresWriter) WriteBatch(ctx context.Context, results []models.CheckResult) error {
	if len(results) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(insertSQL, insertArgs(r)...)
	}

	batchResults := w.pool.SendBatch(ctx, batch)
	defer batchResults.Close()

	for i := range results {
		if _, err := batchResults.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}
	return nil
}

func insertArgs(r models.CheckResult) []any {
	dropped := make([]string, len(r.Dropped))
	for i, d := range r.Dropped {
		dropped[i] = fmt.Sprintf("%d:%s", d.Position, d.Raw)
	}

	var errText *string
	if r.Err != "" {
		errText = &r.Err
	}

	return []any{
		r.RunID,
		r.Case,
		string(r.Mode.Field),
		string(r.Mode.Direction),
		r.Mode.Value,
		r.Passed,
		r.Divergence,
		errText,
		nonNil(r.Raw),
		nonNil(r.Values),
		dropped,
		r.Duration.Milliseconds(),
		r.CheckedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
