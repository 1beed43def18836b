package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-classifier/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	id UUID PRIMARY KEY,
	source TEXT NOT NULL,
	content_hash TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	skills JSONB NOT NULL DEFAULT '[]',
	error TEXT NOT NULL DEFAULT '',
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS predictions_created_at_idx ON predictions (created_at DESC);
`

// EnsureSchema creates the predictions table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Record stores one processed document
func (db *DB) Record(ctx context.Context, record *types.PredictionRecord) error {
	p := FromRecord(record)
	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO predictions (id, source, content_hash, category, confidence, skills, error, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Source, p.ContentHash, p.Category, p.Confidence, skills, p.Error, p.DurationMS, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction %s: %w", p.ID, err)
	}
	return nil
}

// Recent returns the latest predictions, newest first
func (db *DB) Recent(ctx context.Context, limit int) ([]Prediction, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, content_hash, category, confidence, skills, error, duration_ms, created_at
		 FROM predictions
		 ORDER BY created_at DESC
		 LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	predictions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Prediction, error) {
		var p Prediction
		var skills []byte
		if err := row.Scan(&p.ID, &p.Source, &p.ContentHash, &p.Category, &p.Confidence,
			&skills, &p.Error, &p.DurationMS, &p.CreatedAt); err != nil {
			return p, err
		}
		p.Skills, err = decodeSkills(skills)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan predictions: %w", err)
	}
	return predictions, nil
}
