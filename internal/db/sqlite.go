package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-classifier/internal/types"
)

// sqliteTimeLayout is fixed width so created_at sorts chronologically as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps the prediction history in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	content_hash TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	confidence REAL NOT NULL DEFAULT 0,
	skills TEXT NOT NULL DEFAULT '[]',
	error TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS predictions_created_at_idx ON predictions (created_at DESC);
`

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if missing.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := database.ExecContext(ctx, sqliteSchema); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: database}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Record stores one processed document
func (s *SQLiteStore) Record(ctx context.Context, record *types.PredictionRecord) error {
	p := FromRecord(record)
	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO predictions (id, source, content_hash, category, confidence, skills, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Source, p.ContentHash, p.Category, p.Confidence, string(skills), p.Error,
		p.DurationMS, p.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction %s: %w", p.ID, err)
	}
	return nil
}

// Recent returns the latest predictions, newest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Prediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, content_hash, category, confidence, skills, error, duration_ms, created_at
		 FROM predictions
		 ORDER BY created_at DESC
		 LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []Prediction
	for rows.Next() {
		var p Prediction
		var id, skills, createdAt string
		if err := rows.Scan(&id, &p.Source, &p.ContentHash, &p.Category, &p.Confidence,
			&skills, &p.Error, &p.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid prediction id %q: %w", id, err)
		}
		if p.Skills, err = decodeSkills([]byte(skills)); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", createdAt, err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return predictions, nil
}
