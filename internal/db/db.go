// Package db persists the prediction history in PostgreSQL or SQLite.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-classifier/internal/types"
)

// Store is a prediction history backend.
type Store interface {
	Record(ctx context.Context, record *types.PredictionRecord) error
	Recent(ctx context.Context, limit int) ([]Prediction, error)
	Close() error
}

// Open connects to the store named by databaseURL: postgres:// and
// postgresql:// URLs use PostgreSQL; sqlite:// URLs, sqlite: and file: DSNs
// and bare paths ending in .db or .sqlite use SQLite. The schema is created
// if missing.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch {
	case databaseURL == "":
		return nil, fmt.Errorf("database URL is empty")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		database, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.pool.Close()
			return nil, err
		}
		return database, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite://"))
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite:"))
	case strings.HasPrefix(databaseURL, "file:"),
		strings.HasSuffix(databaseURL, ".db"),
		strings.HasSuffix(databaseURL, ".sqlite"):
		return OpenSQLite(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database URL %q", redact(databaseURL))
	}
}

// redact hides credentials in a URL before it is logged.
func redact(databaseURL string) string {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return databaseURL
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return scheme + "://***@" + rest[at+1:]
	}
	return databaseURL
}
