package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/khoahotran/resume-builder/pkg/logger"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// NewSQLiteDB opens the sqlite database at path. Writes are serialised on a single connection.
func NewSQLiteDB(ctx context.Context, path string, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database failed: %w", err)
	}

	log.Info("Open SQLite database successfully.")
	return db, nil
}

// sqliteTime parses the timestamp text sqlite hands back for CURRENT_TIMESTAMP columns.
func sqliteTime(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
