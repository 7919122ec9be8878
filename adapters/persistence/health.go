package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/pkg/apperror"
)

type postgresHealth struct {
	db *pgxpool.Pool
}

// NewPostgresHealth reports whether both builder tables are reachable.
func NewPostgresHealth(db *pgxpool.Pool) service.StoreHealth {
	return &postgresHealth{db: db}
}

func (h *postgresHealth) Check(ctx context.Context) error {
	conn, err := h.db.Acquire(ctx)
	if err != nil {
		return apperror.NewStoreUnavailable("acquire connection failed", err)
	}
	defer conn.Release()

	var profiles, templates bool
	err = conn.QueryRow(ctx,
		`SELECT to_regclass('public.user_profiles') IS NOT NULL, to_regclass('public.resume_templates') IS NOT NULL`,
	).Scan(&profiles, &templates)
	if err != nil {
		return apperror.NewStoreUnavailable("health query failed", err)
	}
	if !profiles || !templates {
		return apperror.NewStoreUnavailable(fmt.Sprintf("tables missing (user_profiles=%t, resume_templates=%t)", profiles, templates), nil)
	}
	return nil
}

type sqliteHealth struct {
	db *sql.DB
}

func NewSQLiteHealth(db *sql.DB) service.StoreHealth {
	return &sqliteHealth{db: db}
}

func (h *sqliteHealth) Check(ctx context.Context) error {
	conn, err := h.db.Conn(ctx)
	if err != nil {
		return apperror.NewStoreUnavailable("acquire connection failed", err)
	}
	defer conn.Close()

	var n int
	err = conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('user_profiles', 'resume_templates')`,
	).Scan(&n)
	if err != nil {
		return apperror.NewStoreUnavailable("health query failed", err)
	}
	if n != 2 {
		return apperror.NewStoreUnavailable(fmt.Sprintf("expected 2 builder tables, found %d", n), nil)
	}
	return nil
}
