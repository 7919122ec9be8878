package persistence

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type sqliteTemplateRepo struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLiteTemplateRepo(db *sql.DB, logger logger.Logger) catalog.Repository {
	return &sqliteTemplateRepo{db: db, logger: logger}
}

func (r *sqliteTemplateRepo) ListActive(ctx context.Context) ([]catalog.TemplateMeta, error) {
	ctx, span := tracer.Start(ctx, "TemplateRepo.ListActive")
	defer span.End()

	query, args, err := sqlite.Select(templateColumns...).
		From(templatesTable).
		Where(sq.Eq{"is_active": 1}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build template query", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, r.unavailable("acquire connection", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, r.unavailable("query templates", err)
	}
	defer rows.Close()

	templates := make([]catalog.TemplateMeta, 0)
	for rows.Next() {
		var t catalog.TemplateMeta
		var features, createdAt sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.PreviewImage, &t.Category, &t.IsPremium, &features, &t.Color, &createdAt); err != nil {
			return nil, r.unavailable("scan template row", err)
		}
		t.Features = parseFeatures(features.String, t.ID, r.logger)
		t.CreatedAt = sqliteTime(createdAt)
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.unavailable("iterate templates", err)
	}
	return templates, nil
}

func (r *sqliteTemplateRepo) Upsert(ctx context.Context, t catalog.TemplateMeta, active bool) error {
	features, err := marshalFeatures(t.Features)
	if err != nil {
		return apperror.NewInternal("failed to marshal template features", err)
	}

	query, args, err := sqlite.Insert(templatesTable).
		Columns("template_id", "name", "description", "preview_image", "category", "is_premium", "features", "color", "is_active").
		Values(string(t.ID), t.Name, t.Description, t.PreviewImage, t.Category, t.IsPremium, features, t.Color, active).
		Suffix(templateUpsertSuffix).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build template upsert", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return r.unavailable("acquire connection", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, query, args...); err != nil {
		return r.unavailable("upsert template", err)
	}
	return nil
}

func (r *sqliteTemplateRepo) unavailable(op string, err error) error {
	r.logger.Error("Template store failure", err, zap.String("op", op))
	return apperror.NewStoreUnavailable(op+" failed", err)
}
