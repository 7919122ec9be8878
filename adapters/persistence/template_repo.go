package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const templatesTable = "resume_templates"

var templateColumns = []string{
	"template_id", "name", "description", "preview_image", "category", "is_premium", "features", "color", "created_at",
}

const templateUpsertSuffix = `ON CONFLICT (template_id) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	preview_image = EXCLUDED.preview_image,
	category = EXCLUDED.category,
	is_premium = EXCLUDED.is_premium,
	features = EXCLUDED.features,
	color = EXCLUDED.color,
	is_active = EXCLUDED.is_active`

type postgresTemplateRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresTemplateRepo(db *pgxpool.Pool, logger logger.Logger) catalog.Repository {
	return &postgresTemplateRepo{db: db, logger: logger}
}

func (r *postgresTemplateRepo) ListActive(ctx context.Context) ([]catalog.TemplateMeta, error) {
	ctx, span := tracer.Start(ctx, "TemplateRepo.ListActive")
	defer span.End()

	query, args, err := psql.Select(templateColumns...).
		From(templatesTable).
		Where(sq.Eq{"is_active": true}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build template query", err)
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, r.unavailable("acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, r.unavailable("query templates", err)
	}
	defer rows.Close()

	templates := make([]catalog.TemplateMeta, 0)
	for rows.Next() {
		var t catalog.TemplateMeta
		var features string
		var createdAt time.Time
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.PreviewImage, &t.Category, &t.IsPremium, &features, &t.Color, &createdAt); err != nil {
			return nil, r.unavailable("scan template row", err)
		}
		t.Features = parseFeatures(features, t.ID, r.logger)
		t.CreatedAt = createdAt.UTC()
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.unavailable("iterate templates", err)
	}
	return templates, nil
}

func (r *postgresTemplateRepo) Upsert(ctx context.Context, t catalog.TemplateMeta, active bool) error {
	features, err := marshalFeatures(t.Features)
	if err != nil {
		return apperror.NewInternal("failed to marshal template features", err)
	}

	query, args, err := psql.Insert(templatesTable).
		Columns("template_id", "name", "description", "preview_image", "category", "is_premium", "features", "color", "is_active").
		Values(string(t.ID), t.Name, t.Description, t.PreviewImage, t.Category, t.IsPremium, features, t.Color, active).
		Suffix(templateUpsertSuffix).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build template upsert", err)
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return r.unavailable("acquire connection", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, query, args...); err != nil {
		return r.unavailable("upsert template", err)
	}
	return nil
}

func (r *postgresTemplateRepo) unavailable(op string, err error) error {
	r.logger.Error("Template store failure", err, zap.String("op", op))
	return apperror.NewStoreUnavailable(op+" failed", err)
}

// parseFeatures decodes the stored features list. Malformed JSON yields an empty list.
func parseFeatures(raw string, id catalog.ID, log logger.Logger) []string {
	features := []string{}
	if raw == "" || raw == "null" {
		return features
	}
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		log.Warn("Failed to unmarshal template features", zap.String("template_id", string(id)), zap.Error(err))
		return []string{}
	}
	if features == nil {
		features = []string{}
	}
	return features
}

func marshalFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("marshal features: %w", err)
	}
	return string(raw), nil
}
