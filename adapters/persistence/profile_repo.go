package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const profilesTable = "user_profiles"

var tracer = otel.Tracer("persistence")

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID string) (*profile.Profile, bool, error) {
	ctx, span := tracer.Start(ctx, "ProfileRepo.GetByUserID")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "postgresql"))

	query, args, err := psql.Select(profile.Columns...).Column(profile.ColUpdatedAt).
		From(profilesTable).
		Where(sq.Eq{profile.ColUserID: userID}).
		ToSql()
	if err != nil {
		return nil, false, apperror.NewInternal("failed to build profile query", err)
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, false, r.unavailable("acquire connection", userID, err)
	}
	defer conn.Release()

	values := make([]*string, len(profile.Columns))
	dest := make([]any, 0, len(values)+1)
	for i := range values {
		dest = append(dest, &values[i])
	}
	var updatedAt time.Time
	dest = append(dest, &updatedAt)

	if err := conn.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		return nil, false, r.unavailable("query profile", userID, err)
	}

	rec := profile.Record{profile.ColUserID: userID}
	for i, col := range profile.Columns {
		rec[col] = values[i]
	}

	p := degrade(rec, userID, r.logger)
	p.UpdatedAt = updatedAt.UTC()
	return p, true, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, userID string, rec profile.Record) (profile.Action, error) {
	cols := rec.Columns()
	if len(cols) == 0 {
		return profile.ActionNoChanges, nil
	}

	ctx, span := tracer.Start(ctx, "ProfileRepo.Upsert")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "postgresql"), attribute.StringSlice("db.columns", cols))

	values := make([]any, 0, len(cols)+1)
	values = append(values, userID)
	sets := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		values = append(values, rec[col])
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets, profile.ColUpdatedAt+" = NOW()")

	query, args, err := psql.Insert(profilesTable).
		Columns(append([]string{profile.ColUserID}, cols...)...).
		Values(values...).
		Suffix("ON CONFLICT (" + profile.ColUserID + ") DO UPDATE SET " + strings.Join(sets, ", ") + " RETURNING (xmax = 0)").
		ToSql()
	if err != nil {
		return "", apperror.NewInternal("failed to build profile upsert", err)
	}

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		span.RecordError(err)
		return "", r.unavailable("acquire connection", userID, err)
	}
	defer conn.Release()

	// xmax is zero only on a freshly inserted tuple.
	var inserted bool
	if err := conn.QueryRow(ctx, query, args...).Scan(&inserted); err != nil {
		span.RecordError(err)
		return "", r.unavailable("upsert profile", userID, err)
	}

	if inserted {
		return profile.ActionCreated, nil
	}
	return profile.ActionUpdated, nil
}

func (r *postgresProfileRepo) unavailable(op, userID string, err error) error {
	r.logger.Error("Profile store failure", err, zap.String("op", op), zap.String("user_id", userID))
	return apperror.NewStoreUnavailable(op+" failed", err)
}

// degrade rebuilds a profile from rec. Malformed JSON columns are reset and logged.
func degrade(rec profile.Record, userID string, log logger.Logger) *profile.Profile {
	p, err := profile.FromStorage(rec)
	var corrupt *profile.CorruptionError
	if errors.As(err, &corrupt) {
		for _, col := range corrupt.Columns {
			log.Warn("Failed to unmarshal profile column",
				zap.String("user_id", userID),
				zap.String("column", col),
				zap.Error(corrupt.Causes[col]),
			)
		}
	}
	p.UserID = userID
	return p
}
