package persistence

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type sqliteProfileRepo struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSQLiteProfileRepo(db *sql.DB, logger logger.Logger) profile.Repository {
	return &sqliteProfileRepo{db: db, logger: logger}
}

func (r *sqliteProfileRepo) GetByUserID(ctx context.Context, userID string) (*profile.Profile, bool, error) {
	ctx, span := tracer.Start(ctx, "ProfileRepo.GetByUserID")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "sqlite"))

	query, args, err := sqlite.Select(profile.Columns...).Column(profile.ColUpdatedAt).
		From(profilesTable).
		Where(sq.Eq{profile.ColUserID: userID}).
		ToSql()
	if err != nil {
		return nil, false, apperror.NewInternal("failed to build profile query", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, false, r.unavailable("acquire connection", userID, err)
	}
	defer conn.Close()

	values := make([]sql.NullString, len(profile.Columns))
	dest := make([]any, 0, len(values)+1)
	for i := range values {
		dest = append(dest, &values[i])
	}
	var updatedAt sql.NullString
	dest = append(dest, &updatedAt)

	if err := conn.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		return nil, false, r.unavailable("query profile", userID, err)
	}

	rec := profile.Record{profile.ColUserID: userID}
	for i, col := range profile.Columns {
		if values[i].Valid {
			rec[col] = values[i].String
		}
	}

	p := degrade(rec, userID, r.logger)
	p.UpdatedAt = sqliteTime(updatedAt)
	return p, true, nil
}

func (r *sqliteProfileRepo) Upsert(ctx context.Context, userID string, rec profile.Record) (profile.Action, error) {
	cols := rec.Columns()
	if len(cols) == 0 {
		return profile.ActionNoChanges, nil
	}

	ctx, span := tracer.Start(ctx, "ProfileRepo.Upsert")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "sqlite"), attribute.StringSlice("db.columns", cols))

	conn, err := r.db.Conn(ctx)
	if err != nil {
		span.RecordError(err)
		return "", r.unavailable("acquire connection", userID, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return "", r.unavailable("begin transaction", userID, err)
	}
	defer tx.Rollback()

	probe, probeArgs, err := sqlite.Select("1").From(profilesTable).Where(sq.Eq{profile.ColUserID: userID}).ToSql()
	if err != nil {
		return "", apperror.NewInternal("failed to build profile probe", err)
	}
	var one int
	exists := true
	if err := tx.QueryRowContext(ctx, probe, probeArgs...).Scan(&one); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			span.RecordError(err)
			return "", r.unavailable("probe profile", userID, err)
		}
		exists = false
	}

	var (
		query  string
		args   []any
		action profile.Action
	)
	if exists {
		update := sqlite.Update(profilesTable).Where(sq.Eq{profile.ColUserID: userID})
		for _, col := range cols {
			update = update.Set(col, rec[col])
		}
		query, args, err = update.Set(profile.ColUpdatedAt, sq.Expr("CURRENT_TIMESTAMP")).ToSql()
		action = profile.ActionUpdated
	} else {
		values := make([]any, 0, len(cols)+1)
		values = append(values, userID)
		for _, col := range cols {
			values = append(values, rec[col])
		}
		query, args, err = sqlite.Insert(profilesTable).
			Columns(append([]string{profile.ColUserID}, cols...)...).
			Values(values...).
			ToSql()
		action = profile.ActionCreated
	}
	if err != nil {
		return "", apperror.NewInternal("failed to build profile upsert", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		span.RecordError(err)
		return "", r.unavailable("upsert profile", userID, err)
	}
	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return "", r.unavailable("commit profile", userID, err)
	}
	return action, nil
}

func (r *sqliteProfileRepo) unavailable(op, userID string, err error) error {
	r.logger.Error("Profile store failure", err, zap.String("op", op), zap.String("user_id", userID))
	return apperror.NewStoreUnavailable(op+" failed", err)
}
