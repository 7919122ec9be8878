package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/migrations"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store bundles the repositories of the configured driver.
type Store struct {
	Driver    string
	Profiles  profile.Repository
	Templates catalog.Repository
	Health    service.StoreHealth
	close     func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects to the configured database and brings its schema up to date.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (*Store, error) {
	switch cfg.DB.Driver {
	case DriverPostgres, "":
		if err := migrations.UpPostgres(cfg.DB.DSN); err != nil {
			return nil, err
		}
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("Using PostgreSQL store")
		return &Store{
			Driver:    DriverPostgres,
			Profiles:  NewPostgresProfileRepo(pool, log),
			Templates: NewPostgresTemplateRepo(pool, log),
			Health:    NewPostgresHealth(pool),
			close:     pool.Close,
		}, nil

	case DriverSQLite:
		db, err := NewSQLiteDB(ctx, cfg.DB.DSN, log)
		if err != nil {
			return nil, err
		}
		if err := migrations.UpSQLite(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Using SQLite store", zap.String("path", cfg.DB.DSN))
		return &Store{
			Driver:    DriverSQLite,
			Profiles:  NewSQLiteProfileRepo(db, log),
			Templates: NewSQLiteTemplateRepo(db, log),
			Health:    NewSQLiteHealth(db),
			close:     func() { db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported db.driver %q", cfg.DB.Driver)
	}
}
