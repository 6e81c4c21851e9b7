package main

import (
	"context"
	"fmt"

	"github.com/senyabanana/procurement-service/internal/db"
	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/repository"
	"github.com/senyabanana/procurement-service/internal/router/config"
	"github.com/senyabanana/procurement-service/internal/seed"
)

// storage - репозитории выбранного бэкенда и функция закрытия соединения.
type storage struct {
	RFPs      repository.RFPRepository
	Vendors   repository.VendorRepository
	Proposals repository.ProposalRepository
	close     func()
}

func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func (s *storage) seedStore() seed.Store {
	return seed.Store{RFPs: s.RFPs, Vendors: s.Vendors, Proposals: s.Proposals}
}

func postgresDSN(cfg config.Config) string {
	if cfg.PostgresConn != "" {
		return cfg.PostgresConn
	}
	return db.PostgresURL(cfg)
}

// openStore подключает хранилище по STORAGE_DRIVER. Для Postgres перед подключением применяются миграции.
func openStore(ctx context.Context, cfg config.Config, logg *logger.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		logg.Info(logg.WithField(ctx, "path", cfg.SQLitePath), "db.sqlite.opened")
		return &storage{
			RFPs:      repository.NewSQLiteRFPRepository(conn),
			Vendors:   repository.NewSQLiteVendorRepository(conn),
			Proposals: repository.NewSQLiteProposalRepository(conn),
			close:     func() { _ = conn.Close() },
		}, nil

	case config.StoragePostgres:
		if err := db.RunMigrations(cfg.MigrationURL, postgresDSN(cfg)); err != nil {
			return nil, err
		}
		logg.Info(ctx, "db.migrated")

		dbPool, err := db.InitDb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		return &storage{
			RFPs:      repository.NewPostgresRFPRepository(dbPool),
			Vendors:   repository.NewPostgresVendorRepository(dbPool),
			Proposals: repository.NewPostgresProposalRepository(dbPool),
			close:     dbPool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
