package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/senyabanana/procurement-service/internal/router/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

// InitDb инициализирует подключение к базе данных и возвращает пул соединений.
func InitDb(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.PostgresConn == "" {
		if cfg.PostgresUser == "" || cfg.PostgresPass == "" || cfg.PostgresHost == "" || cfg.PostgresPort == "" || cfg.PostgresDB == "" {
			return nil, fmt.Errorf("one or more database connection environment variables are missing")
		}
		cfg.PostgresConn = PostgresURL(cfg)
	}

	dbPool, err := pgxpool.New(ctx, cfg.PostgresConn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return dbPool, nil
}

// PostgresURL собирает строку подключения из отдельных параметров.
func PostgresURL(cfg config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPass, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
}

// RunMigrations применяет миграции Postgres из migrationURL.
func RunMigrations(migrationURL, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return fmt.Errorf("cannot create a new migrate instance: %w", err)
	}
	defer migration.Close()

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS vendor (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	specialty TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS rfp (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	budget INTEGER NOT NULL CHECK (budget >= 0),
	delivery_days INTEGER NOT NULL CHECK (delivery_days > 0),
	items TEXT NOT NULL DEFAULT '[]',
	payment_terms TEXT NOT NULL,
	warranty TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'sent', 'completed')),
	created_at DATETIME NOT NULL,
	sent_to TEXT NOT NULL DEFAULT '[]',
	sent_at DATETIME,
	CONSTRAINT rfp_sent_consistency CHECK (
		(status = 'draft' AND json_array_length(sent_to) = 0 AND sent_at IS NULL)
		OR (status <> 'draft' AND json_array_length(sent_to) > 0 AND sent_at IS NOT NULL)
	)
);

CREATE TABLE IF NOT EXISTS proposal (
	id TEXT PRIMARY KEY,
	rfp_id TEXT NOT NULL REFERENCES rfp(id) ON DELETE CASCADE,
	vendor_id TEXT NOT NULL REFERENCES vendor(id),
	vendor_name TEXT NOT NULL,
	total_price INTEGER NOT NULL CHECK (total_price >= 0),
	delivery_days INTEGER NOT NULL CHECK (delivery_days > 0),
	terms TEXT NOT NULL DEFAULT '',
	warranty TEXT NOT NULL DEFAULT '',
	line_items TEXT NOT NULL DEFAULT '[]',
	notes TEXT NOT NULL DEFAULT '',
	received_at DATETIME NOT NULL,
	ai_score INTEGER NOT NULL CHECK (ai_score BETWEEN 0 AND 100)
);

CREATE INDEX IF NOT EXISTS idx_rfp_status ON rfp(status);
CREATE INDEX IF NOT EXISTS idx_proposal_rfp_id ON proposal(rfp_id);
`

// OpenSQLite открывает файл SQLite (или ":memory:") и создаёт схему.
func OpenSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_loc=UTC")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// одно соединение: ":memory:" живёт внутри соединения, запись в SQLite всё равно последовательная
	conn.SetMaxOpenConns(1)

	if _, err = conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return conn, nil
}
