// Package database manages the PostgreSQL pool behind the inventory
// stores, applies the embedded schema migrations with goose, and seeds
// the reference data the application expects at startup.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

// Pool limits for the single server binary. The listing page fires at
// most two queries per request.
const (
	maxOpenConns = 15
	maxIdleConns = 5
)

// Connect opens the PostgreSQL pool for the given DSN, applies the pool
// limits, and verifies the connection with a ping before handing it to
// the stores.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	slog.Info("inventory database ready")
	return db, nil
}

// Migrate brings the inventory schema up to date. The SQL files are
// embedded at compile time, so deployments carry no migration directory.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("select goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	slog.Info("schema migrations applied")
	return nil
}
