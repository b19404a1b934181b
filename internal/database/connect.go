package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/luxor-creek/Personalized-App/config"
)

// DSN builds a postgres URL for dbName on the server described by cfg
func DSN(cfg *config.DatabaseConfig, dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}, "timezone": {"UTC"}}.Encode(),
	}
	return u.String()
}

// Open connects to the page database through driverName, which is "postgres"
// or the ocsql wrapper around it, and applies the pool limits of cfg
func Open(ctx context.Context, cfg *config.DatabaseConfig, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, DSN(cfg, cfg.DBName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.DBName, err)
	}
	applyPool(db, cfg)
	return db, nil
}

func applyPool(db *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
	}
}

// EnsureDatabase creates cfg.DBName through the server's maintenance database
// when it is missing
func EnsureDatabase(ctx context.Context, cfg *config.DatabaseConfig) error {
	admin, err := sql.Open("postgres", DSN(cfg, "postgres"))
	if err != nil {
		return fmt.Errorf("failed to open maintenance database: %w", err)
	}
	defer admin.Close()
	return createIfMissing(ctx, admin, cfg.DBName)
}

func createIfMissing(ctx context.Context, admin *sql.DB, name string) error {
	var exists bool
	err := admin.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up database %s: %w", name, err)
	}
	if exists {
		return nil
	}
	quoted := `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+quoted); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}
