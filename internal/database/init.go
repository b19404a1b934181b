// Package database opens the page database and applies its schema.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/luxor-creek/Personalized-App/internal/database/schema"
)

// Migrate applies the schema in a single transaction. Every statement is
// idempotent, so running it against an existing database changes nothing.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	for i, statement := range schema.TableDefinitions {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
