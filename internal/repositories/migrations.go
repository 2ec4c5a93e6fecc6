package repositories

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed migrations/01_init.up.sql
var initUp string

// RunMigrations applies the schema. All statements are idempotent
// (CREATE ... IF NOT EXISTS), so this is safe to run on every start.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(initUp); err != nil {
		return fmt.Errorf("apply init migration: %w", err)
	}
	return nil
}
