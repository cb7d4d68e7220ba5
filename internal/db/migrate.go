package db

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// Migrate creates or updates the users, projects and comments tables together
// with their cascading foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first.
func Reset(db *gorm.DB, log *slog.Logger) {
	tables := model.All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			log.Warn("failed to drop table (may not exist)", "error", err)
		}
	}
}
