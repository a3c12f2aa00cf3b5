package db

import (
	"fmt"

	"gorm.io/gorm"

	"workoutapi/internal/model"
)

// Migrate creates or updates the schema for every model, including the unique
// index on users.email.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table. Used when RESET_DB=true.
func Reset(db *gorm.DB) error {
	models := model.All()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
