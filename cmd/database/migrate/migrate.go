package migration

import (
	"fmt"

	"gorm.io/gorm"

	"recipe-book/entities"
	"recipe-book/internal/logging"
)

func Migrate(db *gorm.DB) error {
	// users.id defaults to uuid_generate_v4()
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		return fmt.Errorf("migrate ingredients: %w", err)
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("migrate recipes: %w", err)
	}

	logging.Info().Msg("database migration complete")
	return nil
}
