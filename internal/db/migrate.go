package db

import (
	"fmt"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"gorm.io/gorm"
)

// AllModels returns all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.SWOTItem{},
		&models.Task{},
		&models.Streak{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedUser ensures a user row exists for the given email and returns it.
func SeedUser(db *gorm.DB, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("db: seed user: email is required")
	}
	var user models.User
	if err := db.Where(models.User{Email: email}).FirstOrCreate(&user).Error; err != nil {
		return nil, fmt.Errorf("db: seed user %q: %w", email, err)
	}
	return &user, nil
}
