package db

import (
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Contract{},
		&types.Workout{},
	)
}
