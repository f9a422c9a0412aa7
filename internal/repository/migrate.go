package repository

import (
	"petcare/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ownerModel{},
		&petModel{},
		&careItemModel{},
		&registrationModel{},
		&domain.PaymentAttempt{},
		&domain.Notification{},
	)
}
