package repository

import (
	"context"
	"time"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

type ownerModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	FullName     string    `gorm:"column:full_name"`
	Phone        *string   `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (ownerModel) TableName() string { return "owners" }

func toDomainOwner(m ownerModel) *domain.Owner {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Owner{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Phone:        phone,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *OwnerRepository) Create(ctx context.Context, o *domain.Owner) error {
	var phone *string
	if o.Phone != "" {
		v := o.Phone
		phone = &v
	}
	m := ownerModel{
		Email:        o.Email,
		PasswordHash: o.PasswordHash,
		FullName:     o.FullName,
		Phone:        phone,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*o = *toDomainOwner(m)
	return nil
}

func (r *OwnerRepository) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	var m ownerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainOwner(m), nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	var m ownerModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainOwner(m), nil
}
