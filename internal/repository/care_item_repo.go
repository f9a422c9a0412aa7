package repository

import (
	"context"
	"time"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type CareItemRepository struct {
	db *gorm.DB
}

func NewCareItemRepository(db *gorm.DB) *CareItemRepository {
	return &CareItemRepository{db: db}
}

type careItemModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Kind        string    `gorm:"column:kind;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description;type:text"`
	Price       int64     `gorm:"column:price"`
	Active      bool      `gorm:"column:active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (careItemModel) TableName() string { return "care_items" }

func toDomainCareItem(m careItemModel) *domain.CareItem {
	return &domain.CareItem{
		ID:          m.ID,
		Kind:        domain.RegistrationKind(m.Kind),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *CareItemRepository) Create(ctx context.Context, item *domain.CareItem) error {
	m := careItemModel{
		Kind:        string(item.Kind),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Active:      item.Active,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*item = *toDomainCareItem(m)
	return nil
}

func (r *CareItemRepository) GetByID(ctx context.Context, id int64) (*domain.CareItem, error) {
	var m careItemModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainCareItem(m), nil
}

func (r *CareItemRepository) ListActive(ctx context.Context) ([]domain.CareItem, error) {
	var models []careItemModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("kind, name").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.CareItem, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCareItem(m))
	}
	return out, nil
}
