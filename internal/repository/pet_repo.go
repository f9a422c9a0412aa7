package repository

import (
	"context"
	"time"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

type petModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	OwnerID   int64      `gorm:"column:owner_id;index"`
	Name      string     `gorm:"column:name"`
	Species   string     `gorm:"column:species"`
	Breed     *string    `gorm:"column:breed"`
	BirthDate *time.Time `gorm:"column:birth_date"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (petModel) TableName() string { return "pets" }

func toDomainPet(m petModel) *domain.Pet {
	var breed string
	if m.Breed != nil {
		breed = *m.Breed
	}
	return &domain.Pet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Species:   m.Species,
		Breed:     breed,
		BirthDate: m.BirthDate,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	var breed *string
	if p.Breed != "" {
		v := p.Breed
		breed = &v
	}
	m := petModel{
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     breed,
		BirthDate: p.BirthDate,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPet(m)
	return nil
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var m petModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainPet(m), nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var models []petModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Pet, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPet(m))
	}
	return out, nil
}
