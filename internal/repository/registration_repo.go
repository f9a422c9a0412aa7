package repository

import (
	"context"
	"errors"
	"time"

	"petcare/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrSlotCapacity is returned when an appointment slot already holds the
// maximum number of registrations.
var ErrSlotCapacity = errors.New("slot capacity exhausted")

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

type registrationModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	OwnerID        int64      `gorm:"column:owner_id;index"`
	PetID          int64      `gorm:"column:pet_id"`
	ItemID         int64      `gorm:"column:item_id"`
	Kind           string     `gorm:"column:kind"`
	SlotKey        string     `gorm:"column:slot_key;index;uniqueIndex:idx_slot_occupancy,priority:1"`
	SlotSeq        *int16     `gorm:"column:slot_seq;uniqueIndex:idx_slot_occupancy,priority:2"`
	EndDate        *time.Time `gorm:"column:end_date"`
	Price          int64      `gorm:"column:price"`
	ActivityStatus string     `gorm:"column:activity_status"`
	PaymentStatus  string     `gorm:"column:payment_status"`
	Notes          *string    `gorm:"column:notes"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	PaidAt         *time.Time `gorm:"column:paid_at"`
}

func (registrationModel) TableName() string { return "registrations" }

func toDomainRegistration(m registrationModel) *domain.Registration {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Registration{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		PetID:          m.PetID,
		ItemID:         m.ItemID,
		Kind:           domain.RegistrationKind(m.Kind),
		SlotKey:        m.SlotKey,
		SlotSeq:        m.SlotSeq,
		EndDate:        m.EndDate,
		Price:          m.Price,
		ActivityStatus: domain.ActivityStatus(m.ActivityStatus),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		Notes:          notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		PaidAt:         m.PaidAt,
	}
}

func toRegistrationModel(r *domain.Registration) registrationModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return registrationModel{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		PetID:          r.PetID,
		ItemID:         r.ItemID,
		Kind:           string(r.Kind),
		SlotKey:        r.SlotKey,
		SlotSeq:        r.SlotSeq,
		EndDate:        r.EndDate,
		Price:          r.Price,
		ActivityStatus: string(r.ActivityStatus),
		PaymentStatus:  string(r.PaymentStatus),
		Notes:          notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		PaidAt:         r.PaidAt,
	}
}

// Create inserts a registration without occupancy accounting. Used for the
// kinds that carry no capacity limit (service, boarding).
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	m := toRegistrationModel(reg)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*reg = *toDomainRegistration(m)
	return nil
}

// CreateSlotGuarded inserts an appointment registration while enforcing the
// per-slot capacity. The occupancy index is assigned from the current count
// inside a transaction; the unique index on (slot_key, slot_seq) backstops
// concurrent inserts, and a duplicate key gets one retry before the slot is
// reported full.
func (r *RegistrationRepository) CreateSlotGuarded(ctx context.Context, reg *domain.Registration, capacity int) error {
	for attempt := 0; attempt < 2; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var cnt int64
			if err := tx.Model(&registrationModel{}).
				Where("slot_key = ? AND kind = ?", reg.SlotKey, string(domain.KindAppointment)).
				Count(&cnt).Error; err != nil {
				return err
			}
			if cnt >= int64(capacity) {
				return ErrSlotCapacity
			}

			seq := int16(cnt)
			reg.SlotSeq = &seq
			m := toRegistrationModel(reg)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*reg = *toDomainRegistration(m)
			return nil
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrSlotCapacity) {
			return err
		}
		if isUniqueViolation(err) {
			continue
		}
		return err
	}
	return ErrSlotCapacity
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	var m registrationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRegistration(m), nil
}

func (r *RegistrationRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Registration, error) {
	var models []registrationModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Registration, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRegistration(m))
	}
	return out, nil
}

// CountBySlot reports how many appointment registrations occupy a slot.
func (r *RegistrationRepository) CountBySlot(ctx context.Context, slotKey string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&registrationModel{}).
		Where("slot_key = ? AND kind = ?", slotKey, string(domain.KindAppointment)).
		Count(&cnt).Error
	return cnt, err
}

// MarkPaidIfPending performs the idempotent payment commit: a single
// conditional update that only touches a pending row. Zero rows affected on
// an already-settled registration means the callback was a redelivery.
func (r *RegistrationRepository) MarkPaidIfPending(ctx context.Context, id int64, paidAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&registrationModel{}).
		Where("id = ? AND payment_status = ?", id, string(domain.PaymentPending)).
		Updates(map[string]interface{}{
			"payment_status": string(domain.PaymentPaid),
			"paid_at":        paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailedIfPending records a gateway-declined payment. A paid registration
// is never downgraded.
func (r *RegistrationRepository) MarkFailedIfPending(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&registrationModel{}).
		Where("id = ? AND payment_status = ?", id, string(domain.PaymentPending)).
		Update("payment_status", string(domain.PaymentFailed))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
