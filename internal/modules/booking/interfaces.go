package booking

import (
	"context"

	"petcare/internal/domain"
)

// RegistrationRepository is the persistence surface the booking flow needs.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	CreateSlotGuarded(ctx context.Context, reg *domain.Registration, capacity int) error
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Registration, error)
	CountBySlot(ctx context.Context, slotKey string) (int64, error)
}

type PetReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type CatalogReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CareItem, error)
	ListActive(ctx context.Context) ([]domain.CareItem, error)
}

// NotificationSender delivers best-effort confirmations. Implementations must
// never block the booking flow on delivery.
type NotificationSender interface {
	RegistrationCreated(ctx context.Context, reg *domain.Registration, itemName string) error
}
