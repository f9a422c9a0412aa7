package booking

import (
	"context"
	"errors"
	"fmt"

	"petcare/internal/domain"
	"petcare/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	regs   RegistrationRepository
	pets   PetReader
	items  CatalogReader
	notifs NotificationSender
	logger *zap.Logger
}

func NewService(regs RegistrationRepository, pets PetReader, items CatalogReader, notifs NotificationSender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		regs:   regs,
		pets:   pets,
		items:  items,
		notifs: notifs,
		logger: logger,
	}
}

// CreateRegistration books an appointment, service or boarding stay for one
// of the owner's pets. Validation runs in a fixed order: required fields,
// slot format, referenced records, capacity.
func (s *Service) CreateRegistration(ctx context.Context, ownerID int64, req CreateRegistrationRequest) (*domain.Registration, error) {
	if ownerID <= 0 || req.PetID <= 0 || req.ItemID <= 0 || req.Date == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	kind := domain.RegistrationKind(req.Kind)

	slotKey, endDate, err := buildSlotKey(kind, req.Date, req.Time, req.EndDate)
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pet %d", ErrNotFound, req.PetID)
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, req.PetID)
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: care item %d", ErrNotFound, req.ItemID)
		}
		return nil, err
	}
	if !item.Active {
		return nil, fmt.Errorf("%w: care item %d", ErrNotFound, req.ItemID)
	}
	if item.Kind != kind {
		return nil, fmt.Errorf("%w: care item %d is not a %s item", ErrValidation, req.ItemID, kind)
	}

	reg := &domain.Registration{
		OwnerID:        ownerID,
		PetID:          pet.ID,
		ItemID:         item.ID,
		Kind:           kind,
		SlotKey:        slotKey,
		EndDate:        endDate,
		Price:          item.Price,
		ActivityStatus: domain.ActivityScheduled,
		PaymentStatus:  domain.PaymentPending,
		Notes:          req.Notes,
	}

	if kind == domain.KindAppointment {
		err = s.regs.CreateSlotGuarded(ctx, reg, AppointmentSlotCapacity)
		if errors.Is(err, repository.ErrSlotCapacity) {
			return nil, fmt.Errorf("%w: %s", ErrSlotFull, slotKey)
		}
	} else {
		err = s.regs.Create(ctx, reg)
	}
	if err != nil {
		return nil, err
	}

	// confirmation is best effort and must never roll back the booking
	if s.notifs != nil {
		if nerr := s.notifs.RegistrationCreated(ctx, reg, item.Name); nerr != nil {
			s.logger.Warn("registration confirmation not sent",
				zap.Int64("registration_id", reg.ID), zap.Error(nerr))
		}
	}

	return reg, nil
}

// SlotAvailability reports remaining appointment capacity per label for a day.
func (s *Service) SlotAvailability(ctx context.Context, dateStr string) ([]SlotAvailability, error) {
	if _, err := parseDate(dateStr); err != nil {
		return nil, fmt.Errorf("%w: unparseable date %q", ErrValidation, dateStr)
	}

	out := make([]SlotAvailability, 0, len(appointmentLabels))
	for _, label := range appointmentLabels {
		cnt, err := s.regs.CountBySlot(ctx, dateStr+"T"+label)
		if err != nil {
			return nil, err
		}
		out = append(out, SlotAvailability{
			Label:     label,
			Capacity:  AppointmentSlotCapacity,
			Booked:    int(cnt),
			Available: cnt < AppointmentSlotCapacity,
		})
	}
	return out, nil
}

func (s *Service) ListMyRegistrations(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Registration, error) {
	return s.regs.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *Service) GetOwnedRegistration(ctx context.Context, id, ownerID int64) (*domain.Registration, error) {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: registration %d", ErrNotFound, id)
		}
		return nil, err
	}
	if reg.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: registration %d", ErrNotFound, id)
	}
	return reg, nil
}

func (s *Service) ListCatalog(ctx context.Context) ([]domain.CareItem, error) {
	return s.items.ListActive(ctx)
}
