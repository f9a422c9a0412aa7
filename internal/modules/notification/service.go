package notification

import (
	"context"
	"fmt"
	"time"

	"petcare/internal/domain"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type event struct {
	Type           string `json:"type"`
	OwnerID        int64  `json:"owner_id"`
	RegistrationID int64  `json:"registration_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}

type Service struct {
	repo   notificationRepo
	events Events
	logger *zap.Logger
}

func NewService(repo notificationRepo, events Events, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, events: events, logger: logger}
}

// RegistrationCreated records and broadcasts the booking confirmation.
func (s *Service) RegistrationCreated(ctx context.Context, reg *domain.Registration, itemName string) error {
	regID := reg.ID
	n := &domain.Notification{
		OwnerID:        reg.OwnerID,
		Type:           domain.NotifyRegistrationCreated,
		Title:          "Booking received",
		Message:        fmt.Sprintf("%s on %s is scheduled, payment pending.", itemName, reg.SlotKey),
		RegistrationID: &regID,
	}
	return s.dispatch(ctx, n)
}

// PaymentConfirmed records and broadcasts the settlement confirmation with
// the amount, timestamp and settled item name.
func (s *Service) PaymentConfirmed(ctx context.Context, reg *domain.Registration, itemName string, paidAt time.Time) error {
	regID := reg.ID
	n := &domain.Notification{
		OwnerID: reg.OwnerID,
		Type:    domain.NotifyPaymentConfirmed,
		Title:   "Payment received",
		Message: fmt.Sprintf("Payment of %d VND for %s received at %s.",
			reg.Price, itemName, paidAt.Format(time.RFC3339)),
		RegistrationID: &regID,
	}
	return s.dispatch(ctx, n)
}

// dispatch persists the record synchronously; broadcast is handed to a
// background send and never blocks or fails the caller.
func (s *Service) dispatch(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.events == nil {
		return nil
	}

	ev := event{
		Type:    n.Type,
		OwnerID: n.OwnerID,
		Title:   n.Title,
		Message: n.Message,
	}
	if n.RegistrationID != nil {
		ev.RegistrationID = *n.RegistrationID
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.events.PublishJSON(pubCtx, ev.Type, ev); err != nil {
			s.logger.Warn("notification event not published",
				zap.String("type", ev.Type), zap.Int64("owner_id", ev.OwnerID), zap.Error(err))
		}
	}()
	return nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, limit int) ([]domain.Notification, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit)
}

func (s *Service) MarkRead(ctx context.Context, id, ownerID int64) error {
	return s.repo.MarkRead(ctx, id, ownerID)
}
