package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"petcare/internal/domain"
	"petcare/internal/pkg/reftoken"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Callback outcomes after a verified, resolvable gateway return.
const (
	OutcomePaid      = "paid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

type CallbackResult struct {
	Outcome        string
	RegistrationID int64
}

type Service struct {
	regs     registrationStore
	attempts attemptStore
	items    catalogReader
	gateway  Gateway
	codec    *reftoken.Codec
	notifs   NotificationSender
	logger   *zap.Logger
}

func NewService(regs registrationStore, attempts attemptStore, items catalogReader, gateway Gateway, codec *reftoken.Codec, notifs NotificationSender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		regs:     regs,
		attempts: attempts,
		items:    items,
		gateway:  gateway,
		codec:    codec,
		notifs:   notifs,
		logger:   logger,
	}
}

// BuildPaymentURL issues a signed gateway redirect for a pending
// registration. The registration id never leaves the system in plaintext:
// the gateway only sees the encrypted reference.
func (s *Service) BuildPaymentURL(ctx context.Context, registrationID, ownerID int64, clientIP string) (string, error) {
	reg, err := s.regs.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: registration %d", ErrNotFound, registrationID)
		}
		return "", err
	}
	if reg.OwnerID != ownerID {
		return "", fmt.Errorf("%w: registration %d", ErrNotFound, registrationID)
	}
	if reg.PaymentStatus == domain.PaymentPaid {
		return "", fmt.Errorf("%w: registration %d", ErrAlreadySettled, registrationID)
	}

	token, err := s.codec.Encode(reg.ID)
	if err != nil {
		return "", fmt.Errorf("encode reference: %w", err)
	}

	orderInfo := "petcare payment " + token
	payURL, err := s.gateway.BuildPayURL(reg.Price, clientIP, token, orderInfo)
	if err != nil {
		return "", fmt.Errorf("build gateway url: %w", err)
	}

	attempt := &domain.PaymentAttempt{
		ID:             uuid.NewString(),
		RegistrationID: reg.ID,
		Reference:      token,
		Amount:         reg.Price,
		PaymentURL:     payURL,
		Status:         domain.AttemptCreated,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		// the attempt log is diagnostics; the link is still valid
		s.logger.Warn("payment attempt not recorded",
			zap.Int64("registration_id", reg.ID), zap.Error(err))
	}

	return payURL, nil
}

// HandleReturn reconciles one asynchronous gateway callback. The gateway may
// redeliver callbacks, so the paid transition commits at most once and side
// effects run only on the first commit.
func (s *Service) HandleReturn(ctx context.Context, q url.Values) (*CallbackResult, error) {
	if !s.gateway.VerifyReturn(q) {
		s.logger.Warn("payment callback rejected: bad signature", zap.String("query", q.Encode()))
		return nil, ErrIntegrity
	}

	token := s.gateway.TxnRef(q)
	id, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Warn("payment callback rejected: unresolvable reference", zap.String("reference", token))
		return nil, err
	}

	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("payment callback for unknown registration", zap.Int64("registration_id", id))
			return nil, fmt.Errorf("%w: registration %d", ErrNotFound, id)
		}
		return nil, err
	}

	rawQuery := q.Encode()

	if !s.gateway.Succeeded(q) {
		if _, err := s.regs.MarkFailedIfPending(ctx, reg.ID); err != nil {
			return nil, err
		}
		if err := s.attempts.RecordOutcome(ctx, token, domain.AttemptFailed, rawQuery); err != nil {
			s.logger.Warn("callback outcome not recorded", zap.String("reference", token), zap.Error(err))
		}
		s.logger.Info("payment declined by gateway", zap.Int64("registration_id", reg.ID))
		return &CallbackResult{Outcome: OutcomeFailed, RegistrationID: reg.ID}, nil
	}

	paidAt := time.Now().UTC()
	changed, err := s.regs.MarkPaidIfPending(ctx, reg.ID, paidAt)
	if err != nil {
		return nil, err
	}
	if err := s.attempts.RecordOutcome(ctx, token, domain.AttemptConfirmed, rawQuery); err != nil {
		s.logger.Warn("callback outcome not recorded", zap.String("reference", token), zap.Error(err))
	}

	if !changed {
		s.logger.Info("duplicate payment callback ignored", zap.Int64("registration_id", reg.ID))
		return &CallbackResult{Outcome: OutcomeDuplicate, RegistrationID: reg.ID}, nil
	}

	var itemName string
	if item, ierr := s.items.GetByID(ctx, reg.ItemID); ierr == nil {
		itemName = item.Name
	} else {
		s.logger.Warn("settled item not loaded for notification",
			zap.Int64("item_id", reg.ItemID), zap.Error(ierr))
	}

	if s.notifs != nil {
		if nerr := s.notifs.PaymentConfirmed(ctx, reg, itemName, paidAt); nerr != nil {
			s.logger.Warn("payment confirmation not sent",
				zap.Int64("registration_id", reg.ID), zap.Error(nerr))
		}
	}

	s.logger.Info("payment settled", zap.Int64("registration_id", reg.ID), zap.Int64("amount", reg.Price))
	return &CallbackResult{Outcome: OutcomePaid, RegistrationID: reg.ID}, nil
}
