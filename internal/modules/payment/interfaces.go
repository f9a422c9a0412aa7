package payment

import (
	"context"
	"net/url"
	"time"

	"petcare/internal/domain"
)

type registrationStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	MarkPaidIfPending(ctx context.Context, id int64, paidAt time.Time) (bool, error)
	MarkFailedIfPending(ctx context.Context, id int64) (bool, error)
}

type attemptStore interface {
	Create(ctx context.Context, a *domain.PaymentAttempt) error
	RecordOutcome(ctx context.Context, reference string, status domain.PaymentAttemptStatus, rawQuery string) error
}

type catalogReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CareItem, error)
}

// Gateway is the injected payment-gateway client. URL signing and callback
// verification belong to the gateway implementation; this module never
// touches the signature algorithm.
type Gateway interface {
	BuildPayURL(amount int64, clientIP, txnRef, orderInfo string) (string, error)
	VerifyReturn(q url.Values) bool
	TxnRef(q url.Values) string
	Succeeded(q url.Values) bool
}

// NotificationSender delivers the payment confirmation, best effort.
type NotificationSender interface {
	PaymentConfirmed(ctx context.Context, reg *domain.Registration, itemName string, paidAt time.Time) error
}
