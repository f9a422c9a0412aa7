package notification

import (
	"context"

	"petcare/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, ownerID int64) error
}

// Events is the outbound broadcast channel for notification fan-out. The AMQP
// publisher implements it in production; a nil Events disables publishing.
type Events interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
