package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogEvents is the fallback Events sink used when no broker is configured:
// every event lands in the structured log instead of an exchange.
type LogEvents struct {
	logger *zap.Logger
}

func NewLogEvents(logger *zap.Logger) *LogEvents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogEvents{logger: logger}
}

func (l *LogEvents) PublishJSON(ctx context.Context, key string, v any) error {
	l.logger.Info("notification event", zap.String("key", key), zap.Any("event", v))
	return nil
}
