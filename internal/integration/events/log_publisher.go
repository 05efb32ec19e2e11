package events

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event entity.Event) error {
	msg := NewMessage(event)
	p.logger.InfoContext(ctx, "Event",
		"kind", msg.Kind,
		"eventId", msg.ID,
		"userId", msg.UserID,
		"payload", msg.Payload,
	)
	return nil
}
