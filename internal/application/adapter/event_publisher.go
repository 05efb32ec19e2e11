// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// EventPublisher delivers advisory events to the notification collaborator.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}
