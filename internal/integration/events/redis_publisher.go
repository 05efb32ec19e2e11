package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/coach/internal/domain/entity"
)

// DefaultStream is the Redis stream events are appended to.
const DefaultStream = "coach:events"

// RedisPublisher appends events to a capped Redis stream.
type RedisPublisher struct {
	client  *redis.Client
	stream  string
	maxLen  int64
	timeout time.Duration
}

// NewRedisPublisher creates a publisher. maxLen <= 0 leaves the stream uncapped.
func NewRedisPublisher(client *redis.Client, stream string, maxLen int64, timeout time.Duration) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{
		client:  client,
		stream:  stream,
		maxLen:  maxLen,
		timeout: timeout,
	}
}

// Publish appends the event as a single "data" field holding the JSON envelope.
func (p *RedisPublisher) Publish(ctx context.Context, event entity.Event) error {
	msg := NewMessage(event)
	body, err := msg.ToJSON()
	if err != nil {
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"kind": msg.Kind,
			"data": string(body),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to append event to stream %s: %w", p.stream, err)
	}

	slog.DebugContext(ctx, "Published event",
		"kind", msg.Kind,
		"eventId", msg.ID,
		"stream", p.stream,
		"entryId", id,
	)
	return nil
}
