package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/coach/config"
	"github.com/finance-tracker/coach/internal/integration/events"
)

// NewEventCollaborators builds the event publisher selected by cfg.Events.Backend.
// The returned close function releases broker connections.
func NewEventCollaborators(ctx context.Context, cfg *config.Config) (Collaborators, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Events.Backend {
	case config.EventsBackendRedis:
		client, err := newRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return Collaborators{}, noop, err
		}
		publisher := events.NewRedisPublisher(client, cfg.Events.Stream, cfg.Events.StreamMaxLen, cfg.Events.PublishTimeout)
		health := func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err() == nil
		}
		slog.Info("Publishing events to Redis stream", "stream", cfg.Events.Stream)
		return Collaborators{Publisher: publisher, EventHealth: health}, client.Close, nil

	case config.EventsBackendAMQP:
		publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.Events.PublishTimeout)
		if err != nil {
			return Collaborators{}, noop, fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		slog.Info("Publishing events to AMQP exchange", "exchange", cfg.AMQP.Exchange)
		return Collaborators{Publisher: publisher, EventHealth: publisher.Healthy}, publisher.Close, nil

	case config.EventsBackendLog, "":
		return Collaborators{Publisher: events.NewLogPublisher(slog.Default())}, noop, nil

	default:
		return Collaborators{}, noop, fmt.Errorf("unsupported events backend %q", cfg.Events.Backend)
	}
}

func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
