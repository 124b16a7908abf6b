package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, evt Event) error {
	if err := evt.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(evt, 1),
	}).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "published event",
		"event_type", evt.Type,
		"recipient_id", evt.RecipientID,
		"question_id", evt.QuestionID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

type noopProducer struct{}

// NewNoopProducer drops every event. Used when no redis is configured.
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) Publish(ctx context.Context, evt Event) error {
	slog.DebugContext(ctx, "event stream disabled, dropping event", "event_type", evt.Type)
	return nil
}

func (noopProducer) Close() error { return nil }
