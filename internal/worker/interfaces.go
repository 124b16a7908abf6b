package worker

import (
	"context"
	"time"

	"knowvalue.app/server/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// EventHandler turns a domain event into its side effect. It reports whether
// anything was written; redelivered events return false.
type EventHandler interface {
	HandleEvent(ctx context.Context, evt queue.Event) (bool, error)
}

type NegotiationExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
