package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/queue"
)

// errMalformed marks events that can never succeed; they skip the retry loop.
var errMalformed = errors.New("malformed event")

type Config struct {
	MaxAttempts int
	// ErrorBackoff is how long Run pauses after a failed read.
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer Consumer
	handler  EventHandler
	metrics  *metrics.Metrics
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, handler EventHandler, m *metrics.Metrics, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		handler:   handler,
		metrics:   m,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "knowvalue.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-time.After(w.cfg.ErrorBackoff):
				case <-ctx.Done():
				case <-w.stopCh:
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		_ = w.Handle(ctx, msg)
	}
	return nil
}

// Handle processes one message and settles it: ack on success, requeue on a
// transient failure, dead-letter once attempts run out or the event is malformed.
// It is shared with the reclaimer.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) error {
	err := w.processMessageSafe(ctx, msg)
	if err == nil {
		return nil
	}
	slog.ErrorContext(ctx, "message processing failed",
		"error", err,
		"message_id", msg.ID,
		"event_type", msg.Type,
		"attempt", msg.Attempt)
	w.handleFailedMessage(ctx, msg, err)
	return err
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.process_event")
	defer sc.End()

	eventType := string(msg.Type)
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		MessageID:  &msg.ID,
		EventType:  &eventType,
		QuestionID: &msg.QuestionID,
	})

	if err := msg.Event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	start := time.Now()
	created, err := w.handler.HandleEvent(ctx, msg.Event)
	w.metrics.ObserveEvent(eventType, err)
	if err != nil {
		sc.RecordError(err)
		return fmt.Errorf("handling %s: %w", eventType, err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The reclaimer redelivers it and the dedupe key absorbs the repeat.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	slog.InfoContext(ctx, "event processed",
		"created", created,
		"attempt", msg.Attempt,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if errors.Is(err, errMalformed) || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "sending message to DLQ",
			"message_id", msg.ID,
			"attempts", msg.Attempt,
			"malformed", errors.Is(err, errMalformed))
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
