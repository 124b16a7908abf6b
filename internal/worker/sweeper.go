package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"

	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/metrics"
)

// Sweeper runs the periodic cleanup jobs on a cron schedule: stale
// negotiations are rejected and expired login sessions purged.
type Sweeper struct {
	expr         string
	gron         *gronx.Gronx
	negotiations NegotiationExpirer
	sessions     SessionPurger
	metrics      *metrics.Metrics
	now          func() time.Time
	tick         time.Duration

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewSweeper validates expr. A nil negotiations disables that job.
func NewSweeper(expr string, negotiations NegotiationExpirer, sessions SessionPurger, m *metrics.Metrics) (*Sweeper, error) {
	g := gronx.New()
	if !g.IsValid(expr) {
		return nil, fmt.Errorf("invalid sweep cron expression %q", expr)
	}
	return &Sweeper{
		expr:         expr,
		gron:         g,
		negotiations: negotiations,
		sessions:     sessions,
		metrics:      m,
		now:          time.Now,
		tick:         time.Minute,
		stopCh:       make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}, nil
}

func (s *Sweeper) Run(ctx context.Context) {
	defer close(s.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "knowvalue.worker.sweeper"})
	slog.InfoContext(ctx, "sweeper started", "cron", s.expr)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			slog.InfoContext(ctx, "sweeper stopping")
			return
		case <-ticker.C:
			now := s.now().Truncate(time.Minute)
			due, err := s.gron.IsDue(s.expr, now)
			if err != nil {
				slog.ErrorContext(ctx, "evaluating sweep schedule", "error", err)
				continue
			}
			if due {
				s.SweepOnce(ctx, now)
			}
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

// SweepOnce runs every job once. A failing job is logged and does not stop the others.
func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) {
	sc := logger.StartSpan(ctx, "worker.sweep")
	defer sc.End()
	ctx = sc.Context()

	if s.negotiations != nil {
		expired, err := s.negotiations.ExpireStale(ctx, now)
		if err != nil {
			sc.RecordError(err)
			slog.ErrorContext(ctx, "expiring stale negotiations failed", "error", err)
		} else {
			s.metrics.ObserveExpired(expired)
			if expired > 0 {
				slog.InfoContext(ctx, "expired stale negotiations", "count", expired)
			}
		}
	}

	if s.sessions != nil {
		purged, err := s.sessions.PurgeExpiredSessions(ctx)
		if err != nil {
			sc.RecordError(err)
			slog.ErrorContext(ctx, "purging expired sessions failed", "error", err)
		} else if purged > 0 {
			slog.InfoContext(ctx, "purged expired sessions", "count", purged)
		}
	}
}
