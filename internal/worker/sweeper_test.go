package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/worker"
)

type fakeExpirer struct {
	calls []time.Time
	n     int
	err   error
}

func (f *fakeExpirer) ExpireStale(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return f.n, f.err
}

type fakePurger struct {
	calls int
	err   error
}

func (f *fakePurger) PurgeExpiredSessions(context.Context) (int64, error) {
	f.calls++
	return 2, f.err
}

var _ = Describe("Sweeper", func() {
	It("rejects an invalid cron expression", func() {
		_, err := worker.NewSweeper("every tuesday", nil, nil, nil)
		Expect(err).To(MatchError(ContainSubstring("invalid sweep cron expression")))
	})

	It("runs every job with the sweep time", func() {
		expirer := &fakeExpirer{n: 3}
		purger := &fakePurger{}
		s, err := worker.NewSweeper("*/10 * * * *", expirer, purger, nil)
		Expect(err).NotTo(HaveOccurred())

		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		s.SweepOnce(context.Background(), now)

		Expect(expirer.calls).To(Equal([]time.Time{now}))
		Expect(purger.calls).To(Equal(1))
	})

	It("keeps purging sessions when expiry fails", func() {
		expirer := &fakeExpirer{err: errors.New("db down")}
		purger := &fakePurger{}
		s, err := worker.NewSweeper("@hourly", expirer, purger, nil)
		Expect(err).NotTo(HaveOccurred())

		s.SweepOnce(context.Background(), time.Now())

		Expect(purger.calls).To(Equal(1))
	})

	It("skips the negotiation job when it is disabled", func() {
		purger := &fakePurger{}
		s, err := worker.NewSweeper("@hourly", nil, purger, nil)
		Expect(err).NotTo(HaveOccurred())

		s.SweepOnce(context.Background(), time.Now())

		Expect(purger.calls).To(Equal(1))
	})
})
