// Package runner drives a board in "run mode": one step, a pause, the next
// step, until stopped.
package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Runner repeatedly calls a step function with a configurable delay between
// calls. The delay is measured from the end of one step to the start of the
// next, so a slow step never overlaps the following one.
type Runner struct {
	step     func()
	interval atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	eg     *errgroup.Group
}

// New returns a stopped runner. step must not call Start or Stop.
func New(step func(), interval time.Duration) *Runner {
	r := &Runner{step: step}
	r.interval.Store(int64(interval))
	return r
}

// Interval returns the current delay between steps
func (r *Runner) Interval() time.Duration {
	return time.Duration(r.interval.Load())
}

// SetInterval changes the delay used from the next wait onwards. Values <= 0
// run steps back to back.
func (r *Runner) SetInterval(d time.Duration) {
	r.interval.Store(int64(d))
}

// Running reports whether the loop is active
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Start begins the loop, running the first step immediately. Starting a
// running runner does nothing.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return r.loop(ctx)
	})
	r.cancel = cancel
	r.eg = eg

	logrus.WithField("interval", r.Interval()).Info("Run mode started")
}

// Stop cancels the pending step and waits for the loop to exit. Once Stop
// returns the step function is not called again until the next Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return
	}

	r.cancel()
	if err := r.eg.Wait(); err != nil && err != context.Canceled {
		logrus.WithError(err).Warn("Run loop exited with error")
	}
	r.cancel = nil
	r.eg = nil

	logrus.Info("Run mode stopped")
}

func (r *Runner) loop(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		// cancellation may have raced with the timer
		if ctx.Err() != nil {
			return nil
		}
		r.step()

		timer.Reset(max(r.Interval(), 0))
	}
}
