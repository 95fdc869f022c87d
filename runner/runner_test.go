package runner

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_StepsUntilStopped(t *testing.T) {
	var steps atomic.Int64
	r := New(func() { steps.Add(1) }, time.Millisecond)

	require.False(t, r.Running())
	r.Start()
	require.True(t, r.Running())

	require.Eventually(t, func() bool { return steps.Load() >= 5 }, 2*time.Second, time.Millisecond)

	r.Stop()
	assert.False(t, r.Running())

	after := steps.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, steps.Load(), "no step may run after Stop returns")
}

func TestRunner_StopCancelsPendingStep(t *testing.T) {
	var steps atomic.Int64
	r := New(func() { steps.Add(1) }, time.Hour)

	r.Start()
	require.Eventually(t, func() bool { return steps.Load() == 1 }, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the pending wait")
	}
	assert.Equal(t, int64(1), steps.Load())
}

func TestRunner_StopWaitsForInFlightStep(t *testing.T) {
	var (
		entered  = make(chan struct{})
		release  = make(chan struct{})
		finished atomic.Bool
		once     atomic.Bool
	)
	r := New(func() {
		if once.CompareAndSwap(false, true) {
			close(entered)
			<-release
			finished.Store(true)
		}
	}, time.Hour)

	r.Start()
	<-entered

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a step was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-stopped
	assert.True(t, finished.Load())
}

func TestRunner_StartStopIdempotent(t *testing.T) {
	var steps atomic.Int64
	r := New(func() { steps.Add(1) }, time.Hour)

	r.Stop()
	r.Start()
	r.Start()
	require.Eventually(t, func() bool { return steps.Load() == 1 }, time.Second, time.Millisecond)
	r.Stop()
	r.Stop()

	// restart runs the first step immediately again
	r.Start()
	require.Eventually(t, func() bool { return steps.Load() == 2 }, time.Second, time.Millisecond)
	r.Stop()
}

func TestRunner_SetInterval(t *testing.T) {
	var steps atomic.Int64
	r := New(func() { steps.Add(1) }, time.Hour)
	r.SetInterval(-5 * time.Millisecond)
	assert.Equal(t, -5*time.Millisecond, r.Interval())

	r.Start()
	require.Eventually(t, func() bool { return steps.Load() >= 10 }, 2*time.Second, time.Millisecond)
	r.Stop()
}
