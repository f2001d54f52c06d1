package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEvery_CallsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	err := Every(ctx, time.Hour, func(context.Context) error {
		calls.Add(1)
		cancel()
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Every() error = %v, expected context.Canceled", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, expected 1", calls.Load())
	}
}

func TestEvery_RepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	err := Every(ctx, 5*time.Millisecond, func(context.Context) error {
		if calls.Add(1) == 3 {
			cancel()
		}
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Every() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, expected 3", got)
	}
}

func TestEvery_NoCallsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- Every(ctx, time.Millisecond, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Every() error = %v", err)
	}

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("fn called after Every returned: %d -> %d", after, calls.Load())
	}
}

func TestEvery_StopsOnError(t *testing.T) {
	errFetch := errors.New("fetch failed")
	var calls atomic.Int32

	err := Every(context.Background(), time.Millisecond, func(context.Context) error {
		if calls.Add(1) == 2 {
			return errFetch
		}
		return nil
	})

	if !errors.Is(err, errFetch) {
		t.Errorf("Every() error = %v, expected %v", err, errFetch)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, expected 2", calls.Load())
	}
}

func TestEvery_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Every(ctx, time.Millisecond, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Every() error = %v", err)
	}
	if called {
		t.Error("fn must not run with a cancelled context")
	}
}
