// Package poll runs a function on a fixed interval for as long as a
// context lives.
package poll

import (
	"context"
	"time"
)

// Every calls fn immediately and then once per interval until ctx is done
// or fn returns an error. The ticker is released before Every returns.
// It returns ctx.Err() on cancellation and fn's error otherwise.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// a tick and cancellation can be ready together
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}
