package stream

import (
	"context"
	"sync"
)

// WithLockWhileMaterializing holds mu from open to close, so streams sharing
// mutable state can be materialized from multiple goroutines one at a time.
func (s Stream[T]) WithLockWhileMaterializing(mu sync.Locker) Stream[T] {
	return s.WithAdditionalLifecycle(NewLifecycle(
		func(ctx context.Context) error {
			mu.Lock()
			return nil
		},
		func() {
			mu.Unlock()
		},
	))
}
