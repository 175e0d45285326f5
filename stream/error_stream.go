package stream

import (
	"context"

	"github.com/nomemory/lambdas/internal/util"
)

// Error creates a stream that fails with err on open.
func Error[T any](err error) Stream[T] {
	return newStream[T](func(ctx context.Context) (T, error) {
		return util.Zero[T](), err
	}, []Lifecycle{NewLifecycle(func(_ context.Context) error {
		return err
	}, func() {
		// NOP
	})})
}
