package stream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

// Empty creates a stream with no elements.
func Empty[T any]() Stream[T] {
	return newStream(func(ctx context.Context) (T, error) {
		return util.Zero[T](), io.EOF
	}, nil)
}
