package stream

import (
	"context"
	"io"
	"slices"

	"github.com/nomemory/lambdas/internal/util"
)

// Just creates a stream from the provided values. The stream can be materialized
// multiple times, each materialization replays the values in order.
func Just[T any](values ...T) Stream[T] {
	return NewStream(&justProvider[T]{items: values})
}

// FromSlice creates a stream over a copy of the provided slice, so later changes to
// the original slice are not observed by the stream. A nil slice is an empty stream.
func FromSlice[T any](slice []T) Stream[T] {
	return Just(slices.Clone(slice)...)
}

type justProvider[T any] struct {
	items []T
	pos   int
}

func (j *justProvider[T]) Open(_ context.Context) error {
	j.pos = 0
	return nil
}

func (j *justProvider[T]) Close() {
}

func (j *justProvider[T]) Emit(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		return util.Zero[T](), err
	}
	if j.pos >= len(j.items) {
		return util.Zero[T](), io.EOF
	}
	v := j.items[j.pos]
	j.pos++
	return v, nil
}
