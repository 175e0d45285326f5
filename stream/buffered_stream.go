package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

// Buffered creates a buffered stream from the source stream with a given buffer size.
// The source stream is read eagerly by a goroutine into the buffer, so slow consumers
// do not stall upstream production.
func (s Stream[T]) Buffered(size int) Stream[T] {
	if size <= 0 {
		return Error[T](fmt.Errorf("buffer size must be greater than 0"))
	}
	if size == 1 {
		return s
	}

	// Created at open time so the stream can be collected more than once
	var buf chan lambdas.Result[T]

	// Results are unpacked inline instead of mapping over a
	// Stream[lambdas.Result[T]]: a method of Stream[T] must not instantiate
	// Stream with a type argument derived from T, the compiler rejects the
	// instantiation cycle.
	return newStream[T](
		func(ctx context.Context) (T, error) {
			select {
			case <-ctx.Done():
				return util.Zero[T](), ctx.Err()
			case r, ok := <-buf:
				if !ok {
					return util.Zero[T](), io.EOF
				}
				return r.Unpack()
			}
		},
		nil,
	).
		// The filling goroutine starts when the stream opens
		WithAdditionalLifecycle(NewLifecycle(
			func(ctx context.Context) error {
				// One element rides in the blocked send, so the channel
				// itself only needs size-1 slots
				buf = make(chan lambdas.Result[T], size-1)

				// The goroutine holds its own reference, a later reopen
				// swapping buf must not touch this run's channel
				out := buf
				go func() {
					defer close(out)

					err := s.Consume(ctx, func(v T) {
						select {
						case out <- lambdas.Result[T]{Value: v}:
						case <-ctx.Done():
						}
					})
					if err == nil {
						return
					}
					// The consumer sees upstream errors in stream order
					select {
					case out <- lambdas.Result[T]{Err: err}:
					case <-ctx.Done():
					}
				}()
				return nil
			},
			func() {
			},
		))
}
