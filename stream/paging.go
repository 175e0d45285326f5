package stream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

// Limit truncates the stream to at most limit elements. The source stream is
// not consumed past the limit.
func (s Stream[T]) Limit(limit int) Stream[T] {
	if limit <= 0 {
		return Empty[T]()
	}
	taken := 0
	return newStream[T](func(ctx context.Context) (T, error) {
		if taken >= limit {
			return util.Zero[T](), io.EOF
		}
		v, err := s.provider(ctx)
		if err != nil {
			return util.Zero[T](), err
		}
		taken++
		return v, nil
	}, s.lifecycles).
		WithAdditionalLifecycle(NewLifecycle(func(_ context.Context) error {
			taken = 0
			return nil
		}, func() {
		}))
}

// Skip drops the first skip elements of the stream.
func (s Stream[T]) Skip(skip int) Stream[T] {
	skipDone := false
	return newStream[T](func(ctx context.Context) (T, error) {
		if ctx.Err() != nil {
			return util.Zero[T](), ctx.Err()
		}
		if !skipDone {
			skipDone = true
			for i := 0; i < skip; i++ {
				v, err := s.provider(ctx)
				if err != nil {
					return v, err
				}
			}
		}
		return s.provider(ctx)
	}, s.lifecycles).
		WithAdditionalLifecycle(NewLifecycle(func(_ context.Context) error {
			skipDone = false
			return nil
		}, func() {
		}))
}

// Page returns the pageNum-th page of pageSize elements, pages are zero based.
func (s Stream[T]) Page(pageNum int, pageSize int) Stream[T] {
	if pageNum < 0 || pageSize <= 0 {
		return Empty[T]()
	}
	return s.Skip(pageNum * pageSize).Limit(pageSize)
}
