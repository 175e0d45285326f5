package stream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

// newStreamFromCollector builds a stream whose elements come from running the
// collect function over the source. Collection is deferred to Open, so the
// result stays lazy and can be materialized more than once.
func newStreamFromCollector[S any, T any](
	src Stream[S],
	collect func(ctx context.Context, src Stream[S]) ([]T, error),
) Stream[T] {
	return NewStream[T](
		&materializedStream[S, T]{src: src, collect: collect},
	)
}

type materializedStream[S any, T any] struct {
	src     Stream[S]
	collect func(ctx context.Context, src Stream[S]) ([]T, error)
	items   []T
	pos     int
}

func (m *materializedStream[S, T]) Open(ctx context.Context) error {
	items, err := m.collect(ctx, m.src)
	if err != nil {
		return err
	}
	m.items = items
	m.pos = 0
	return nil
}

func (m *materializedStream[S, T]) Close() {
	m.items = nil
}

func (m *materializedStream[S, T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.Zero[T](), ctx.Err()
	}
	if m.pos >= len(m.items) {
		return util.Zero[T](), io.EOF
	}
	v := m.items[m.pos]
	m.pos++
	return v, nil
}
