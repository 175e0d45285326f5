package stream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/internal/util"
)

type mergeProvider[T any] struct {
	cmp   func(a, b T) int
	heads []*T
}

// MergeSortedStreams merges multiple sorted streams into a single sorted stream.
// The streams must be sorted according to the provided comparator function.
func MergeSortedStreams[T any](comparator func(a, b T) int, streams ...Stream[T]) Stream[T] {
	if len(streams) == 0 {
		return Empty[T]()
	}
	return NewDownMultiStream(
		streams,
		&mergeProvider[T]{cmp: comparator},
	)
}

func (m *mergeProvider[T]) Open(_ context.Context, srcProviders []ProviderFunc[T]) error {
	// Fresh head slots per materialization
	m.heads = make([]*T, len(srcProviders))
	return nil
}

func (m *mergeProvider[T]) Emit(ctx context.Context, srcProviders []ProviderFunc[T]) (T, error) {
	// Refill every empty slot. A drained source just stays empty.
	for i, pull := range srcProviders {
		if m.heads[i] != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return util.Zero[T](), err
		}
		v, err := pull(ctx)
		if err == io.EOF {
			continue
		}
		if err != nil {
			return v, err
		}
		m.heads[i] = &v
	}

	lowIdx := -1
	var low *T
	for i, h := range m.heads {
		if h == nil {
			continue
		}
		if low == nil || m.cmp(*h, *low) < 0 {
			low = h
			lowIdx = i
		}
	}
	if low == nil {
		return util.Zero[T](), io.EOF
	}

	m.heads[lowIdx] = nil
	return *low, nil
}

func (m *mergeProvider[T]) Close() {
}
