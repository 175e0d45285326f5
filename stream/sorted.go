package stream

import (
	"cmp"
	"context"
	"slices"

	"github.com/nomemory/lambdas"
)

// Sorted buffers the entire stream when materialized and emits its elements
// sorted by the comparator. The sort is stable.
func Sorted[T any](s Stream[T], comparator lambdas.Comparator[T]) Stream[T] {
	return newStreamFromCollector(s, func(ctx context.Context, src Stream[T]) ([]T, error) {
		collected, err := src.Collect(ctx)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(collected, comparator)
		return collected, nil
	})
}

// SortedOrdered is Sorted for naturally ordered element types.
func SortedOrdered[T cmp.Ordered](s Stream[T]) Stream[T] {
	return Sorted(s, lambdas.ComparatorForOrdered[T]())
}
