package stream

import "context"

// Distinct filters out duplicate elements, keeping the first occurrence of each.
// The set of seen elements is held in memory while the stream is materialized.
func Distinct[T comparable](s Stream[T]) Stream[T] {
	return DistinctBy(s, func(v T) T {
		return v
	})
}

// DistinctBy filters out elements whose key has already been seen, keeping the
// first occurrence per key.
func DistinctBy[T any, K comparable](s Stream[T], keyFunc func(T) K) Stream[T] {
	var seen map[K]bool
	return s.Filter(func(v T) bool {
		k := keyFunc(v)
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	}).WithAdditionalLifecycle(NewLifecycle(
		func(_ context.Context) error {
			// Fresh set per materialization
			seen = make(map[K]bool)
			return nil
		},
		func() {
		},
	))
}
