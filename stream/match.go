package stream

import (
	"context"

	"github.com/nomemory/lambdas"
)

// AnyMatch reports whether any element of the stream matches the predicate.
// Materialization stops at the first match.
func (s Stream[T]) AnyMatch(ctx context.Context, predicate lambdas.Predicate[T]) (bool, error) {
	empty, err := s.Filter(predicate).IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// AllMatch reports whether all elements of the stream match the predicate.
// Materialization stops at the first mismatch. An empty stream matches.
func (s Stream[T]) AllMatch(ctx context.Context, predicate lambdas.Predicate[T]) (bool, error) {
	return s.NoneMatch(ctx, predicate.Negate())
}

// NoneMatch reports whether no element of the stream matches the predicate.
func (s Stream[T]) NoneMatch(ctx context.Context, predicate lambdas.Predicate[T]) (bool, error) {
	anyMatched, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !anyMatched, nil
}

// MustAnyMatch is a convenience method that panics if the stream errors.
// Should be used for testing purposes or when streams are static (e.g. slice sourced streams)
func (s Stream[T]) MustAnyMatch(predicate lambdas.Predicate[T]) bool {
	matched, err := s.AnyMatch(context.Background(), predicate)
	if err != nil {
		panic(err)
	}
	return matched
}

// MustAllMatch is a convenience method that panics if the stream errors.
// Should be used for testing purposes or when streams are static (e.g. slice sourced streams)
func (s Stream[T]) MustAllMatch(predicate lambdas.Predicate[T]) bool {
	matched, err := s.AllMatch(context.Background(), predicate)
	if err != nil {
		panic(err)
	}
	return matched
}

// MustNoneMatch is a convenience method that panics if the stream errors.
// Should be used for testing purposes or when streams are static (e.g. slice sourced streams)
func (s Stream[T]) MustNoneMatch(predicate lambdas.Predicate[T]) bool {
	matched, err := s.NoneMatch(context.Background(), predicate)
	if err != nil {
		panic(err)
	}
	return matched
}
