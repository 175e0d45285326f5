package stream

import (
	"context"
	"errors"

	"github.com/nomemory/lambdas"
)

var (
	ErrNilPredicate = errors.New("nil predicate provided for stream traversal")
	ErrNilHandler   = errors.New("nil handler provided for stream traversal")
)

// ConsumeIndexed consumes the entire stream, handing each element to the handler
// together with its zero-based position in the stream.
func (s Stream[T]) ConsumeIndexed(ctx context.Context, handler lambdas.IndexedConsumer[T]) error {
	if handler == nil {
		return ErrNilHandler
	}
	idx := -1
	return s.Consume(ctx, func(v T) {
		idx++
		handler(idx, v)
	})
}

// ConsumeMatching consumes the entire stream, evaluating the predicate once per
// element in stream order and invoking the handler only for elements the predicate
// accepts. The handler receives the element's zero-based position in the source
// stream, not the count of matches so far.
//
// A nil predicate or handler is reported as an error before the stream is opened.
func (s Stream[T]) ConsumeMatching(
	ctx context.Context,
	predicate lambdas.Predicate[T],
	handler lambdas.IndexedConsumer[T],
) error {
	if predicate == nil {
		return ErrNilPredicate
	}
	if handler == nil {
		return ErrNilHandler
	}
	return s.ConsumeMatchingWithErr(
		ctx,
		func(v T) (bool, error) {
			return predicate(v), nil
		},
		func(idx int, v T) error {
			handler(idx, v)
			return nil
		},
	)
}

// ConsumeMatchingWithErr is ConsumeMatching for fallible predicates and handlers.
// The first error returned by either aborts the traversal, closes the stream, and is
// surfaced to the caller unchanged. Elements at or after the failing position are not
// pulled from the source.
func (s Stream[T]) ConsumeMatchingWithErr(
	ctx context.Context,
	predicate lambdas.PredicateWithErr[T],
	handler lambdas.IndexedConsumerWithErr[T],
) error {
	if predicate == nil {
		return ErrNilPredicate
	}
	if handler == nil {
		return ErrNilHandler
	}
	idx := -1
	return s.ConsumeWithErr(ctx, func(v T) error {
		idx++
		shouldHandle, err := predicate(v)
		if err != nil {
			return err
		}
		if !shouldHandle {
			return nil
		}
		return handler(idx, v)
	})
}
