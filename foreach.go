package lambdas

import (
	"iter"
	"slices"
)

// ForEach traverses seq exactly once in source order, evaluates predicate once
// per element, and invokes handler for every element the predicate accepts.
// The handler receives the element's zero-based position in the source
// sequence, not the count of accepted elements so far: filtering dents the
// handled subsequence, never renumbers it.
//
// Elements are handed over as they are produced, so seq may be lazy or
// unbounded upstream of a finite prefix. An empty sequence results in zero
// predicate evaluations and zero handler invocations. A panic raised by the
// predicate or the handler is not recovered; it aborts the traversal and no
// element at or after the failing position is visited again.
//
// ForEach panics if seq, predicate or handler is nil.
func ForEach[T any](seq iter.Seq[T], predicate Predicate[T], handler IndexedConsumer[T]) {
	if seq == nil {
		panic("lambdas: ForEach called with a nil sequence")
	}
	if predicate == nil {
		panic("lambdas: ForEach called with a nil predicate")
	}
	if handler == nil {
		panic("lambdas: ForEach called with a nil handler")
	}
	idx := 0
	for v := range seq {
		if predicate(v) {
			handler(idx, v)
		}
		idx++
	}
}

// ForEachSlice is ForEach over a slice. A nil slice is an empty sequence.
func ForEachSlice[T any](items []T, predicate Predicate[T], handler IndexedConsumer[T]) {
	ForEach(slices.Values(items), predicate, handler)
}
