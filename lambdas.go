// Package lambdas is the function-value vocabulary shared by the whole module:
// mappers, predicates, consumers and the adapters between their plain, erroring
// and context-aware flavors. The stream and lazy packages build on these types.
package lambdas

import (
	"cmp"
	"context"
)

type Mapper[S any, T any] func(v S) T
type MapperWithErr[S any, T any] func(v S) (T, error)
type MapperWithErrAndCtx[S any, T any] func(context.Context, S) (T, error)

type Predicate[S any] Mapper[S, bool]
type PredicateWithErr[S any] MapperWithErr[S, bool]
type PredicateWithErrAndCtx[S any] MapperWithErrAndCtx[S, bool]

// Consumer is a side-effecting callback receiving one element.
type Consumer[T any] func(v T)
type ConsumerWithErr[T any] func(v T) error

// IndexedConsumer is a side-effecting callback receiving an element together
// with its zero-based position in the source sequence.
type IndexedConsumer[T any] func(idx int, v T)
type IndexedConsumerWithErr[T any] func(idx int, v T) error

func (m Mapper[S, T]) ToErrCtx() MapperWithErrAndCtx[S, T] {
	return func(_ context.Context, v S) (T, error) {
		return m(v), nil
	}
}

func (m MapperWithErr[S, T]) ToErrCtx() MapperWithErrAndCtx[S, T] {
	return func(_ context.Context, v S) (T, error) {
		return m(v)
	}
}

func (p Predicate[S]) ToErrCtx() PredicateWithErrAndCtx[S] {
	return func(_ context.Context, v S) (bool, error) {
		return p(v), nil
	}
}

func (p PredicateWithErr[S]) ToErrCtx() PredicateWithErrAndCtx[S] {
	return func(_ context.Context, v S) (bool, error) {
		return p(v)
	}
}

// And returns a predicate that is true when both p and other are true.
// other is not evaluated when p is false.
func (p Predicate[S]) And(other Predicate[S]) Predicate[S] {
	return func(v S) bool {
		return p(v) && other(v)
	}
}

// Or returns a predicate that is true when either p or other is true.
// other is not evaluated when p is true.
func (p Predicate[S]) Or(other Predicate[S]) Predicate[S] {
	return func(v S) bool {
		return p(v) || other(v)
	}
}

// Negate returns the logical complement of p.
func (p Predicate[S]) Negate() Predicate[S] {
	return func(v S) bool {
		return !p(v)
	}
}

// Entry defines a key/value pair.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Tuple2 is a pair of values of arbitrary types.
type Tuple2[A any, B any] struct {
	A A
	B B
}

type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}

// UnpackResult adapts Result unpacking to a MapperWithErr shape.
func UnpackResult[T any](r Result[T]) (T, error) {
	return r.Unpack()
}

type Comparable[T any] interface {
	Compare(other T) int
}

type Comparator[T any] func(a, b T) int

// Reversed returns a comparator imposing the reverse ordering of c.
func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

func ComparatorForComparable[T Comparable[T]]() Comparator[T] {
	return func(a, b T) int {
		return a.Compare(b)
	}
}

func ComparatorForOrdered[T cmp.Ordered]() Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(a, b)
	}
}
