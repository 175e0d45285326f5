package stream

import (
	"cmp"
	"context"

	"github.com/nomemory/lambdas/internal/util"
	"github.com/nomemory/lambdas/lazy"
)

// Reducer collapses a stream into a single lazily evaluated value.
type Reducer[S any, T any] func(Stream[S]) lazy.Lazy[T]

// Reduce folds the stream into a single value. The accumulator starts at seed
// and f is applied once per element, in stream order.
func Reduce[T any, R any](
	ctx context.Context,
	s Stream[T],
	seed R,
	f func(acc R, v T) R,
) (R, error) {
	return ReduceWithErr(ctx, s, seed, func(acc R, v T) (R, error) {
		return f(acc, v), nil
	})
}

// ReduceWithErr is Reduce for folding functions that can fail. The first
// failure aborts the fold and is returned as is.
func ReduceWithErr[T any, R any](
	ctx context.Context,
	s Stream[T],
	seed R,
	f func(acc R, v T) (R, error),
) (R, error) {
	return ReduceWithErrAndCtx(ctx, s, seed, func(_ context.Context, acc R, v T) (R, error) {
		return f(acc, v)
	})
}

// ReduceWithErrAndCtx is Reduce for folding functions that observe
// cancellation and can fail.
func ReduceWithErrAndCtx[T any, R any](
	ctx context.Context,
	s Stream[T],
	seed R,
	f func(ctx context.Context, acc R, v T) (R, error),
) (R, error) {
	acc := seed
	err := s.ConsumeWithErr(ctx, func(v T) error {
		var err error
		acc, err = f(ctx, acc, v)
		return err
	})
	if err != nil {
		return util.Zero[R](), err
	}
	return acc, nil
}

// Max returns the largest element. An empty stream yields the zero value.
func Max[O cmp.Ordered](ctx context.Context, s Stream[O]) (O, error) {
	return Reduce[O](ctx, s, util.Zero[O](), func(acc, v O) O {
		return max(acc, v)
	})
}

// Min returns the smallest element. An empty stream yields the zero value.
func Min[O cmp.Ordered](ctx context.Context, s Stream[O]) (O, error) {
	return Reduce[O](ctx, s, util.Zero[O](), func(acc, v O) O {
		return min(acc, v)
	})
}

func MaxLazy[O cmp.Ordered](s Stream[O]) lazy.Lazy[O] {
	return ReduceLazy[O](s, util.Zero[O](), func(acc, v O) O {
		return max(acc, v)
	})
}

func MinLazy[O cmp.Ordered](s Stream[O]) lazy.Lazy[O] {
	return ReduceLazy[O](s, util.Zero[O](), func(acc, v O) O {
		return min(acc, v)
	})
}

func MustMax[O cmp.Ordered](s Stream[O]) O {
	v, err := Max(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return v
}

func MustMin[O cmp.Ordered](s Stream[O]) O {
	v, err := Min(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return v
}

// ReduceLazy defers the fold until the returned lazy value is fetched.
func ReduceLazy[T any, R any](
	s Stream[T],
	seed R,
	f func(acc R, v T) R,
) lazy.Lazy[R] {
	return ReduceLazyWithErrAndCtx(s, seed, func(_ context.Context, acc R, v T) (R, error) {
		return f(acc, v), nil
	})
}

func ReduceLazyWithErr[T any, R any](
	s Stream[T],
	seed R,
	f func(acc R, v T) (R, error),
) lazy.Lazy[R] {
	return ReduceLazyWithErrAndCtx(s, seed, func(_ context.Context, acc R, v T) (R, error) {
		return f(acc, v)
	})
}

func ReduceLazyWithErrAndCtx[T any, R any](
	s Stream[T],
	seed R,
	f func(ctx context.Context, acc R, v T) (R, error),
) lazy.Lazy[R] {
	return lazy.NewLazy(func(ctx context.Context) (R, error) {
		return ReduceWithErrAndCtx(ctx, s, seed, f)
	})
}

// MustReduce folds the stream with a background context and panics on
// failure. Meant for static in-memory streams, mostly in tests.
func MustReduce[T any, R any](
	s Stream[T],
	seed R,
	f func(acc R, v T) R,
) R {
	out, err := Reduce(context.Background(), s, seed, f)
	if err != nil {
		panic(err)
	}
	return out
}
