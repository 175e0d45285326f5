package lazy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
)

// Lazy defers computing a value until one of the accessors runs. The value is
// optional, a nil result from the fetch function means empty. Callers choose
// between the strict accessors (Get and friends), which treat empty as an
// error, and the Optional ones, which surface nil.
type Lazy[T any] struct {
	fetch func(ctx context.Context) (*T, error)

	// emptyErr, when set, supplies the error Get returns for an empty value
	emptyErr func() error
}

// NewLazyOptional wraps a fetch function that may legitimately come up empty.
func NewLazyOptional[T any](fetch func(ctx context.Context) (*T, error)) Lazy[T] {
	return Lazy[T]{fetch: fetch}
}

// Just wraps an already known value.
func Just[T any](v T) Lazy[T] {
	return Lazy[T]{fetch: func(ctx context.Context) (*T, error) {
		return &v, nil
	}}
}

// JustOptional wraps an already known, possibly nil, value.
func JustOptional[T any](v *T) Lazy[T] {
	return Lazy[T]{fetch: func(ctx context.Context) (*T, error) {
		return v, nil
	}}
}

// NewLazy wraps a fetch function that always produces a value when it
// succeeds.
func NewLazy[T any](fetch func(ctx context.Context) (T, error)) Lazy[T] {
	return Lazy[T]{fetch: func(ctx context.Context) (*T, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}}
}

// Empty is a Lazy with no value.
func Empty[T any]() Lazy[T] {
	return Lazy[T]{fetch: func(_ context.Context) (*T, error) {
		return nil, nil
	}}
}

// Error is a Lazy whose evaluation always fails with err.
func Error[T any](err error) Lazy[T] {
	return Lazy[T]{fetch: func(_ context.Context) (*T, error) {
		return nil, err
	}}
}

// Get evaluates and returns the value. An empty result is an error here, use
// GetOptional when empty is expected.
func (l Lazy[T]) Get(ctx context.Context) (T, error) {
	v, err := l.fetch(ctx)
	if err != nil {
		return util.Zero[T](), err
	}
	if v == nil {
		if l.emptyErr != nil {
			return util.Zero[T](), l.emptyErr()
		}
		return util.Zero[T](), fmt.Errorf("lazy value is empty")
	}
	return *v, nil
}

// GetOptional evaluates and returns the value, nil when empty.
func (l Lazy[T]) GetOptional(ctx context.Context) (*T, error) {
	return l.fetch(ctx)
}

// MustGetOptional is GetOptional with a background context, panicking on
// error. Empty still comes back as nil, not a panic.
func (l Lazy[T]) MustGetOptional() *T {
	v, err := l.GetOptional(context.Background())
	if err != nil {
		panic(err)
	}
	return v
}

// OrElseThrow returns a Lazy whose Get fails with the error supplied by
// errFactory when the value is empty. Optional accessors are unaffected.
func (l Lazy[T]) OrElseThrow(errFactory func() error) Lazy[T] {
	return Lazy[T]{fetch: l.fetch, emptyErr: errFactory}
}

// OrElse evaluates and returns the value, or v when empty.
func (l Lazy[T]) OrElse(ctx context.Context, v T) (T, error) {
	got, err := l.fetch(ctx)
	if err != nil {
		return util.Zero[T](), err
	}
	if got == nil {
		return v, nil
	}
	return *got, nil
}

// MustOrElse is OrElse with a background context, panicking on error.
func (l Lazy[T]) MustOrElse(v T) T {
	got, err := l.fetch(context.Background())
	if err != nil {
		panic(err)
	}
	if got == nil {
		return v
	}
	return *got
}

// Filter empties the value unless it satisfies the predicate.
func (l Lazy[T]) Filter(predicate lambdas.Predicate[T]) Lazy[T] {
	return l.FilterWithErrAndCtx(predicate.ToErrCtx())
}

// FilterWithErr is Filter for predicates that can fail.
func (l Lazy[T]) FilterWithErr(predicate lambdas.PredicateWithErr[T]) Lazy[T] {
	return l.FilterWithErrAndCtx(predicate.ToErrCtx())
}

// FilterWithErrAndCtx is Filter for predicates that observe cancellation and
// can fail.
func (l Lazy[T]) FilterWithErrAndCtx(predicate lambdas.PredicateWithErrAndCtx[T]) Lazy[T] {
	return NewLazyOptional[T](func(ctx context.Context) (*T, error) {
		v, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		ok, err := predicate(ctx, *v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return v, nil
	})
}

// Map transforms the value when present, empty stays empty.
func Map[SRC any, TGT any](src Lazy[SRC], mapper lambdas.Mapper[SRC, TGT]) Lazy[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx())
}

// MapWithErr is Map for mappers that can fail.
func MapWithErr[SRC any, TGT any](src Lazy[SRC], mapper lambdas.MapperWithErr[SRC, TGT]) Lazy[TGT] {
	return MapWithErrAndCtx(src, mapper.ToErrCtx())
}

// MapWithErrAndCtx is Map for mappers that observe cancellation and can fail.
func MapWithErrAndCtx[SRC any, TGT any](src Lazy[SRC], mapper lambdas.MapperWithErrAndCtx[SRC, TGT]) Lazy[TGT] {
	return NewLazyOptional[TGT](func(ctx context.Context) (*TGT, error) {
		v, err := src.GetOptional(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		tgt, err := mapper(ctx, *v)
		if err != nil {
			return nil, err
		}
		return &tgt, nil
	})
}

// MapWhileFiltering transforms the value when present, a nil mapper result
// empties the Lazy.
func MapWhileFiltering[SRC any, TGT any](src Lazy[SRC], mapper lambdas.Mapper[SRC, *TGT]) Lazy[TGT] {
	return MapWhileFilteringWithErrAndCtx(src, mapper.ToErrCtx())
}

func MapWhileFilteringWithErr[SRC any, TGT any](src Lazy[SRC], mapper lambdas.MapperWithErr[SRC, *TGT]) Lazy[TGT] {
	return MapWhileFilteringWithErrAndCtx(src, mapper.ToErrCtx())
}

func MapWhileFilteringWithErrAndCtx[SRC any, TGT any](src Lazy[SRC], mapper lambdas.MapperWithErrAndCtx[SRC, *TGT]) Lazy[TGT] {
	return NewLazyOptional[TGT](func(ctx context.Context) (*TGT, error) {
		v, err := src.GetOptional(ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return mapper(ctx, *v)
	})
}

// OrElseGet evaluates and returns the value, or computes a fallback when
// empty.
func (l Lazy[T]) OrElseGet(ctx context.Context, alt func() T) (T, error) {
	v, err := l.GetOptional(ctx)
	if err != nil {
		return util.Zero[T](), err
	}
	if v != nil {
		return *v, nil
	}
	return alt(), nil
}

// Or falls back to alt when this Lazy comes up empty.
func (l Lazy[T]) Or(alt Lazy[T]) Lazy[T] {
	return NewLazyOptional(func(ctx context.Context) (*T, error) {
		v, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
		return alt.fetch(ctx)
	})
}

func (l Lazy[T]) MarshalJSON() ([]byte, error) {
	v, err := l.fetch(context.Background())
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (l *Lazy[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		l.fetch = func(_ context.Context) (*T, error) {
			return nil, nil
		}
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	l.fetch = func(_ context.Context) (*T, error) {
		return &value, nil
	}
	return nil
}

// IsEmpty evaluates the Lazy and reports whether it came up empty.
func (l Lazy[T]) IsEmpty(ctx context.Context) (bool, error) {
	v, err := l.GetOptional(ctx)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

// MustGet is Get with a background context, panicking on error or empty.
func (l Lazy[T]) MustGet() T {
	v, err := l.Get(context.Background())
	if err != nil {
		panic(err)
	}
	return v
}

// MustIsEmpty is IsEmpty with a background context, panicking on error.
func (l Lazy[T]) MustIsEmpty() bool {
	empty, err := l.IsEmpty(context.Background())
	if err != nil {
		panic(err)
	}
	return empty
}

// FlatMap chains into another Lazy produced from the value. Empty stays
// empty.
func FlatMap[SRC any, TGT any](src Lazy[SRC], mapper lambdas.Mapper[SRC, Lazy[TGT]]) Lazy[TGT] {
	return MapWhileFilteringWithErrAndCtx(src, func(ctx context.Context, v SRC) (*TGT, error) {
		return mapper(v).GetOptional(ctx)
	})
}
