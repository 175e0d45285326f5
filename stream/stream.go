package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/internal/util"
	"github.com/nomemory/lambdas/lazy"
)

// Stream is a lazy, pull-based sequence of values. Nothing is produced until a
// terminal operation materializes the stream, and intermediate operators only
// wrap the provider function without consuming anything.
type Stream[T any] struct {
	provider   ProviderFunc[T]
	lifecycles []Lifecycle
}

func NewStream[T any](provider Provider[T]) Stream[T] {
	return newStream(provider.Emit, []Lifecycle{provider})
}

func newStream[T any](provider ProviderFunc[T], lifecycles []Lifecycle) Stream[T] {
	return Stream[T]{provider: provider, lifecycles: lifecycles}
}

type CreateStreamOption struct {
	onOpen  func(ctx context.Context) error
	onClose func()
}

func WithOpenFuncOption(openFunc func(ctx context.Context) error) CreateStreamOption {
	return CreateStreamOption{onOpen: openFunc}
}

func WithCloseFuncOption(closeFunc func()) CreateStreamOption {
	return CreateStreamOption{onClose: closeFunc}
}

func NewSimpleStream[T any](provider ProviderFunc[T], options ...CreateStreamOption) Stream[T] {
	var openFn func(ctx context.Context) error
	var closeFn func()
	for _, option := range options {
		if option.onOpen != nil {
			openFn = option.onOpen
		}
		if option.onClose != nil {
			closeFn = option.onClose
		}
	}

	var lcs []Lifecycle
	if openFn != nil || closeFn != nil {
		lcs = []Lifecycle{NewLifecycle(openFn, closeFn)}
	}
	return Stream[T]{provider: provider, lifecycles: lcs}
}

// Consume materializes the stream and applies f to every element in order.
// An empty stream returns immediately with no error. On an infinite stream
// this blocks until ctx is cancelled or the pipeline fails.
func (s Stream[T]) Consume(ctx context.Context, f func(T), options ...ConsumeOption) error {
	return s.ConsumeWithErr(ctx, func(v T) error {
		f(v)
		return nil
	}, options...)
}

// MustConsume is Consume with a background context, panicking on error.
func (s Stream[T]) MustConsume(f func(T)) {
	err := s.Consume(context.Background(), f)
	if err != nil {
		panic(err)
	}
}

// ConsumeWithErr is Consume for consumers that can fail. The first consumer
// error stops the pipeline and is returned.
func (s Stream[T]) ConsumeWithErr(ctx context.Context, f func(T) error, options ...ConsumeOption) error {
	return s.ConsumeWithErrAndCtx(ctx, func(_ context.Context, v T) error {
		return f(v)
	}, options...)
}

// ConsumeWithErrAndCtx consumes the entire stream and applies the provided function to each
// element, passing through the context so the function can honor cancellation.
// Panics raised anywhere in the pipeline while consuming are recovered and returned as
// errors, after the stream lifecycle elements are closed.
func (s Stream[T]) ConsumeWithErrAndCtx(
	ctx context.Context,
	f func(ctx context.Context, value T) error,
	options ...ConsumeOption,
) (err error) {
	for _, opt := range options {
		switch cOpt := opt.(type) {
		case *concurrentConsumeOption:
			return s.consumeConcurrently(ctx, cOpt.concurrency, f)
		default:
			return fmt.Errorf("unsupported consume option type: %T", opt)
		}
	}

	openedCtx, cancelFunc, err := openLifecycles[T](ctx, s)
	if err != nil {
		return err
	}

	// Everything opened, so everything gets closed when we leave
	defer func() {
		closeLifecycles(s)
		cancelFunc()
	}()

	defer func() {
		if rvr := recover(); rvr != nil {
			err = recoveredError(rvr)
		}
	}()

	for {
		if openedCtx.Err() != nil {
			return openedCtx.Err()
		}
		v, err := s.provider(openedCtx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := f(openedCtx, v); err != nil {
			return err
		}
	}
}

func (s Stream[T]) FindFirst() lazy.Lazy[T] {
	return lazy.NewLazyOptional[T](func(ctx context.Context) (*T, error) {
		items, err := s.Limit(1).Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return &items[0], nil
		}
		return nil, nil
	}).OrElseThrow(func() error {
		return errors.New("empty stream has no first element")
	})
}

func (s Stream[T]) FindLast() lazy.Lazy[T] {
	return lazy.NewLazyOptional[T](func(ctx context.Context) (*T, error) {
		var last *T
		err := s.Consume(ctx, func(v T) {
			last = &v
		})
		if err != nil {
			return nil, err
		}
		return last, nil
	}).OrElseThrow(func() error {
		return errors.New("empty stream has no last element")
	})
}

// FindFirstAndLast captures both ends of the stream in a single pass. For a
// single element stream both ends are the same element.
func FindFirstAndLast[T any](s Stream[T]) lazy.Lazy[lambdas.Tuple2[T, T]] {
	return lazy.NewLazyOptional[lambdas.Tuple2[T, T]](func(ctx context.Context) (*lambdas.Tuple2[T, T], error) {
		var first, last *T
		err := s.Consume(ctx, func(v T) {
			if first == nil {
				first = &v
			}
			last = &v
		})
		if err != nil {
			return nil, err
		}
		if first == nil {
			return nil, nil
		}
		return &lambdas.Tuple2[T, T]{A: *first, B: *last}, nil
	}).OrElseThrow(func() error {
		return errors.New("empty stream has no first and last elements")
	})
}

// Collect materializes the stream into a slice.
func (s Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var result []T
	err := s.Consume(ctx, func(v T) {
		result = append(result, v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MustCollect is Collect with a background context, panicking on error. Meant
// for static in-memory streams, mostly in tests.
func (s Stream[T]) MustCollect() []T {
	result, err := s.Collect(context.Background())
	if err != nil {
		panic(err)
	}
	return result
}

func (s Stream[T]) Filter(predicate lambdas.Predicate[T]) Stream[T] {
	return s.FilterWithErAndCtx(predicate.ToErrCtx())
}

func (s Stream[T]) FilterWithErr(predicate lambdas.PredicateWithErr[T]) Stream[T] {
	return s.FilterWithErAndCtx(predicate.ToErrCtx())
}

func (s Stream[T]) FilterWithErAndCtx(predicate lambdas.PredicateWithErrAndCtx[T]) Stream[T] {
	return newStream[T](func(ctx context.Context) (T, error) {
		for {
			v, err := s.provider(ctx)
			if err != nil {
				return v, err
			}
			keep, err := predicate(ctx, v)
			if err != nil {
				// Wrapped so a predicate returning io.EOF cannot fake end of stream
				return util.Zero[T](), fmt.Errorf("stream filter failed: %w", err)
			}
			if keep {
				return v, nil
			}
		}
	}, s.lifecycles)
}

// Count materializes the stream and reports how many elements it yielded.
func (s Stream[T]) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.Consume(ctx, func(v T) {
		count++
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MustCount is Count with a background context, panicking on error.
func (s Stream[T]) MustCount() int {
	count, err := s.Count(context.Background())
	if err != nil {
		panic(err)
	}
	return count
}

func (s Stream[T]) IsEmpty(ctx context.Context) (bool, error) {
	return s.FindFirst().IsEmpty(ctx)
}

// WithAdditionalLifecycle attaches another Lifecycle to the stream, opened after the
// existing elements and closed together with them when the stream is materialized.
func (s Stream[T]) WithAdditionalLifecycle(lch Lifecycle) Stream[T] {
	return newStream(s.provider, append(s.lifecycles, lch))
}

// Peek observes elements as they flow by without consuming the stream. The
// callback runs only if and when the stream is materialized.
func (s Stream[T]) Peek(f func(v T)) Stream[T] {
	return Map(
		s,
		func(v T) T {
			f(v)
			return v
		})
}

// FromLazy adapts a Lazy into a stream of at most one element. An empty Lazy
// becomes an empty stream, a failing one fails the stream.
func FromLazy[T any](l lazy.Lazy[T]) Stream[T] {
	fetched := false
	return NewSimpleStream(
		func(ctx context.Context) (T, error) {
			if fetched {
				return util.Zero[T](), io.EOF
			}
			fetched = true

			v, err := l.GetOptional(ctx)
			if err != nil {
				return util.Zero[T](), err
			}
			if v == nil {
				return util.Zero[T](), io.EOF
			}
			return *v, nil
		},
		WithOpenFuncOption(func(_ context.Context) error {
			fetched = false
			return nil
		}),
	)
}

func openLifecycles[T any](ctx context.Context, s Stream[T]) (context.Context, context.CancelFunc, error) {
	openCtx, cancelFunc := context.WithCancel(ctx)
	for idx, l := range s.lifecycles {
		err := safeOpen(openCtx, l)
		if err != nil {
			// Close only the elements opened so far. The failing element is
			// never closed.
			for i := 0; i < idx; i++ {
				s.lifecycles[i].Close()
			}
			cancelFunc()
			return nil, nil, fmt.Errorf("failed to open stream lifecycle element %d: %w", idx, err)
		}
	}
	return openCtx, cancelFunc, nil
}

// safeOpen opens a single lifecycle element, recovering panics into errors so
// that a panicking Open is treated exactly like a failing one.
func safeOpen(ctx context.Context, l Lifecycle) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			err = recoveredError(rvr)
		}
	}()
	return l.Open(ctx)
}

func closeLifecycles[T any](s Stream[T]) {
	for _, l := range s.lifecycles {
		l.Close()
	}
}

func recoveredError(rvr any) error {
	slog.Error(fmt.Sprintf("recovered panic: %v\n%s", rvr, debug.Stack()))
	if asErr, ok := rvr.(error); ok {
		return fmt.Errorf("stream recovered error: %w", asErr)
	}
	return fmt.Errorf("stream recovered error value: %v", rvr)
}
