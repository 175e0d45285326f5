package stream

import (
	"context"
	"fmt"
	"io"
	"time"
)

type WindowOption func(*windowConfig)

type windowConfig struct {
	step            int
	timeout         time.Duration
	omitLastPartial bool
}

// WithSlidingWindowStepOption sets the step size for the window. allowing for overlapping windows.
func WithSlidingWindowStepOption(n int) WindowOption {
	return func(cfg *windowConfig) {
		cfg.step = n
	}
}

// todo:support this :)
//func WithWindowTimeoutOption(d time.Duration) WindowOption {
//	return func(cfg *windowConfig) {
//		cfg.timeout = d
//	}
//}

// WithOmitLastPartialWindowOption causes the stream to avoid emitting last window even if it is not full.
func WithOmitLastPartialWindowOption() WindowOption {
	return func(cfg *windowConfig) {
		cfg.omitLastPartial = true
	}
}

type windowProvider[T any] struct {
	size    int
	cfg     windowConfig
	buf     []T
	srcDone bool
}

// Window groups the source stream into windows of the given size. By default
// windows do not overlap, WithSlidingWindowStepOption allows sliding windows.
func Window[T any](s Stream[T], size int, opts ...WindowOption) Stream[[]T] {
	if size <= 0 {
		return Error[[]T](fmt.Errorf("window size must be greater than 0"))
	}

	// A step equal to the size means adjacent windows
	cfg := windowConfig{step: size}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.step <= 0 {
		return Error[[]T](fmt.Errorf("step must be greater than 0, or omit the option for no overlap"))
	}
	if cfg.step > size {
		return Error[[]T](fmt.Errorf("step must be less than or equal to size"))
	}

	return NewDownStream(s, &windowProvider[T]{size: size, cfg: cfg})
}

func (w *windowProvider[T]) Open(_ context.Context, _ ProviderFunc[T]) error {
	w.buf = nil
	w.srcDone = false
	return nil
}

func (w *windowProvider[T]) Emit(ctx context.Context, srcProvider ProviderFunc[T]) ([]T, error) {
	// A partial window already went out, nothing more can follow it
	if w.srcDone {
		return nil, io.EOF
	}

	for len(w.buf) < w.size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := srcProvider(ctx)
		if err == nil {
			w.buf = append(w.buf, v)
			continue
		}
		if err == io.EOF && len(w.buf) > 0 && !w.cfg.omitLastPartial && w.cfg.step != 1 {
			out := make([]T, len(w.buf))
			copy(out, w.buf)
			w.buf = nil
			w.srcDone = true
			return out, nil
		}
		return nil, err
	}

	out := make([]T, w.size)
	copy(out, w.buf[:w.size])

	// Slide forward, or start over when the step swallows the whole buffer
	if w.cfg.step >= len(w.buf) {
		w.buf = nil
	} else {
		w.buf = w.buf[w.cfg.step:]
	}

	return out, nil
}

func (w *windowProvider[T]) Close() {
}
