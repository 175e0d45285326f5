package stream

import (
	"context"
	"fmt"
)

// subStreamRegistry tracks the sub streams of a composite operator, which
// of them are currently open, and how to close each one. Operators that
// register streams dynamically while emitting (e.g. Concat) rely on reset
// trimming back to the initial registrations on re-materialization.
// Not goroutine safe, a registry belongs to a single materialization at a time.
type subStreamRegistry struct {
	streams []any
	opened  []bool
	// closers[i] is nil while streams[i] is not open
	closers []func()

	// open order is recorded so closing can run in reverse
	openOrder []int

	// registrations past this count are dynamic and dropped by reset
	baseCount int
}

func registerSubStream[T any](b *subStreamRegistry, s Stream[T]) int {
	b.streams = append(b.streams, s)
	b.opened = append(b.opened, false)
	b.closers = append(b.closers, nil)
	return len(b.streams) - 1
}

// reset returns the builder to its pre-open state so the stream can be
// materialized again.
func (b *subStreamRegistry) reset() {
	b.streams = b.streams[:b.baseCount]
	b.opened = b.opened[:b.baseCount]
	b.closers = b.closers[:b.baseCount]
	for i := range b.opened {
		b.opened[i] = false
		b.closers[i] = nil
	}
	b.openOrder = b.openOrder[:0]
}

func openSubStream[T any](ctx context.Context, b *subStreamRegistry, idx int) (ProviderFunc[T], error) {
	if idx < 0 || idx >= len(b.streams) {
		return nil, fmt.Errorf("stream index out of range: %d;len=%d", idx, len(b.streams))
	}
	if b.opened[idx] {
		return nil, fmt.Errorf("stream at index %d is already opened", idx)
	}
	s, ok := b.streams[idx].(Stream[T])
	if !ok {
		return nil, fmt.Errorf("stream at index %d is not of type Stream[%T]", idx, b.streams[idx])
	}
	_, cancel, err := openLifecycles[T](ctx, s)
	if err != nil {
		return nil, fmt.Errorf("error opening stream at index %d: %w", idx, err)
	}

	b.closers[idx] = func() {
		closeLifecycles(s)
		cancel()
	}
	b.opened[idx] = true
	b.openOrder = append(b.openOrder, idx)

	return s.provider, nil
}

func closeSubStream(b *subStreamRegistry, idx int) error {
	if idx < 0 || idx >= len(b.closers) {
		return fmt.Errorf("stream index out of range: %d;len=%d", idx, len(b.closers))
	}
	if !b.opened[idx] {
		return fmt.Errorf("stream at index %d is not opened", idx)
	}

	// Closing twice is fine, the second call finds a nil closer
	if b.closers[idx] != nil {
		b.closers[idx]()
		b.closers[idx] = nil
	}
	return nil
}

func newRegistryStream[T any](
	b *subStreamRegistry,
	optOpenFunc func(ctx context.Context, b *subStreamRegistry) error,
	emitFunc func(ctx context.Context, b *subStreamRegistry) (T, error),
	optCloseFunc func(),
) Stream[T] {
	b.baseCount = len(b.streams)
	closeFunc := func() {
		// Anything still open closes in reverse open order
		for i := len(b.openOrder) - 1; i >= 0; i-- {
			cf := b.closers[b.openOrder[i]]
			if cf != nil {
				cf()
			}
		}
		if optCloseFunc != nil {
			optCloseFunc()
		}
	}
	return newStream(
		func(ctx context.Context) (T, error) {
			return emitFunc(ctx, b)
		},
		[]Lifecycle{NewLifecycle(func(ctx context.Context) error {
			b.reset()
			if optOpenFunc != nil {
				err := optOpenFunc(ctx, b)
				// The open hook may have opened sub streams before failing,
				// those must not leak
				if err != nil {
					closeFunc()
				}
				return err
			}
			return nil
		},
			closeFunc,
		)},
	)
}
