package stream

import "context"

// Provider is what a source implements to expose a Stream. It pairs the
// Lifecycle methods Open and Close with Emit, the generator producing the
// next element.
type Provider[T any] interface {
	Lifecycle

	// Emit returns the next element, or io.EOF once the stream is drained.
	// io.EOF never reaches the consumer, terminal operations swallow it.
	// Emit runs on a single goroutine at a time. Cancellation between calls
	// is handled by the caller, a blocking Emit must watch ctx itself.
	Emit(ctx context.Context) (T, error)
}

// Lifecycle hooks into stream materialization. Terminal operations open all
// lifecycle elements in order before pulling items, and close them once
// consumption ends, whether successfully or not.
type Lifecycle interface {
	Open(ctx context.Context) error
	Close()
}

// ProviderFunc is the functional form of a stream source, pulling the next
// item on each call and returning io.EOF when the stream is exhausted.
type ProviderFunc[T any] func(ctx context.Context) (T, error)

type funcLifecycle struct {
	onOpen  func(ctx context.Context) error
	onClose func()
}

// NewLifecycle creates a Lifecycle from optional open and close functions.
func NewLifecycle(openFunc func(ctx context.Context) error, closeFunc func()) Lifecycle {
	return &funcLifecycle{onOpen: openFunc, onClose: closeFunc}
}

func (l *funcLifecycle) Open(ctx context.Context) error {
	if l.onOpen == nil {
		return nil
	}
	return l.onOpen(ctx)
}

func (l *funcLifecycle) Close() {
	if l.onClose != nil {
		l.onClose()
	}
}
