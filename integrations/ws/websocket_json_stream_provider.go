package ws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/nomemory/lambdas/stream"
)

type wsJsonStreamProvider[T any] struct {
	dial func(ctx context.Context) (*websocket.Conn, error)
	conn *websocket.Conn
}

// CreateJsonStreamFromWebSocket creates a stream of T decoding json messages
// read from a websocket. The connection is dialed lazily when the stream is
// opened and closed when the stream context is done.
func CreateJsonStreamFromWebSocket[T any](wsFactory func(ctx context.Context) (*websocket.Conn, error)) stream.Stream[T] {
	return stream.NewStream(&wsJsonStreamProvider[T]{
		dial: wsFactory,
	})
}

func (p *wsJsonStreamProvider[T]) Open(ctx context.Context) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	p.conn = conn

	// ReadJSON has no context variant, closing the connection is the only way
	// to unblock a pending read once the context is done
	go func() {
		<-ctx.Done()
		if p.conn == nil {
			return
		}
		if err := p.conn.Close(); err != nil {
			slog.Warn(fmt.Sprintf("error closing websocket: %v", err))
		}
	}()

	return nil
}

func (p *wsJsonStreamProvider[T]) Close() {
	// The goroutine in Open owns the connection shutdown
}

func (p *wsJsonStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	var msg T
	if err := ctx.Err(); err != nil {
		return msg, err
	}
	if err := p.conn.ReadJSON(&msg); err != nil {
		// A read failing because the context closed the socket is a
		// cancellation, not a transport error
		if ctx.Err() != nil {
			return msg, ctx.Err()
		}
		return msg, fmt.Errorf("error reading from websocket: %w", err)
	}
	return msg, nil
}
