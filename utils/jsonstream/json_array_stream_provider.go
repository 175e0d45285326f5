package jsonstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nomemory/lambdas/internal/util"
	"github.com/nomemory/lambdas/stream"
)

type jsonArrayStreamProvider[T any] struct {
	openReader func(ctx context.Context) (io.ReadCloser, error)
	rc         io.ReadCloser
	dec        *json.Decoder
}

// ReadJsonArray creates a stream of T decoding a JSON array element by element
// from the reader. The reader is only opened when the stream is materialized.
func ReadJsonArray[T any](readCloserProvider func(ctx context.Context) (io.ReadCloser, error)) stream.Stream[T] {
	return stream.NewStream[T](&jsonArrayStreamProvider[T]{
		openReader: readCloserProvider,
	})
}

func (j *jsonArrayStreamProvider[T]) Open(ctx context.Context) error {
	rc, err := j.openReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	j.rc = rc
	j.dec = json.NewDecoder(rc)

	// The first token must open an array
	t, err := j.dec.Token()
	if err != nil {
		return fmt.Errorf("failed to open JSON array stream: %w", err)
	}
	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return errors.New("input is not a JSON array")
	}

	return nil
}

func (j *jsonArrayStreamProvider[T]) Close() {
	if j.rc != nil {
		j.rc.Close()
		j.rc = nil
	}
	j.dec = nil
}

func (j *jsonArrayStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		return util.Zero[T](), ctx.Err()
	default:
	}

	if !j.dec.More() {
		// Verify the array closes cleanly before signalling EOF
		t, err := j.dec.Token()
		if err != nil {
			return util.Zero[T](), err
		}
		if delim, ok := t.(json.Delim); !ok || delim != ']' {
			return util.Zero[T](), fmt.Errorf("expected end of json array, got %v", t)
		}
		return util.Zero[T](), io.EOF
	}

	var element T
	if err := j.dec.Decode(&element); err != nil {
		// Include whatever the decoder buffered, the raw bytes make the
		// offending element findable
		bufferMessage := ""
		if buffered, bufErr := io.ReadAll(j.dec.Buffered()); bufErr == nil {
			bufferMessage = fmt.Sprintf(". parser buffer %s", buffered)
		}
		return util.Zero[T](), fmt.Errorf("error parsing array element%s: %w", bufferMessage, err)
	}
	return element, nil
}
