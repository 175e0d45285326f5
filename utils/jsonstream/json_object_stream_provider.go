package jsonstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nomemory/lambdas"
	"github.com/nomemory/lambdas/stream"
)

type jsonObjectStreamProvider[T any] struct {
	openReader func(ctx context.Context) (io.ReadCloser, error)
	rc         io.ReadCloser
	dec        *json.Decoder
}

// ReadJsonObject creates a stream of field entries decoding a JSON object field
// by field from the reader.
func ReadJsonObject[T any](readCloserProvider func(ctx context.Context) (io.ReadCloser, error)) stream.Stream[lambdas.Entry[string, T]] {
	return stream.NewStream(&jsonObjectStreamProvider[T]{
		openReader: readCloserProvider,
	})
}

func (j *jsonObjectStreamProvider[T]) Open(ctx context.Context) error {
	rc, err := j.openReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	j.rc = rc
	j.dec = json.NewDecoder(rc)

	t, err := j.dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read opening token: %w", err)
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected start of object, got %v", t)
	}

	return nil
}

func (j *jsonObjectStreamProvider[T]) Close() {
	if j.rc != nil {
		j.rc.Close()
		j.rc = nil
	}
	j.dec = nil
}

func (j *jsonObjectStreamProvider[T]) Emit(ctx context.Context) (lambdas.Entry[string, T], error) {
	var none lambdas.Entry[string, T]

	select {
	case <-ctx.Done():
		return none, ctx.Err()
	default:
	}

	if !j.dec.More() {
		t, err := j.dec.Token()
		if err != nil {
			return none, fmt.Errorf("failed to read closing token: %w", err)
		}
		if delim, ok := t.(json.Delim); !ok || delim != '}' {
			return none, fmt.Errorf("expected end of object, got %v", t)
		}
		return none, io.EOF
	}

	// Keys arrive as bare tokens, the value that follows decodes as a whole
	tok, err := j.dec.Token()
	if err != nil {
		return none, fmt.Errorf("error reading key token: %w", err)
	}
	fieldName, ok := tok.(string)
	if !ok {
		return none, fmt.Errorf("expected string key for json, got %T: %v", tok, tok)
	}

	var fieldValue T
	if err := j.dec.Decode(&fieldValue); err != nil {
		return none, fmt.Errorf("error decoding value: %w", err)
	}
	return lambdas.Entry[string, T]{Key: fieldName, Value: fieldValue}, nil
}
