package yamlstream

import (
	"context"
	"fmt"
	"io"

	"github.com/nomemory/lambdas/internal/util"
	"github.com/nomemory/lambdas/stream"
	"gopkg.in/yaml.v3"
)

type yamlDocumentStreamProvider[T any] struct {
	readCloserProvider func(ctx context.Context) (io.ReadCloser, error)
	readCloser         io.ReadCloser
	yamlDecoder        *yaml.Decoder
}

// ReadYamlDocuments creates a stream of T decoding a multi-document YAML input
// document by document. The reader is only opened when the stream is materialized.
func ReadYamlDocuments[T any](readCloserProvider func(ctx context.Context) (io.ReadCloser, error)) stream.Stream[T] {
	return stream.NewStream[T](&yamlDocumentStreamProvider[T]{
		readCloserProvider: readCloserProvider,
	})
}

func (y *yamlDocumentStreamProvider[T]) Open(ctx context.Context) error {
	rc, err := y.readCloserProvider(ctx)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	y.readCloser = rc
	y.yamlDecoder = yaml.NewDecoder(rc)
	return nil
}

func (y *yamlDocumentStreamProvider[T]) Close() {
	if y.readCloser != nil {
		y.readCloser.Close()
		y.readCloser = nil
	}
	y.yamlDecoder = nil
}

func (y *yamlDocumentStreamProvider[T]) Emit(ctx context.Context) (T, error) {

	// Check if the ctx is done
	select {
	case <-ctx.Done():
		return util.Zero[T](), ctx.Err()
	default:
	}

	var parsedDocument T
	if err := y.yamlDecoder.Decode(&parsedDocument); err != nil {
		// The yaml decoder reports end of input as io.EOF, which is also the
		// stream end sentinel
		if err == io.EOF {
			return util.Zero[T](), io.EOF
		}
		return util.Zero[T](), fmt.Errorf("error parsing yaml document: %w", err)
	}
	return parsedDocument, nil
}
