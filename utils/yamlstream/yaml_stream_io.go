package yamlstream

import (
	"context"
	"io"

	"github.com/nomemory/lambdas/stream"
	"gopkg.in/yaml.v3"
)

// StreamYamlToWriter writes the stream to w as a multi-document YAML stream,
// one document per element, without materializing the stream in memory.
func StreamYamlToWriter[T any](ctx context.Context, w io.Writer, s stream.Stream[T]) error {
	first := true
	return s.ConsumeWithErr(ctx, func(v T) error {
		if !first {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		first = false

		rawYaml, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(rawYaml)
		return err
	})
}
