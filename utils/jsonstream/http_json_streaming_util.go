package jsonstream

import (
	"context"
	"io"
	"net/http"

	"github.com/nomemory/lambdas/stream"
)

// StreamJsonToHttpResponseWriter streams the stream to the response writer as a
// JSON array. Headers go out only when the stream produced its first element,
// a stream failing at open can still surface an error status.
func StreamJsonToHttpResponseWriter[T any](ctx context.Context, w http.ResponseWriter, s stream.Stream[T]) error {
	return StreamJsonToWriterWithInit(ctx, w, s, func() error {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		return nil
	})
}

// ExecuteStreamingHttpPostRequest posts the stream as a JSON array request body,
// streaming it through a pipe instead of buffering the payload.
func ExecuteStreamingHttpPostRequest[T any](
	ctx context.Context,
	client *http.Client,
	url string,
	s stream.Stream[T],
) (*http.Response, error) {
	return StreamJsonAsReaderAndReturn(ctx, s, func(ctx context.Context, body io.Reader) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", url, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return client.Do(req)
	})
}
