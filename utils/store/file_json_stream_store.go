package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/nomemory/lambdas/integrations/file"
	"github.com/nomemory/lambdas/stream"
)

// fileJsonStreamStore appends records as json lines to a single file.
// Writers serialize on fileMu, readers stream the file as it is.
type fileJsonStreamStore[T any] struct {
	fileMu   sync.RWMutex
	filePath string
}

func NewFileJsonStreamStore[T any](filePath string) (JsonStreamStore[T], error) {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	return &fileJsonStreamStore[T]{
		filePath: filePath,
	}, nil
}

func (s *fileJsonStreamStore[T]) Put(ctx context.Context, value T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer closeStoreFile(f, s.filePath)

	if err := appendRecord(value, f); err != nil {
		return err
	}

	// Sync before acknowledging so a crash cannot lose the record
	return f.Sync()
}

func (s *fileJsonStreamStore[T]) PutAll(ctx context.Context, values stream.Stream[T]) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer closeStoreFile(f, s.filePath)

	err = values.ConsumeWithErr(ctx, func(entry T) error {
		return appendRecord(entry, f)
	})
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync json stream store file %s: %w", f.Name(), err)
	}
	return nil
}

func (s *fileJsonStreamStore[T]) ReadStream(reverse bool) stream.Stream[T] {
	return stream.MapWhileFiltering(
		file.StreamFromFile(s.filePath, reverse),
		func(src []byte) *T {
			var record T
			if err := json.Unmarshal(src, &record); err != nil {
				// A crash mid-append can leave a torn last line. The record
				// separator is a newline, so the next line is intact again.
				slog.Warn(fmt.Sprintf(
					"skipping malformed record in json stream store file %s: %v", s.filePath, err,
				))
				return nil
			}
			return &record
		},
	)
}

// appendRecord writes one value as a single json line. Records never contain
// raw newlines, json.Marshal escapes them.
func appendRecord[T any](value T, f *os.File) error {
	record, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record for json stream store file %s: %w", f.Name(), err)
	}
	if _, err := f.Write(append(record, '\n')); err != nil {
		return fmt.Errorf("failed to append record to json stream store file %s: %w", f.Name(), err)
	}
	return nil
}

func closeStoreFile(f *os.File, path string) {
	if err := f.Close(); err != nil {
		slog.Warn(fmt.Sprintf("error closing json stream store file %s: %v", path, err))
	}
}
