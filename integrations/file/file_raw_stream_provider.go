package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nomemory/lambdas/stream"
)

type fsScanner interface {
	Err() error
	Bytes() []byte
	Scan() bool
}

// rawFileStreamProvider reads raw lines from a file, optionally last line first.
type rawFileStreamProvider struct {
	filePath string
	f        *os.File
	sc       fsScanner
	missing  bool
	reverse  bool
}

// StreamFromFile creates a lazy stream of the lines of a file. A missing file
// is treated as an empty stream. When reverse is true lines are emitted last
// line first, which requires the file to be newline terminated.
func StreamFromFile(filePath string, reverse bool) stream.Stream[[]byte] {
	return stream.NewStream(&rawFileStreamProvider{
		filePath: filePath,
		reverse:  reverse,
	})
}

func (p *rawFileStreamProvider) Open(_ context.Context) error {
	f, err := os.Open(p.filePath)
	if err != nil {
		// A file that does not exist yet is an empty stream, not a failure
		if errors.Is(err, os.ErrNotExist) {
			p.missing = true
			return nil
		}
		return err
	}
	p.f = f

	if !p.reverse {
		p.sc = bufio.NewScanner(f)
		return nil
	}

	st, err := f.Stat()
	if err != nil {
		return err
	}
	p.sc = NewReverseScanner(f, st.Size())
	// The segment after the trailing newline is empty, skip it
	p.sc.Scan()
	return nil
}

func (p *rawFileStreamProvider) Close() {
	if p.f == nil {
		return
	}
	if err := p.f.Close(); err != nil {
		slog.Warn(fmt.Sprintf("error closing stream file %s: %v", p.filePath, err))
	}
	p.f = nil
	p.sc = nil
}

func (p *rawFileStreamProvider) Emit(ctx context.Context) ([]byte, error) {
	if p.sc == nil {
		if p.missing {
			return nil, io.EOF
		}
		// Emit before Open or after Close
		return nil, os.ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.sc.Scan() {
		return p.sc.Bytes(), nil
	}
	if err := p.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
