package file

import (
	"bytes"
	"io"
)

const reverseScannerChunkSize = 4096

// ReverseScanner reads newline separated segments from the end of an
// io.ReaderAt towards the beginning. The segment after the last newline is
// returned first, so a newline terminated file yields an empty segment before
// its last line. It implements the same Scan/Bytes/Err contract as
// bufio.Scanner.
type ReverseScanner struct {
	r     io.ReaderAt
	pos   int64
	buf   []byte
	token []byte
	err   error
	done  bool
}

// NewReverseScanner creates a scanner over the first size bytes of r.
func NewReverseScanner(r io.ReaderAt, size int64) *ReverseScanner {
	return &ReverseScanner{r: r, pos: size}
}

// Scan advances to the previous segment, returning false when the beginning
// of the input is passed or a read fails.
func (rs *ReverseScanner) Scan() bool {
	if rs.err != nil || rs.done {
		return false
	}
	for {
		if i := bytes.LastIndexByte(rs.buf, '\n'); i >= 0 {
			rs.token = rs.buf[i+1:]
			rs.buf = rs.buf[:i]
			return true
		}

		if rs.pos == 0 {
			// Beginning of the input, whatever is buffered is the first segment
			rs.token = rs.buf
			rs.buf = nil
			rs.done = true
			return true
		}

		// Prepend the previous chunk and look for a newline again
		chunk := int64(reverseScannerChunkSize)
		if chunk > rs.pos {
			chunk = rs.pos
		}
		nextPos := rs.pos - chunk
		joined := make([]byte, chunk+int64(len(rs.buf)))
		n, err := rs.r.ReadAt(joined[:chunk], nextPos)
		if int64(n) != chunk {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			rs.err = err
			return false
		}
		copy(joined[chunk:], rs.buf)
		rs.buf = joined
		rs.pos = nextPos
	}
}

// Bytes returns the current segment without its newline separator. The
// returned slice is only valid until the next call to Scan.
func (rs *ReverseScanner) Bytes() []byte {
	return rs.token
}

// Err returns the first read error encountered, if any.
func (rs *ReverseScanner) Err() error {
	return rs.err
}
