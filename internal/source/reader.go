package source

import (
	"bufio"
	"errors"
	"io"
)

const readerSize = 64 * 1024

// LineReader yields the lines of r without their terminators. Both "\n" and
// "\r\n" end a line; a lone "\r" is kept as data. A final line without a
// terminator is still returned.
//
// Usage mirrors bufio.Scanner, without its line length limit:
//
//	lr := source.NewLineReader(r)
//	for lr.Next() {
//		use(lr.Bytes())
//	}
//	if err := lr.Err(); err != nil { ... }
type LineReader struct {
	r    *bufio.Reader
	buf  []byte
	line int
	err  error
	eof  bool
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, readerSize)}
}

// Next advances to the next line. It returns false at end of input or on
// a read error; Err tells them apart.
func (lr *LineReader) Next() bool {
	if lr.err != nil || lr.eof {
		return false
	}
	lr.buf = lr.buf[:0]
	for {
		chunk, err := lr.r.ReadSlice('\n')
		lr.buf = append(lr.buf, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			lr.eof = true
			if len(lr.buf) == 0 {
				return false
			}
			break
		}
		if err != nil {
			lr.err = err
			return false
		}
		break
	}
	lr.line++
	lr.buf = trimEOL(lr.buf)
	return true
}

// Bytes returns the current line. The slice is valid until the next call
// to Next.
func (lr *LineReader) Bytes() []byte {
	return lr.buf
}

// Line returns the 1-based number of the current line.
func (lr *LineReader) Line() int {
	return lr.line
}

// Err returns the first read error, never io.EOF.
func (lr *LineReader) Err() error {
	return lr.err
}

// trimEOL убирает \n или \r\n в конце, одиночный \r остаётся.
func trimEOL(b []byte) []byte {
	n := len(b)
	if n == 0 || b[n-1] != '\n' {
		return b
	}
	n--
	if n > 0 && b[n-1] == '\r' {
		n--
	}
	return b[:n]
}
