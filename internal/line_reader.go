package internal

import (
	"bufio"
	"context"
	"io"
)

// LineReader reads whole lines regardless of their length.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(reader io.Reader) *LineReader {
	return &LineReader{bufio.NewReader(reader)}
}

func (x LineReader) ReadLine(ctx context.Context) (line []byte, err error) {
	var l []byte
	var more bool

	for {
		l, more, err = x.r.ReadLine()
		if ctx.Err() != nil || err != nil {
			return
		}
		// l is only valid until the next read
		line = append(line, l...)
		if !more {
			if line == nil {
				line = []byte{}
			}
			return
		}
	}
}
