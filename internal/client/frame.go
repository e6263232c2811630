// internal/client/frame.go
package client

import (
	"bufio"
	"io"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// frameReader splits a byte stream into delimiter-terminated frames.
type frameReader struct {
	r *bufio.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{r: bufio.NewReader(r)}
}

// next returns one frame including its trailing delimiter.
// A fragment cut off by an error is not a frame and is dropped.
func (f *frameReader) next() ([]byte, error) {
	frame, err := f.r.ReadBytes(pad.Delimiter)
	if err != nil {
		return nil, err
	}
	return frame, nil
}
