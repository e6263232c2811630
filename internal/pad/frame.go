// internal/pad/frame.go
package pad

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Delimiter terminates every frame on the wire.
const Delimiter = '\n'

// ErrInvalidUTF8 reports a frame that is not valid UTF-8.
// Decode failures are scoped to the offending frame; the stream survives.
var ErrInvalidUTF8 = errors.New("pad: frame is not valid UTF-8")

// EncodeFrame renders one snapshot as a single JSON frame, delimiter
// included. Frames are built on demand; nothing is cached.
func EncodeFrame(s Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("pad: encode frame: %w", err)
	}
	return append(b, Delimiter), nil
}

// DecodeFrame parses one frame. The trailing delimiter is optional.
// Unknown fields are ignored so newer producers keep working against older
// consumers.
func DecodeFrame(frame []byte) (Snapshot, error) {
	if !utf8.Valid(frame) {
		return Snapshot{}, ErrInvalidUTF8
	}
	var s Snapshot
	if err := json.Unmarshal(frame, &s); err != nil {
		return Snapshot{}, fmt.Errorf("pad: decode frame: %w", err)
	}
	return s, nil
}
