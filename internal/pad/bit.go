// internal/pad/bit.go
package pad

import (
	"bytes"
	"fmt"
)

// Bit is a digital input. It marshals to JSON 0 or 1, never true or false.
type Bit bool

func (b Bit) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0, 1, true and false.
func (b *Bit) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("1")), bytes.Equal(data, []byte("true")):
		*b = true
	case bytes.Equal(data, []byte("0")), bytes.Equal(data, []byte("false")):
		*b = false
	default:
		return fmt.Errorf("pad: invalid bit value %q", data)
	}
	return nil
}
