// internal/server/serial.go
package server

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goburrow/serial"
)

// SerialEndpoint serves frames over a serial line. A serial device has no
// accept step: a successful open is the attachment, and a write failure is
// the detach. Opening a missing device fails, which lands on the server's
// create-retry path just like a busy socket.
type SerialEndpoint struct {
	addr string
	port serial.Port

	once sync.Once
	err  error
}

// OpenSerial opens the serial device in 8N1 framing at the given baud rate.
func OpenSerial(device string, baud int) (*SerialEndpoint, error) {
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	})
	if err != nil {
		return nil, fmt.Errorf("server: open serial %q: %w", device, err)
	}
	return &SerialEndpoint{addr: device, port: port}, nil
}

// Accept returns the already-attached line. The endpoint itself is the
// connection; closing either closes the port exactly once.
func (e *SerialEndpoint) Accept(ctx context.Context) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *SerialEndpoint) Write(p []byte) (int, error) {
	return e.port.Write(p)
}

func (e *SerialEndpoint) Close() error {
	e.once.Do(func() { e.err = e.port.Close() })
	return e.err
}

func (e *SerialEndpoint) Addr() string {
	return "serial://" + e.addr
}
