// internal/client/serial.go
package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// SerialTransport consumes the feed from a serial device carrying the
// same delimited frames as the socket transports.
type SerialTransport struct {
	device string
	baud   int
	cfg    Config
	log    *slog.Logger

	mu     sync.Mutex
	port   serial.Port
	frames *frameReader
	closed bool
}

func NewSerialTransport(device string, baud int, cfg Config, log *slog.Logger) (*SerialTransport, error) {
	if device == "" {
		return nil, errors.New("client: serial device required")
	}
	if baud <= 0 {
		return nil, errors.New("client: baud rate required")
	}
	if cfg.Retry <= 0 {
		cfg.Retry = DefaultRetry
	}
	if log == nil {
		log = slog.Default()
	}
	return &SerialTransport{
		device: device,
		baud:   baud,
		cfg:    cfg,
		log:    log,
	}, nil
}

// Connect opens the device, retrying until it exists or the context
// ends. Unlike the socket transports there is no remote peer: a
// successful open is the connection.
func (t *SerialTransport) Connect(ctx context.Context) error {
	attempt := 0
	for {
		if t.isClosed() {
			return ErrClosed
		}
		port, err := serial.Open(&serial.Config{
			Address:  t.device,
			BaudRate: t.baud,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
		})
		if err == nil {
			return t.adopt(port)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		attempt++
		if attempt == 1 || attempt%20 == 0 {
			t.log.Info("waiting for serial device",
				"device", t.device,
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.cfg.Retry):
		}
	}
}

func (t *SerialTransport) ReceiveFrame() ([]byte, error) {
	t.mu.Lock()
	frames := t.frames
	closed := t.closed
	t.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	if frames == nil {
		return nil, errors.New("client: not connected")
	}
	return frames.next()
}

func (t *SerialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *SerialTransport) Addr() string {
	return "serial://" + t.device
}

func (t *SerialTransport) adopt(port serial.Port) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		port.Close()
		return ErrClosed
	}
	if t.port != nil {
		t.port.Close()
	}
	t.port = port
	t.frames = newFrameReader(port)
	return nil
}

func (t *SerialTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
