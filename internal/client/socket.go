// internal/client/socket.go
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

// SocketTransport consumes the feed over a unix or tcp stream socket.
type SocketTransport struct {
	network string
	address string
	cfg     Config
	log     *slog.Logger

	mu     sync.Mutex
	conn   net.Conn
	frames *frameReader
	closed bool
}

func NewSocketTransport(network, address string, cfg Config, log *slog.Logger) (*SocketTransport, error) {
	switch network {
	case "unix", "tcp":
	default:
		return nil, fmt.Errorf("client: unsupported network %q", network)
	}
	if address == "" {
		return nil, errors.New("client: address required")
	}
	if cfg.Retry <= 0 {
		cfg.Retry = DefaultRetry
	}
	if log == nil {
		log = slog.Default()
	}
	return &SocketTransport{
		network: network,
		address: address,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Connect dials until the producer accepts or the context ends.
func (t *SocketTransport) Connect(ctx context.Context) error {
	d := net.Dialer{Timeout: t.cfg.Timeout}
	attempt := 0
	for {
		if t.isClosed() {
			return ErrClosed
		}
		conn, err := d.DialContext(ctx, t.network, t.address)
		if err == nil {
			return t.adopt(conn)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		attempt++
		if attempt == 1 || attempt%20 == 0 {
			t.log.Info("waiting for producer",
				"address", t.Addr(),
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

func (t *SocketTransport) ReceiveFrame() ([]byte, error) {
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

// Close releases the connection. A ReceiveFrame blocked on the socket
// returns with an error.
func (t *SocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *SocketTransport) Addr() string {
	return t.network + "://" + t.address
}

func (t *SocketTransport) adopt(conn net.Conn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		conn.Close()
		return ErrClosed
	}
	if t.conn != nil {
		t.conn.Close()
	}
	t.conn = conn
	t.frames = newFrameReader(conn)
	return nil
}

func (t *SocketTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
