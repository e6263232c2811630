// internal/server/socket.go
package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
)

// SocketEndpoint listens on a stream socket, "unix" or "tcp".
type SocketEndpoint struct {
	network string
	addr    string
	ln      net.Listener
}

// OpenSocket creates the listening socket. For unix sockets the parent
// directory is created and a stale socket file left behind by a dead
// process is removed first, mirroring how a named endpoint is re-created
// for every listening cycle.
func OpenSocket(network, addr string) (*SocketEndpoint, error) {
	if network == "unix" {
		if dir := filepath.Dir(addr); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("server: socket dir %q: %w", dir, err)
			}
		}
		if err := os.Remove(addr); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("server: remove stale socket %q: %w", addr, err)
		}
	}

	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, fmt.Errorf("server: listen %s %q: %w", network, addr, err)
	}

	if network == "unix" {
		// Local IPC: scope the socket to user and group.
		if err := os.Chmod(addr, 0o660); err != nil {
			ln.Close()
			return nil, fmt.Errorf("server: chmod socket %q: %w", addr, err)
		}
	}

	return &SocketEndpoint{network: network, addr: addr, ln: ln}, nil
}

// Accept blocks until a consumer connects. Cancellation closes the listener
// out from under the blocked call.
func (e *SocketEndpoint) Accept(ctx context.Context) (io.WriteCloser, error) {
	stop := context.AfterFunc(ctx, func() { e.ln.Close() })
	defer stop()

	conn, err := e.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return conn, nil
}

func (e *SocketEndpoint) Close() error {
	err := e.ln.Close()
	if e.network == "unix" {
		os.Remove(e.addr)
	}
	return err
}

func (e *SocketEndpoint) Addr() string {
	return e.network + "://" + e.addr
}
