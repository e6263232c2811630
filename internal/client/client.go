// internal/client/client.go
package client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// DefaultRetry is the pause between connection attempts when the
// producer endpoint is not up yet.
const DefaultRetry = 250 * time.Millisecond

// ErrClosed is returned by operations on a transport after Close.
var ErrClosed = errors.New("client: transport closed")

// Transport delivers pad state frames from a running replicator.
//
// Connect blocks until the producer endpoint is reachable or the
// context ends. Retrying is the transport's job, not the caller's.
// ReceiveFrame returns one delimited frame, trailing delimiter
// included, and blocks until a full frame arrives. Close releases the
// connection and unblocks a pending ReceiveFrame.
type Transport interface {
	Connect(ctx context.Context) error
	ReceiveFrame() ([]byte, error)
	Close() error
	Addr() string
}

// Config holds the knobs shared by all transports.
type Config struct {
	Retry   time.Duration // pause between connection attempts
	Timeout time.Duration // per-attempt dial timeout, 0 means none
}

// NextState reads frames until one decodes as a pad snapshot.
// Malformed frames are logged and skipped; transport errors end the
// stream and are returned to the caller.
func NextState(t Transport, log *slog.Logger) (pad.Snapshot, error) {
	if log == nil {
		log = slog.Default()
	}
	for {
		frame, err := t.ReceiveFrame()
		if err != nil {
			return pad.Snapshot{}, err
		}
		s, err := pad.DecodeFrame(frame)
		if err != nil {
			log.Warn("dropping malformed frame", "error", err)
			continue
		}
		return s, nil
	}
}
