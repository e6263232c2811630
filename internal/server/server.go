// internal/server/server.go
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Endpoint is one listening channel endpoint. Accept hands out a single
// consumer connection; Close tears the endpoint down and unblocks a pending
// Accept. A fresh Endpoint is created for every serving cycle, so no
// half-closed endpoint ever lingers into the next one.
type Endpoint interface {
	Accept(ctx context.Context) (io.WriteCloser, error)
	Close() error
	Addr() string
}

// Config is the runtime config one channel server needs.
type Config struct {
	Backoff      time.Duration // wait between endpoint-creation attempts
	WriteTimeout time.Duration // per-frame write deadline where the conn supports one; 0 disables
}

// Server owns one channel: create the endpoint, serve one consumer, reset,
// repeat. Endpoint-creation failures back off and retry; consumer loss is a
// clean reset. Nothing on this path is ever fatal.
type Server struct {
	open func() (Endpoint, error)
	bus  *bus.Bus
	cfg  Config
	log  *slog.Logger
}

// New creates a channel server with immutable config.
func New(open func() (Endpoint, error), b *bus.Bus, cfg Config, log *slog.Logger) (*Server, error) {
	if open == nil {
		return nil, errors.New("server: endpoint factory required")
	}
	if b == nil {
		return nil, errors.New("server: bus required")
	}
	if cfg.Backoff <= 0 {
		return nil, errors.New("server: backoff must be > 0")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{open: open, bus: b, cfg: cfg, log: log}, nil
}

// Run drives the channel lifecycle until ctx is canceled.
// One goroutine per channel: at most one consumer is served at a time.
func (s *Server) Run(ctx context.Context) {
	for ctx.Err() == nil {
		ep, err := s.open()
		if err != nil {
			s.log.Warn("endpoint create failed", "err", err)
			if !sleep(ctx, s.cfg.Backoff) {
				return
			}
			continue
		}

		s.serve(ctx, ep)
		ep.Close()
	}
}

// serve waits for one consumer on ep and streams to it until it goes away.
func (s *Server) serve(ctx context.Context, ep Endpoint) {
	s.log.Info("channel listening", "addr", ep.Addr())

	conn, err := ep.Accept(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("accept failed", "addr", ep.Addr(), "err", err)
			sleep(ctx, s.cfg.Backoff)
		}
		return
	}

	s.log.Info("consumer attached", "addr", ep.Addr())
	err = s.stream(ctx, conn)
	conn.Close()

	if ctx.Err() == nil {
		s.log.Info("consumer detached", "addr", ep.Addr(), "reason", err)
	}
}

// stream sends every new snapshot to the consumer. The cursor starts at the
// newest already-published sequence so a fresh consumer sees the next
// publish, never stale history. Returns the write error that ended the
// session, or ctx.Err() on shutdown.
func (s *Server) stream(ctx context.Context, conn io.WriteCloser) error {
	_, cursor := s.bus.Latest()

	// A canceled ctx closes the conn out from under a blocked write.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		snap, seq, err := s.bus.Next(ctx, cursor)
		if err != nil {
			return err
		}
		cursor = seq

		frame, err := pad.EncodeFrame(snap)
		if err != nil {
			return err
		}

		if d, ok := conn.(deadlineWriter); ok && s.cfg.WriteTimeout > 0 {
			d.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if _, err := conn.Write(frame); err != nil {
			return err
		}
	}
}

type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

// sleep waits d or until ctx is canceled. Reports whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
