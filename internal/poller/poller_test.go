// internal/poller/poller_test.go
package poller

import (
	"testing"
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
	"github.com/tamzrod/pad-replicator/internal/pad"
)

// ---- fakes ----

type fakeSource struct {
	polls     int
	shutdowns int
	snap      pad.Snapshot
}

func (f *fakeSource) Poll() pad.Snapshot {
	f.polls++
	return f.snap
}

func (f *fakeSource) Shutdown() {
	f.shutdowns++
}

type fakeRenderer struct {
	seen []pad.Snapshot
}

func (f *fakeRenderer) Observe(s pad.Snapshot) {
	f.seen = append(f.seen, s)
}

// ---- tests ----

func TestNew_Validation(t *testing.T) {
	b := bus.New()
	src := &fakeSource{}

	if _, err := New(Config{Interval: 0}, src, b, nil); err == nil {
		t.Fatalf("expected error for zero interval, got nil")
	}
	if _, err := New(Config{Interval: time.Second}, nil, b, nil); err == nil {
		t.Fatalf("expected error for nil source, got nil")
	}
	if _, err := New(Config{Interval: time.Second}, src, nil, nil); err == nil {
		t.Fatalf("expected error for nil bus, got nil")
	}
}

func TestPollOnce_PublishesToBus(t *testing.T) {
	b := bus.New()
	src := &fakeSource{}
	src.snap.Connected = true
	src.snap.Sticks.LX = 0.5

	p, err := New(Config{Interval: time.Second}, src, b, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	got := p.PollOnce()
	if got != src.snap {
		t.Fatalf("PollOnce returned %+v, want %+v", got, src.snap)
	}

	published, seq := b.Latest()
	if seq != 1 {
		t.Fatalf("expected one publish, got seq=%d", seq)
	}
	if published != src.snap {
		t.Fatalf("bus holds %+v, want %+v", published, src.snap)
	}
}

func TestPollOnce_RendererObserves(t *testing.T) {
	b := bus.New()
	src := &fakeSource{}
	src.snap.Triggers.RT = 1.0
	r := &fakeRenderer{}

	p, err := New(Config{Interval: time.Second}, src, b, r)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	p.PollOnce()
	p.PollOnce()

	if len(r.seen) != 2 {
		t.Fatalf("renderer saw %d snapshots, want 2", len(r.seen))
	}
	if r.seen[0] != src.snap {
		t.Fatalf("renderer saw %+v, want %+v", r.seen[0], src.snap)
	}
}

func TestPollOnce_DisconnectedIsData(t *testing.T) {
	b := bus.New()
	src := &fakeSource{} // neutral, disconnected

	p, err := New(Config{Interval: time.Second}, src, b, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	got := p.PollOnce()
	if got.Connected {
		t.Fatalf("expected disconnected snapshot")
	}
	if got != pad.Neutral() {
		t.Fatalf("disconnected snapshot must be neutral, got %+v", got)
	}

	if _, seq := b.Latest(); seq != 1 {
		t.Fatalf("disconnected snapshot must still be published, seq=%d", seq)
	}
}
