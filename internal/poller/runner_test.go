// internal/poller/runner_test.go
package poller

import (
	"context"
	"testing"
	"time"

	"github.com/tamzrod/pad-replicator/internal/bus"
)

func TestRun_ShutdownExactlyOnce(t *testing.T) {
	b := bus.New()
	src := &fakeSource{}

	p, err := New(Config{Interval: 5 * time.Millisecond}, src, b, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Let at least one tick land before stopping.
	deadline := time.Now().Add(time.Second)
	for {
		if _, seq := b.Latest(); seq > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no tick before deadline")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	if src.shutdowns != 1 {
		t.Fatalf("source shutdowns: got=%d want=1", src.shutdowns)
	}
	if src.polls == 0 {
		t.Fatalf("expected at least one poll")
	}
}

func TestRun_PublishesEveryTick(t *testing.T) {
	b := bus.New()
	src := &fakeSource{}
	src.snap.Connected = true

	p, err := New(Config{Interval: 5 * time.Millisecond}, src, b, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for {
		if _, seq := b.Latest(); seq >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("fewer than 3 publishes before deadline")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done
}
