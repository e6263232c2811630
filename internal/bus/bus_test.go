// internal/bus/bus_test.go
package bus

import (
	"context"
	"testing"
	"time"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// snap tags a snapshot with a recognizable value.
func snap(n int) pad.Snapshot {
	var s pad.Snapshot
	s.Connected = true
	s.Triggers.LT = float64(n)
	return s
}

func TestLatest_EmptyBus(t *testing.T) {
	b := New()

	s, seq := b.Latest()
	if seq != 0 {
		t.Fatalf("empty bus seq: got=%d want=0", seq)
	}
	if s != pad.Neutral() {
		t.Fatalf("empty bus snapshot: got=%+v want neutral", s)
	}
}

func TestPublish_LastValueWins(t *testing.T) {
	b := New()

	b.Publish(snap(1))
	b.Publish(snap(2))
	b.Publish(snap(3))

	s, seq := b.Latest()
	if seq != 3 {
		t.Fatalf("seq: got=%d want=3", seq)
	}
	if s != snap(3) {
		t.Fatalf("latest: got=%+v want=%+v", s, snap(3))
	}

	// A consumer that slept through all three gets only the newest.
	got, gotSeq, err := b.Next(context.Background(), 0)
	if err != nil {
		t.Fatalf("Next err=%v", err)
	}
	if gotSeq != 3 || got != snap(3) {
		t.Fatalf("Next after sleep: got=%+v seq=%d, want snap(3) seq=3", got, gotSeq)
	}
}

func TestNext_BlocksUntilPublish(t *testing.T) {
	b := New()

	type result struct {
		s   pad.Snapshot
		seq uint64
		err error
	}
	done := make(chan result, 1)

	go func() {
		s, seq, err := b.Next(context.Background(), 0)
		done <- result{s, seq, err}
	}()

	select {
	case r := <-done:
		t.Fatalf("Next returned before publish: %+v", r)
	case <-time.After(20 * time.Millisecond):
	}

	b.Publish(snap(7))

	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("Next err=%v", r.err)
		}
		if r.seq != 1 || r.s != snap(7) {
			t.Fatalf("Next: got=%+v seq=%d, want snap(7) seq=1", r.s, r.seq)
		}
	case <-time.After(time.Second):
		t.Fatalf("Next did not wake after publish")
	}
}

func TestNext_SkipsIntermediateSnapshots(t *testing.T) {
	b := New()

	b.Publish(snap(1))
	_, seq, err := b.Next(context.Background(), 0)
	if err != nil {
		t.Fatalf("Next err=%v", err)
	}

	// Three publishes while the consumer is away.
	b.Publish(snap(2))
	b.Publish(snap(3))
	b.Publish(snap(4))

	s, seq, err := b.Next(context.Background(), seq)
	if err != nil {
		t.Fatalf("Next err=%v", err)
	}
	if seq != 4 || s != snap(4) {
		t.Fatalf("expected newest only: got=%+v seq=%d", s, seq)
	}
}

func TestNext_ContextCancelUnblocks(t *testing.T) {
	b := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, _, err := b.Next(ctx, 0)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Next err: got=%v want=context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Next did not unblock on cancel")
	}
}

func TestNext_OrderIsMonotonic(t *testing.T) {
	b := New()
	ctx := context.Background()

	const publishes = 500
	go func() {
		for i := 1; i <= publishes; i++ {
			b.Publish(snap(i))
		}
	}()

	var lastSeq uint64
	var lastVal float64
	for {
		s, seq, err := b.Next(ctx, lastSeq)
		if err != nil {
			t.Fatalf("Next err=%v", err)
		}
		if seq <= lastSeq {
			t.Fatalf("sequence went backwards: %d after %d", seq, lastSeq)
		}
		if s.Triggers.LT < lastVal {
			t.Fatalf("observed older snapshot %v after %v", s.Triggers.LT, lastVal)
		}
		lastSeq, lastVal = seq, s.Triggers.LT
		if seq == publishes {
			return
		}
	}
}

func TestNext_MultipleWaitersAllWake(t *testing.T) {
	b := New()
	ctx := context.Background()

	const waiters = 4
	done := make(chan uint64, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			_, seq, _ := b.Next(ctx, 0)
			done <- seq
		}()
	}

	time.Sleep(10 * time.Millisecond)
	b.Publish(snap(1))

	for i := 0; i < waiters; i++ {
		select {
		case seq := <-done:
			if seq != 1 {
				t.Fatalf("waiter got seq=%d want=1", seq)
			}
		case <-time.After(time.Second):
			t.Fatalf("waiter %d never woke", i)
		}
	}
}

func TestPublish_NeverBlocksWithoutConsumers(t *testing.T) {
	b := New()

	// No consumer anywhere. The slot is overwritten in place; this must
	// finish immediately no matter how many publishes happen.
	for i := 0; i < 100000; i++ {
		b.Publish(snap(i))
	}

	s, seq := b.Latest()
	if seq != 100000 || s != snap(99999) {
		t.Fatalf("got=%+v seq=%d, want snap(99999) seq=100000", s, seq)
	}
}
