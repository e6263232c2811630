// internal/bus/bus.go
package bus

import (
	"context"
	"sync"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// Bus is the single-slot mailbox between the poll loop and the delivery
// loops. Publish overwrites the slot; nothing is ever queued, so a consumer
// that falls behind misses intermediate snapshots instead of growing a
// backlog.
type Bus struct {
	mu   sync.Mutex
	seq  uint64
	snap pad.Snapshot
	wake chan struct{}
}

// New returns an empty bus. The first publish carries sequence number 1.
func New() *Bus {
	return &Bus{wake: make(chan struct{})}
}

// Publish stores s as the newest snapshot and wakes every waiting consumer.
// The critical section is assignment only: no IO, no serialization.
func (b *Bus) Publish(s pad.Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.seq++
	close(b.wake)
	b.wake = make(chan struct{})
	b.mu.Unlock()
}

// Latest returns the newest snapshot without waiting.
// The sequence number is 0 until the first publish.
func (b *Bus) Latest() (pad.Snapshot, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap, b.seq
}

// Next blocks until a snapshot newer than afterSeq exists, then returns it
// with its sequence number. Snapshots published while the consumer was away
// are skipped over, never replayed, and never delivered twice.
func (b *Bus) Next(ctx context.Context, afterSeq uint64) (pad.Snapshot, uint64, error) {
	b.mu.Lock()
	for b.seq <= afterSeq {
		wake := b.wake
		b.mu.Unlock()
		select {
		case <-wake:
		case <-ctx.Done():
			return pad.Snapshot{}, afterSeq, ctx.Err()
		}
		b.mu.Lock()
	}
	s, seq := b.snap, b.seq
	b.mu.Unlock()
	return s, seq, nil
}
