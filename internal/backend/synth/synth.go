// internal/backend/synth/synth.go
package synth

import (
	"math"
	"time"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// period is one full sweep of the synthetic gestures.
const period = 4 * time.Second

const buttonCount = 14

// Backend produces a deterministic synthetic pad: the sticks trace a
// circle, the triggers ramp against each other and the buttons take turns.
// It exists so the rest of the pipeline can run without hardware.
type Backend struct {
	start time.Time
	now   func() time.Time
}

func New() *Backend {
	return &Backend{now: time.Now}
}

func (b *Backend) Init() error {
	b.start = b.now()
	return nil
}

func (b *Backend) Shutdown() {}

// Poll synthesizes the state for the current instant.
// Same instant, same snapshot.
func (b *Backend) Poll() pad.Snapshot {
	t := b.now().Sub(b.start).Seconds() / period.Seconds()

	var s pad.Snapshot
	s.Connected = true

	angle := 2 * math.Pi * t
	s.Sticks.LX = math.Sin(angle)
	s.Sticks.LY = math.Cos(angle)
	s.Sticks.RX = math.Sin(angle + math.Pi)
	s.Sticks.RY = math.Cos(angle + math.Pi)

	ramp := t - math.Floor(t)
	s.Triggers.LT = ramp
	s.Triggers.RT = 1 - ramp

	pressButton(&s.Buttons, int(t*buttonCount)%buttonCount)

	return s
}

// pressButton holds down the i-th button of a fixed walk order.
func pressButton(b *pad.Buttons, i int) {
	switch i {
	case 0:
		b.A = true
	case 1:
		b.B = true
	case 2:
		b.X = true
	case 3:
		b.Y = true
	case 4:
		b.LB = true
	case 5:
		b.RB = true
	case 6:
		b.Back = true
	case 7:
		b.Start = true
	case 8:
		b.LS = true
	case 9:
		b.RS = true
	case 10:
		b.DpadUp = true
	case 11:
		b.DpadDown = true
	case 12:
		b.DpadLeft = true
	case 13:
		b.DpadRight = true
	}
}
