// internal/render/render.go
package render

import (
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

// UI owns the operator dashboard. It implements the sampling loop's
// Renderer contract: Observe never blocks, even when the terminal is
// slow. Only the newest pending snapshot is kept.
type UI struct {
	log     *slog.Logger
	updates chan pad.Snapshot
	done    chan struct{}

	mu   sync.Mutex
	prog *tea.Program
}

func New(log *slog.Logger) *UI {
	if log == nil {
		log = slog.Default()
	}
	return &UI{
		log:     log,
		updates: make(chan pad.Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// Observe hands a snapshot to the dashboard. When a previous snapshot
// is still pending it is replaced. Safe to call before Start and after
// Stop.
func (u *UI) Observe(s pad.Snapshot) {
	for {
		select {
		case u.updates <- s:
			return
		default:
		}
		// Slot full: evict the stale snapshot and try again.
		select {
		case <-u.updates:
		default:
		}
	}
}

// Start launches the dashboard and returns immediately. quit is called
// once the dashboard exits, whether the operator quit it or Stop tore
// it down. If the terminal is unusable the failure is logged and the
// feed keeps flowing without a dashboard.
func (u *UI) Start(quit func()) {
	u.mu.Lock()
	if u.prog != nil {
		u.mu.Unlock()
		return
	}
	prog := tea.NewProgram(newModel(u.updates), tea.WithAltScreen())
	u.prog = prog
	u.mu.Unlock()

	go func() {
		defer close(u.done)
		if _, err := prog.Run(); err != nil {
			u.log.Warn("dashboard unavailable", "error", err)
		}
		if quit != nil {
			quit()
		}
	}()
}

// Stop tears the dashboard down and waits until the terminal is
// restored, bounded so a wedged terminal cannot hang shutdown.
func (u *UI) Stop() {
	u.mu.Lock()
	prog := u.prog
	u.mu.Unlock()
	if prog == nil {
		return
	}
	prog.Quit()
	select {
	case <-u.done:
	case <-time.After(2 * time.Second):
	}
}
