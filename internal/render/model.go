// internal/render/model.go
package render

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

type snapshotMsg struct {
	snap pad.Snapshot
}

// listenForSnapshot returns a command that blocks until the feed
// delivers a snapshot, then hands it to Update.
func listenForSnapshot(updates <-chan pad.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return tea.QuitMsg{}
		}
		return snapshotMsg{snap: s}
	}
}

type model struct {
	updates <-chan pad.Snapshot

	snap   pad.Snapshot
	frames uint64
	seen   bool
	width  int
}

func newModel(updates <-chan pad.Snapshot) model {
	return model{updates: updates}
}

func (m model) Init() tea.Cmd {
	return listenForSnapshot(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		m.frames++
		m.seen = true
		return m, listenForSnapshot(m.updates)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}
