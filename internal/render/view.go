// internal/render/view.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tamzrod/pad-replicator/internal/pad"
)

const gaugeWidth = 20

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	frame := frameStyle
	if m.width > 0 && m.width-4 < 64 {
		frame = frame.Width(m.width - 4)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("pad-replicator"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("   frames %d", m.frames)))
	b.WriteString("\n\n")

	if !m.seen {
		b.WriteString(labelStyle.Render("waiting for feed..."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return frame.Render(b.String())
	}

	if m.snap.Connected {
		b.WriteString(onStyle.Render("PAD CONNECTED"))
	} else {
		b.WriteString(alertStyle.Render("NO PAD"))
	}
	b.WriteString("\n\n")

	bt := m.snap.Buttons
	b.WriteString(labelStyle.Render("buttons  "))
	b.WriteString(buttonRow(
		cell("A", bt.A), cell("B", bt.B), cell("X", bt.X), cell("Y", bt.Y),
		cell("LB", bt.LB), cell("RB", bt.RB),
		cell("Back", bt.Back), cell("Start", bt.Start),
		cell("LS", bt.LS), cell("RS", bt.RS),
	))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("dpad     "))
	b.WriteString(buttonRow(
		cell("Up", bt.DpadUp), cell("Down", bt.DpadDown),
		cell("Left", bt.DpadLeft), cell("Right", bt.DpadRight),
	))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("LT "))
	b.WriteString(valueStyle.Render(gauge(m.snap.Triggers.LT, gaugeWidth)))
	b.WriteString(valueStyle.Render(fmt.Sprintf(" %.2f", m.snap.Triggers.LT)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("RT "))
	b.WriteString(valueStyle.Render(gauge(m.snap.Triggers.RT, gaugeWidth)))
	b.WriteString(valueStyle.Render(fmt.Sprintf(" %.2f", m.snap.Triggers.RT)))
	b.WriteString("\n\n")

	st := m.snap.Sticks
	b.WriteString(labelStyle.Render("sticks   "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("LX %+.3f  LY %+.3f", st.LX, st.LY)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("         "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("RX %+.3f  RY %+.3f", st.RX, st.RY)))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("q quit"))

	return frame.Render(b.String())
}

func cell(label string, pressed pad.Bit) string {
	if pressed {
		return onStyle.Render("[" + label + "]")
	}
	return offStyle.Render("[" + label + "]")
}

func buttonRow(cells ...string) string {
	return strings.Join(cells, " ")
}

// gauge renders v in [0,1] as a fixed-width bar.
func gauge(v float64, width int) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(math.Round(v * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
