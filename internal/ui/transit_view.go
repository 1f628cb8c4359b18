package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/gochara"
	"github.com/litescript/ls-jyotish/internal/state"
)

var (
	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	challengingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))
)

// TransitViewModel renders the Gochara assessment and the change log.
type TransitViewModel struct {
	width      int
	height     int
	cursor     int
	showEvents bool
	snapshot   state.Snapshot
}

// NewTransitViewModel creates a new transit view model.
func NewTransitViewModel() TransitViewModel {
	return TransitViewModel{}
}

// SetSize updates the viewport size.
func (m TransitViewModel) SetSize(width, height int) TransitViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m TransitViewModel) UpdateData(snapshot state.Snapshot) TransitViewModel {
	m.snapshot = snapshot
	return m
}

func (m TransitViewModel) analysis() *gochara.Analysis {
	if m.snapshot.Data == nil {
		return nil
	}
	return m.snapshot.Data.Transit
}

// Update handles messages.
func (m TransitViewModel) Update(msg tea.Msg) (TransitViewModel, tea.Cmd) {
	an := m.analysis()
	count := 0
	if an != nil {
		count = len(an.Transits)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < count-1 {
				m.cursor++
			}
		case "e":
			m.showEvents = !m.showEvents
		}
	}

	return m, nil
}

// View renders the transit view.
func (m TransitViewModel) View() string {
	an := m.analysis()
	if an == nil {
		return "Waiting for transit data...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Gochara"))
	b.WriteString(dimStyle.Render("  " + an.TransitTime.Format("2006-01-02 15:04")))
	b.WriteString("\n")

	verdict := fmt.Sprintf("  %s  %.0f/100", an.Verdict, an.Score)
	switch {
	case an.Score >= 60:
		b.WriteString(goodStyle.Render(verdict))
	case an.Score >= 45:
		b.WriteString(neutralStyle.Render(verdict))
	default:
		b.WriteString(challengingStyle.Render(verdict))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %-12s %-6s %-12s %-6s %s",
		"Planet", "Sign", "House", "Effect", "Bindu", "Vedha")))
	b.WriteString("\n")

	for i, t := range an.Transits {
		vedha := ""
		if t.Obstructed {
			vedha = "by " + t.ObstructedBy.String()
		}
		line := fmt.Sprintf(" %-9s %-12s %-6d %-12s %-6.0f %s",
			t.Planet, t.Sign, t.HouseFromMoon, t.Effect, t.BinduScore, vedha)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(line))
		case t.Effect == gochara.Good && !t.Obstructed:
			b.WriteString(goodStyle.Render(line))
		case t.Effect == gochara.Challenging:
			b.WriteString(challengingStyle.Render(line))
		default:
			b.WriteString(neutralStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(an.Significant) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Windows:"))
		b.WriteString("\n")
		for _, s := range an.Significant {
			b.WriteString(rowStyle.Render(fmt.Sprintf("    %s from %s (%s, house %d, %d/5)",
				s.Name, s.Date.Format("2006-01-02"), s.Planet, s.House, s.Intensity)))
			b.WriteString("\n")
		}
	}

	if m.showEvents {
		b.WriteString("\n")
		b.WriteString(m.renderEvents())
	}

	return b.String()
}

func (m TransitViewModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("  Recent changes:"))
	b.WriteString("\n")

	if len(m.snapshot.Events) == 0 {
		b.WriteString(dimStyle.Render("    none yet"))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range m.snapshot.Events {
		var desc string
		switch e.Type {
		case state.EventSignIngress:
			desc = fmt.Sprintf("%s entered %s", e.Planet, e.NewValue)
		case state.EventRetroStation:
			desc = e.Planet + " stationed retrograde"
		case state.EventDirectStation:
			desc = e.Planet + " stationed direct"
		case state.EventTithiChange:
			desc = "tithi changed to " + e.NewValue
		case state.EventNewWindow:
			desc = e.Detail + " began"
		default:
			desc = string(e.Type)
		}
		b.WriteString(eventStyle.Render(fmt.Sprintf("    %s  %s",
			e.Timestamp.Format("15:04:05"), desc)))
		b.WriteString("\n")
	}
	return b.String()
}
