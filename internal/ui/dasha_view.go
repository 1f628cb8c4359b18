package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/dasha"
	"github.com/litescript/ls-jyotish/internal/state"
)

var (
	currentPeriodStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Bold(true)

	subPeriodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))
)

// DashaViewModel renders the Vimshottari timeline with expandable
// sub-periods.
type DashaViewModel struct {
	width    int
	height   int
	cursor   int
	expanded int // index of expanded mahadasha, -1 when collapsed
	snapshot state.Snapshot
}

// NewDashaViewModel creates a new dasha view model.
func NewDashaViewModel() DashaViewModel {
	return DashaViewModel{expanded: -1}
}

// SetSize updates the viewport size.
func (m DashaViewModel) SetSize(width, height int) DashaViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashaViewModel) UpdateData(snapshot state.Snapshot) DashaViewModel {
	m.snapshot = snapshot
	return m
}

func (m DashaViewModel) system() *dasha.System {
	if m.snapshot.Data == nil {
		return nil
	}
	return m.snapshot.Data.Dasha
}

// Update handles messages.
func (m DashaViewModel) Update(msg tea.Msg) (DashaViewModel, tea.Cmd) {
	sys := m.system()
	count := 0
	if sys != nil {
		count = len(sys.Periods)
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
		case "enter", " ":
			if m.expanded == m.cursor {
				m.expanded = -1
			} else {
				m.expanded = m.cursor
			}
		case "esc":
			m.expanded = -1
		}
	}

	return m, nil
}

// View renders the dasha view.
func (m DashaViewModel) View() string {
	sys := m.system()
	if sys == nil {
		return "Waiting for dasha data...\n"
	}

	now := time.Now()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vimshottari Dasha"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  birth lord %s, balance %.2f years",
		sys.BirthLord, sys.BalanceYears)))
	b.WriteString("\n\n")

	for i, p := range sys.Periods {
		line := fmt.Sprintf(" %-9s %s — %s  %6.2f y",
			p.Planet, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Years)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(line))
		case p.Contains(now):
			b.WriteString(currentPeriodStyle.Render(line + "  ◀ running"))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")

		if i == m.expanded {
			b.WriteString(m.renderSubPeriods(p, now))
		}
	}

	if chain := sys.At(now); len(chain) > 0 {
		b.WriteString("\n")
		parts := make([]string, len(chain))
		for i, p := range chain {
			parts[i] = p.Planet.String()
		}
		b.WriteString(dimStyle.Render("  Current: " + strings.Join(parts, " / ")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m DashaViewModel) renderSubPeriods(p dasha.Period, now time.Time) string {
	var b strings.Builder
	for _, sub := range p.Children {
		line := fmt.Sprintf("     %-9s %s — %s  %6.2f y",
			sub.Planet, sub.Start.Format("2006-01-02"), sub.End.Format("2006-01-02"), sub.Years)
		if sub.Contains(now) {
			b.WriteString(currentPeriodStyle.Render(line))
		} else {
			b.WriteString(subPeriodStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
