package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/state"
	"github.com/litescript/ls-jyotish/internal/strength"
)

var (
	strongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	weakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// StrengthViewModel renders the Shadbala table with a per-planet
// component breakdown.
type StrengthViewModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewStrengthViewModel creates a new strength view model.
func NewStrengthViewModel() StrengthViewModel {
	return StrengthViewModel{}
}

// SetSize updates the viewport size.
func (m StrengthViewModel) SetSize(width, height int) StrengthViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m StrengthViewModel) UpdateData(snapshot state.Snapshot) StrengthViewModel {
	m.snapshot = snapshot
	return m
}

func (m StrengthViewModel) results() []strength.Result {
	if m.snapshot.Data == nil {
		return nil
	}
	return m.snapshot.Data.Strengths
}

// Update handles messages.
func (m StrengthViewModel) Update(msg tea.Msg) (StrengthViewModel, tea.Cmd) {
	count := len(m.results())

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
		}
	}

	return m, nil
}

// View renders the strength view.
func (m StrengthViewModel) View() string {
	results := m.results()
	if results == nil {
		return "Waiting for strength data...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Shadbala"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %7s %6s %5s  %-14s %s",
		"Planet", "Rupas", "Req", "%", "Rating", "")))
	b.WriteString("\n")

	for i, r := range results {
		bar := m.renderStrengthBar(r.Percent, 16)
		line := fmt.Sprintf(" %-9s %7.2f %6.2f %4.0f%%  %-14s %s",
			r.Planet, r.Rupas, r.RequiredRupas, r.Percent, r.Rating, bar)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(results) {
		b.WriteString("\n")
		b.WriteString(m.renderBreakdown(results[m.cursor]))
	}

	return b.String()
}

func (m StrengthViewModel) renderStrengthBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 100 {
		return strongStyle.Render(bar)
	}
	return weakStyle.Render(bar)
}

func (m StrengthViewModel) renderBreakdown(r strength.Result) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s components (virupas)", r.Planet)))
	b.WriteString("\n")

	rows := []struct {
		label string
		value float64
	}{
		{"Sthana", r.Breakdown.Sthana},
		{"Dig", r.Breakdown.Dig},
		{"Kala", r.Breakdown.Kala},
		{"Chesta", r.Breakdown.Chesta},
		{"Naisargika", r.Breakdown.Naisargika},
		{"Drik", r.Breakdown.Drik},
	}
	for _, row := range rows {
		b.WriteString(rowStyle.Render(fmt.Sprintf("    %-11s %7.1f", row.label, row.value)))
		b.WriteString("\n")
	}
	return b.String()
}
