package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/panchanga"
	"github.com/litescript/ls-jyotish/internal/state"
)

var (
	limbNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")).
			Bold(true)

	waxingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	waningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("103"))
)

// PanchangaViewModel renders the five limbs of the day.
type PanchangaViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewPanchangaViewModel creates a new panchanga view model.
func NewPanchangaViewModel() PanchangaViewModel {
	return PanchangaViewModel{}
}

// SetSize updates the viewport size.
func (m PanchangaViewModel) SetSize(width, height int) PanchangaViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m PanchangaViewModel) UpdateData(snapshot state.Snapshot) PanchangaViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m PanchangaViewModel) Update(msg tea.Msg) (PanchangaViewModel, tea.Cmd) {
	return m, nil
}

// View renders the panchanga view.
func (m PanchangaViewModel) View() string {
	if m.snapshot.Data == nil || m.snapshot.Data.Panchanga == nil {
		return "Waiting for panchanga data...\n"
	}
	p := m.snapshot.Data.Panchanga

	var b strings.Builder
	b.WriteString(titleStyle.Render("Panchanga"))
	b.WriteString(dimStyle.Render("  " + p.Time.Format("2006-01-02 15:04 MST")))
	b.WriteString("\n\n")

	limb := func(label, value string, ends *time.Time) {
		b.WriteString(fmt.Sprintf("  %-11s %s", label, limbNameStyle.Render(value)))
		if ends != nil {
			b.WriteString(dimStyle.Render("   ends " + ends.Format("15:04")))
		}
		b.WriteString("\n")
	}

	limb("Tithi", p.Tithi.Name, p.Tithi.EndsAt)
	limb("Vara", p.Vara.Name, nil)
	limb("Nakshatra", fmt.Sprintf("%s (pada %d)", p.Nakshatra.Name, p.Nakshatra.Pada), p.Nakshatra.EndsAt)
	limb("Yoga", p.Yoga.Name, p.Yoga.EndsAt)
	limb("Karana", p.Karana.Name, p.Karana.EndsAt)

	b.WriteString("\n")
	b.WriteString(m.renderMoonPhase(p.Phase))
	b.WriteString("\n")

	event := func(label string, t *time.Time) string {
		if t == nil {
			return fmt.Sprintf("%s --:--", label)
		}
		return fmt.Sprintf("%s %s", label, t.Format("15:04"))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s   %s   %s   %s\n",
		event("Sunrise", p.Sunrise), event("Sunset", p.Sunset),
		event("Moonrise", p.Moonrise), event("Moonset", p.Moonset))))

	return b.String()
}

// renderMoonPhase draws an illumination bar with the phase fraction.
func (m PanchangaViewModel) renderMoonPhase(phase panchanga.LunarPhase) string {
	const width = 28
	filled := int(phase.Illumination * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := waningStyle
	arrow := "waning"
	if phase.Waxing {
		style = waxingStyle
		arrow = "waxing"
	}
	return fmt.Sprintf("  %-11s %s %.1f%% %s\n", "Moon",
		style.Render(bar), phase.Illumination*100, dimStyle.Render(arrow))
}
