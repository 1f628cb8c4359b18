package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/state"
)

// Styles shared across the chart views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("94"))

	retroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	gridBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	ascStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// southIndianLayout maps grid cells (row, col) of the fixed 4x4 frame to
// sign indices. The center four cells are empty.
var southIndianLayout = [4][4]int{
	{11, 0, 1, 2},
	{10, -1, -1, 3},
	{9, -1, -1, 4},
	{8, 7, 6, 5},
}

// planetAbbrev is the two-letter label used inside chart grid cells.
var planetAbbrev = map[chart.Planet]string{
	chart.Sun:     "Su",
	chart.Moon:    "Mo",
	chart.Mars:    "Ma",
	chart.Mercury: "Me",
	chart.Jupiter: "Ju",
	chart.Venus:   "Ve",
	chart.Saturn:  "Sa",
	chart.Rahu:    "Ra",
	chart.Ketu:    "Ke",
}

// ChartViewModel renders the natal chart grid and position table.
type ChartViewModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewChartViewModel creates a new chart view model.
func NewChartViewModel() ChartViewModel {
	return ChartViewModel{}
}

// SetSize updates the viewport size.
func (m ChartViewModel) SetSize(width, height int) ChartViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m ChartViewModel) UpdateData(snapshot state.Snapshot) ChartViewModel {
	m.snapshot = snapshot
	return m
}

// SetError sets the last error for display.
func (m ChartViewModel) SetError(err error) ChartViewModel {
	m.lastErr = err
	return m
}

// Update handles messages.
func (m ChartViewModel) Update(msg tea.Msg) (ChartViewModel, tea.Cmd) {
	natal := m.natal()
	count := 0
	if natal != nil {
		count = len(natal.Positions)
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
		}
	}

	return m, nil
}

func (m ChartViewModel) natal() *chart.VedicChart {
	if m.snapshot.Data == nil {
		return nil
	}
	return m.snapshot.Data.Natal
}

// View renders the chart view.
func (m ChartViewModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	natal := m.natal()
	if natal == nil {
		b.WriteString("Waiting for chart data...\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s (%s)",
		natal.Birth.Name,
		natal.Birth.DateTime.Format("2006-01-02 15:04"),
		natal.Birth.Timezone)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Ayanamsa %s %.4f° | %s houses | Lagna %s",
		natal.AyanamsaName, natal.Ayanamsa, natal.HouseSystem, natal.AscendantSign())))
	b.WriteString("\n\n")

	b.WriteString(m.renderRasiGrid(natal))
	b.WriteString("\n")
	b.WriteString(m.renderPositionsTable(natal))

	return b.String()
}

// renderRasiGrid draws the fixed South Indian chart frame with occupant
// abbreviations per sign.
func (m ChartViewModel) renderRasiGrid(natal *chart.VedicChart) string {
	occupants := make(map[int][]string)
	for _, p := range natal.Positions {
		label := planetAbbrev[p.Planet]
		if p.Retrograde {
			label = retroStyle.Render(label + "ʳ")
		}
		occupants[int(p.Sign)] = append(occupants[int(p.Sign)], label)
	}
	ascSign := int(natal.AscendantSign())

	const cellWidth = 14
	border := gridBorderStyle.Render(strings.Repeat("-", (cellWidth+1)*4+1))

	var b strings.Builder
	b.WriteString("  " + border + "\n")
	for row := 0; row < 4; row++ {
		b.WriteString("  " + gridBorderStyle.Render("|"))
		for col := 0; col < 4; col++ {
			sign := southIndianLayout[row][col]
			b.WriteString(m.renderCell(sign, ascSign, occupants, cellWidth))
			b.WriteString(gridBorderStyle.Render("|"))
		}
		b.WriteString("\n")
	}
	b.WriteString("  " + border + "\n")
	return b.String()
}

func (m ChartViewModel) renderCell(sign, ascSign int, occupants map[int][]string, width int) string {
	if sign < 0 {
		return strings.Repeat(" ", width)
	}

	name := chart.Sign(sign).String()
	if len(name) > 3 {
		name = name[:3]
	}
	if sign == ascSign {
		name = ascStyle.Render(name + "*")
	} else {
		name = dimStyle.Render(name)
	}

	body := strings.Join(occupants[sign], " ")
	cell := " " + name + " " + body

	// Styled cells carry ANSI escapes; pad by visible width.
	visible := lipgloss.Width(cell)
	if visible < width {
		cell += strings.Repeat(" ", width-visible)
	}
	return cell
}

func (m ChartViewModel) renderPositionsTable(natal *chart.VedicChart) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %-12s %-11s %-14s %-5s %-6s",
		"Planet", "Sign", "Position", "Nakshatra", "Pada", "House")))
	b.WriteString("\n")

	for i, p := range natal.Positions {
		marks := ""
		if p.Retrograde {
			marks += " R"
		}
		if p.Combust {
			marks += " C"
		}
		line := fmt.Sprintf(" %-9s %-12s %2d°%02d'%05.2f %-14s %-5d %-6d%s",
			p.Planet, p.Sign, p.Degree, p.Minute, p.Second,
			chart.NakshatraName(p.Nakshatra), p.Pada, p.House, marks)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
