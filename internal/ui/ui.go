// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-jyotish/internal/state"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewChart ViewMode = iota
	ViewPanchanga
	ViewDasha
	ViewStrength
	ViewTransit
)

const viewCount = 5

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals a completed computation pass.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a computation error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	tick     int

	chartView     ChartViewModel
	panchangaView PanchangaViewModel
	dashaView     DashaViewModel
	strengthView  StrengthViewModel
	transitView   TransitViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:         stateMgr,
		viewMode:      ViewChart,
		chartView:     NewChartViewModel(),
		panchangaView: NewPanchangaViewModel(),
		dashaView:     NewDashaViewModel(),
		strengthView:  NewStrengthViewModel(),
		transitView:   NewTransitViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "c":
			m.viewMode = ViewChart
		case "2", "p":
			m.viewMode = ViewPanchanga
		case "3", "v":
			m.viewMode = ViewDasha
		case "4", "b":
			m.viewMode = ViewStrength
		case "5", "g":
			m.viewMode = ViewTransit

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "shift+tab":
			m.viewMode = (m.viewMode + viewCount - 1) % viewCount

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~9 lines, footer ~2 lines
		contentHeight := msg.Height - 12
		m.chartView = m.chartView.SetSize(msg.Width, contentHeight)
		m.panchangaView = m.panchangaView.SetSize(msg.Width, contentHeight)
		m.dashaView = m.dashaView.SetSize(msg.Width, contentHeight)
		m.strengthView = m.strengthView.SetSize(msg.Width, contentHeight)
		m.transitView = m.transitView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.tick++
		m.snapshot = m.state.Snapshot()

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.chartView = m.chartView.UpdateData(m.snapshot)
		m.panchangaView = m.panchangaView.UpdateData(m.snapshot)
		m.dashaView = m.dashaView.UpdateData(m.snapshot)
		m.strengthView = m.strengthView.UpdateData(m.snapshot)
		m.transitView = m.transitView.UpdateData(m.snapshot)

	case ErrorMsg:
		m.chartView = m.chartView.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewChart:
		m.chartView, cmd = m.chartView.Update(msg)
	case ViewPanchanga:
		m.panchangaView, cmd = m.panchangaView.Update(msg)
	case ViewDasha:
		m.dashaView, cmd = m.dashaView.Update(msg)
	case ViewStrength:
		m.strengthView, cmd = m.strengthView.Update(msg)
	case ViewTransit:
		m.transitView, cmd = m.transitView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewChart:
		content = m.chartView.View()
	case ViewPanchanga:
		content = m.panchangaView.View()
	case ViewDasha:
		content = m.dashaView.View()
	case ViewStrength:
		content = m.strengthView.View()
	case ViewTransit:
		content = m.transitView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗        ██╗██╗   ██╗ ██████╗ ████████╗██╗███████╗██╗  ██╗`,
		`  ██║     ██╔════╝        ██║╚██╗ ██╔╝██╔═══██╗╚══██╔══╝██║██╔════╝██║  ██║`,
		`  ██║     ███████╗█████╗  ██║ ╚████╔╝ ██║   ██║   ██║   ██║███████╗███████║`,
		`  ██║     ╚════██║╚════╝  ██║  ╚██╔╝  ██║   ██║   ██║   ██║╚════██║██╔══██║`,
		`  ███████╗███████║   ██   ██║   ██║   ╚██████╔╝   ██║   ██║███████║██║  ██║`,
		`  ╚══════╝╚══════╝   ╚█████╔╝   ╚═╝    ╚═════╝    ╚═╝   ╚═╝╚══════╝╚═╝  ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Sidereal Chart Engine · Panchanga · Dasha · Gochara"))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Warm sweep: deep orange through saffron to gold.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Orange (#EA580C) -> Saffron (#F59E0B) -> Gold (#FDE047)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 234 + t*(245-234)
		g = 88 + t*(158-88)
		b = 12 + t*(11-12)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 245 + t*(253-245)
		g = 158 + t*(224-158)
		b = 11 + t*(71-11)
	}

	brightness := 1.0 - yRatio*0.45
	ri := clampByte(r * brightness)
	gi := clampByte(g * brightness)
	bi := clampByte(b * brightness)

	return fmt.Sprintf("#%02X%02X%02X", ri, gi, bi)
}

func clampByte(v float64) int {
	n := int(v)
	if n > 255 {
		return 255
	}
	if n < 0 {
		return 0
	}
	return n
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Chart", "[2] Panchanga", "[3] Dasha", "[4] Bala", "[5] Gochara"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.tick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastCompute.IsZero():
		status = dimStyle.Render(fmt.Sprintf("computed %s ago",
			time.Since(m.snapshot.LastCompute).Round(time.Second)))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" computing...")
	}

	var help string
	switch m.viewMode {
	case ViewDasha:
		help = dimStyle.Render("↑↓: period | enter: expand | esc: collapse")
	case ViewStrength:
		help = dimStyle.Render("↑↓: planet")
	case ViewTransit:
		help = dimStyle.Render("↑↓: planet | e: events")
	default:
		help = dimStyle.Render("tab: switch view | q: quit")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
