// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suncalc/internal/state"
	"github.com/litescript/ls-suncalc/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSun ViewMode = iota
	ViewMoon
	viewCount
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals the state manager has been refreshed.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager
	loc   *time.Location
	now   func() time.Time

	viewMode   ViewMode
	width      int
	height     int
	ready      bool
	animTick   int
	refreshing bool

	sunView  SunViewModel
	moonView MoonViewModel

	snapshot state.Snapshot
}

// New creates the root model. Times are displayed in loc.
func New(stateMgr *state.Manager, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{
		state:    stateMgr,
		loc:      loc,
		now:      time.Now,
		viewMode: ViewSun,
		sunView:  NewSunViewModel(loc),
		moonView: NewMoonViewModel(loc),
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.refreshCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "s":
			m.viewMode = ViewSun
		case "2", "m":
			m.viewMode = ViewMoon
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "r":
			if !m.refreshing {
				m.refreshing = true
				cmds = append(cmds, m.refreshCmd())
			}
		default:
			if m.viewMode == ViewSun {
				var cmd tea.Cmd
				m.sunView, cmd = m.sunView.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header is 4 lines, footer 2.
		contentHeight := msg.Height - 6
		m.sunView = m.sunView.SetSize(msg.Width, contentHeight)
		m.moonView = m.moonView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if !m.refreshing && m.refreshDue(time.Time(msg)) {
			m.refreshing = true
			cmds = append(cmds, m.refreshCmd())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.sunView = m.sunView.SetAnimTick(m.animTick)
		m.moonView = m.moonView.SetAnimTick(m.animTick)

	case DataUpdateMsg:
		m.refreshing = false
		m.snapshot = msg.Snapshot
		m.sunView = m.sunView.UpdateData(m.snapshot)
		m.moonView = m.moonView.UpdateData(m.snapshot)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) refreshDue(now time.Time) bool {
	if m.snapshot.LastUpdate.IsZero() {
		return true
	}
	return now.Sub(m.snapshot.LastUpdate) >= m.state.RefreshInterval()
}

// refreshCmd recomputes the state off the UI goroutine.
func (m Model) refreshCmd() tea.Cmd {
	mgr, now := m.state, m.now
	return func() tea.Msg {
		mgr.Update(now())
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSun:
		content = m.sunView.View()
	case ViewMoon:
		content = m.moonView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")

	title := "ls-suncalc"
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, len(runes))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(r)))
	}

	obs := m.snapshot.Observer
	name := obs.Name
	if name == "" {
		name = "observer"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  v%s · %s (%.4f, %.4f)", version.Version, name, obs.Lat, obs.Lng)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color along a dawn gradient:
// indigo -> rose -> amber.
func gradientColor(col, width int) string {
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}

	var r, g, b float64
	if x < 0.5 {
		t := x / 0.5
		r = 79 + t*(236-79)
		g = 70 + t*(72-70)
		b = 229 + t*(153-229)
	} else {
		t := (x - 0.5) / 0.5
		r = 236 + t*(245-236)
		g = 72 + t*(158-72)
		b = 153 + t*(11-153)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	return max(0, min(255, int(v)))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sun", "[2] Moon"}

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeTabStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.snapshot.LastUpdate.IsZero() {
		status = accentStyle.Render(spinner) + dimStyle.Render(" computing...")
	} else {
		next := m.snapshot.LastUpdate.Add(m.state.RefreshInterval())
		countdown := max(next.Sub(m.now()).Round(time.Second), 0)
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
	}

	help := dimStyle.Render("tab: switch view | r: refresh | q: quit")
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
