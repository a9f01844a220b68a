package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-suncalc/internal/report"
	"github.com/litescript/ls-suncalc/internal/state"
)

// SunViewModel shows the sun's position, the day's light phases and an
// altitude sparkline.
type SunViewModel struct {
	loc      *time.Location
	width    int
	height   int
	cursor   int
	animTick int
	snapshot state.Snapshot
}

// NewSunViewModel creates a sun view that displays times in loc.
func NewSunViewModel(loc *time.Location) SunViewModel {
	return SunViewModel{loc: loc}
}

// SetSize updates the view dimensions.
func (m SunViewModel) SetSize(width, height int) SunViewModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick advances the loading animation.
func (m SunViewModel) SetAnimTick(tick int) SunViewModel {
	m.animTick = tick
	return m
}

// UpdateData replaces the displayed state.
func (m SunViewModel) UpdateData(snapshot state.Snapshot) SunViewModel {
	m.snapshot = snapshot
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// Update handles cursor movement over the event table.
func (m SunViewModel) Update(msg tea.Msg) (SunViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.rows())
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			m.cursor = max(n-1, 0)
		}
	}
	return m, nil
}

// Selected returns the event under the cursor.
func (m SunViewModel) Selected() (report.EventTime, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return report.EventTime{}, false
	}
	return rows[m.cursor], true
}

func (m SunViewModel) rows() []report.EventTime {
	if m.snapshot.Report == nil {
		return nil
	}
	return m.snapshot.Report.Sun.Times
}

// View renders the sun view.
func (m SunViewModel) View() string {
	rep := m.snapshot.Report
	if rep == nil {
		return "\n  " + renderShimmerSparkline(m.animTick, "computing sun times...") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("☀ Sun") + "\n\n")

	az := rep.Sun.Azimuth.Deg
	b.WriteString("  " + labelStyle.Render("Altitude") + valueStyle.Render(fmt.Sprintf("%.2f°", rep.Sun.Altitude.Deg)) + "\n")
	b.WriteString("  " + labelStyle.Render("Azimuth") + valueStyle.Render(fmt.Sprintf("%.2f° %s", az, report.Compass(az))) + "\n\n")

	b.WriteString("  " + renderSparkline(m.snapshot.SunTrace, rep.Time, m.animTick) + "\n\n")

	next := nextEvent(rep.Sun.Times, rep.Time)
	for i, ev := range rep.Sun.Times {
		line := labelStyle.Render(ev.Name) + valueStyle.Render(formatClock(ev.Time, m.loc))
		if ev.Name == next {
			line += accentStyle.Render("  ◀ next")
		}
		if i == m.cursor {
			line = highlightStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString(m.renderEvents())
	return b.String()
}

func (m SunViewModel) renderEvents() string {
	var events []state.Event
	for _, e := range m.snapshot.Events {
		if e.Type == state.EventSunrise || e.Type == state.EventSunset {
			events = append(events, e)
		}
	}
	return renderEventLog(events, m.loc)
}

// nextEvent returns the name of the first event after now.
func nextEvent(times []report.EventTime, now time.Time) string {
	var best *report.EventTime
	for i := range times {
		ev := &times[i]
		if ev.Time == nil || !ev.Time.After(now) {
			continue
		}
		if best == nil || ev.Time.Before(*best.Time) {
			best = ev
		}
	}
	if best == nil {
		return ""
	}
	return best.Name
}

func formatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "--:--:--"
	}
	return t.In(loc).Format("15:04:05")
}

// renderEventLog renders the most recent events, newest last.
func renderEventLog(events []state.Event, loc *time.Location) string {
	const shown = 5
	if len(events) == 0 {
		return ""
	}
	if len(events) > shown {
		events = events[len(events)-shown:]
	}

	var b strings.Builder
	b.WriteString("\n  " + dimStyle.Render("Recent") + "\n")
	for _, e := range events {
		b.WriteString("  " + dimStyle.Render(e.Timestamp.In(loc).Format("Jan 02 15:04")) + "  " + valueStyle.Render(fmt.Sprintf("%-9s %s", e.Type, e.Detail)) + "\n")
	}
	return b.String()
}
