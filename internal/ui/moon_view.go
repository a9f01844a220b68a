package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suncalc/internal/report"
	"github.com/litescript/ls-suncalc/internal/state"
)

// phaseGlyphs are indexed by eighths of the lunation, starting at new moon.
var phaseGlyphs = []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

// MoonViewModel shows the moon's position, illumination and rise and set
// times.
type MoonViewModel struct {
	loc      *time.Location
	width    int
	height   int
	animTick int
	snapshot state.Snapshot
}

// NewMoonViewModel creates a moon view that displays times in loc.
func NewMoonViewModel(loc *time.Location) MoonViewModel {
	return MoonViewModel{loc: loc}
}

// SetSize updates the view dimensions.
func (m MoonViewModel) SetSize(width, height int) MoonViewModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick advances the loading animation.
func (m MoonViewModel) SetAnimTick(tick int) MoonViewModel {
	m.animTick = tick
	return m
}

// UpdateData replaces the displayed state.
func (m MoonViewModel) UpdateData(snapshot state.Snapshot) MoonViewModel {
	m.snapshot = snapshot
	return m
}

// View renders the moon view.
func (m MoonViewModel) View() string {
	rep := m.snapshot.Report
	if rep == nil {
		return "\n  " + renderShimmerSparkline(m.animTick, "computing moon...") + "\n"
	}
	moon := rep.Moon

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(phaseGlyph(moon.Phase)+" Moon") + dimStyle.Render("  "+moon.PhaseName) + "\n\n")

	row := func(label, value string) {
		b.WriteString("  " + labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("Altitude", fmt.Sprintf("%.2f°", moon.Altitude.Deg))
	row("Azimuth", fmt.Sprintf("%.2f° %s", moon.Azimuth.Deg, report.Compass(moon.Azimuth.Deg)))
	row("Distance", report.FormatDistance(moon.DistanceKm)+" km")
	row("Parallactic angle", fmt.Sprintf("%.2f°", moon.ParallacticAngle.Deg))
	b.WriteString("\n")

	b.WriteString("  " + labelStyle.Render("Illuminated") + renderIllumination(moon.Fraction, 20) + valueStyle.Render(fmt.Sprintf(" %.1f%%", moon.Fraction*100)) + "\n")
	row("Phase", fmt.Sprintf("%.3f", moon.Phase))
	row("Bright limb", fmt.Sprintf("%.2f°", moon.BrightLimbAngle.Deg))
	b.WriteString("\n")

	b.WriteString("  " + renderSparkline(m.snapshot.MoonTrace, rep.Time, m.animTick) + "\n\n")

	switch {
	case moon.AlwaysUp:
		row("Rise / Set", highlightStyle.Render("always up"))
	case moon.AlwaysDown:
		row("Rise / Set", dimStyle.Render("always down"))
	default:
		row("Moonrise", formatClock(moon.Rise, m.loc))
		row("Moonset", formatClock(moon.Set, m.loc))
	}
	row("Highest", formatClock(moon.LunarNoon, m.loc))
	row("Lowest", formatClock(moon.Nadir, m.loc))

	var events []state.Event
	for _, e := range m.snapshot.Events {
		switch e.Type {
		case state.EventMoonrise, state.EventMoonset, state.EventNewMoon, state.EventFullMoon:
			events = append(events, e)
		}
	}
	b.WriteString(renderEventLog(events, m.loc))

	return b.String()
}

// phaseGlyph returns the moon emoji closest to phase.
func phaseGlyph(phase float64) string {
	if math.IsNaN(phase) {
		return phaseGlyphs[0]
	}
	p := phase - math.Floor(phase)
	return phaseGlyphs[int(math.Floor(p*8+0.5))%len(phaseGlyphs)]
}

// renderIllumination renders the lit fraction as a bar of width cells.
func renderIllumination(fraction float64, width int) string {
	fraction = max(0, min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))

	lit := lipgloss.NewStyle().Foreground(lipgloss.Color("#FEF08A"))
	dark := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	return lit.Render(strings.Repeat("█", filled)) + dark.Render(strings.Repeat("░", width-filled))
}
