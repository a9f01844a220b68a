package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

const ruleWidth = 60

// WriteSummary writes a text summary of snap with times shown in loc.
// When seasons is positive the next equinoxes and solstices are listed.
func WriteSummary(w io.Writer, snap *Snapshot, loc *time.Location, seasons int) {
	if loc == nil {
		loc = time.UTC
	}

	name := snap.Observer.Name
	if name == "" {
		name = "Observer"
	}
	fmt.Fprintf(w, "%s (%.4f, %.4f) @ %s\n", name, snap.Observer.Lat, snap.Observer.Lng,
		snap.Time.In(loc).Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	fmt.Fprintf(w, "Sun   azimuth %7.2f° (%s)  altitude %6.2f°\n",
		snap.Sun.Azimuth.Deg, Compass(snap.Sun.Azimuth.Deg), snap.Sun.Altitude.Deg)
	for _, ev := range snap.Sun.Times {
		fmt.Fprintf(w, "  %-18s %s\n", ev.Name, formatTime(ev.Time, loc))
	}

	m := snap.Moon
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	fmt.Fprintf(w, "Moon  azimuth %7.2f° (%s)  altitude %6.2f°\n",
		m.Azimuth.Deg, Compass(m.Azimuth.Deg), m.Altitude.Deg)
	fmt.Fprintf(w, "  %-18s %s km\n", "distance", FormatDistance(m.DistanceKm))
	fmt.Fprintf(w, "  %-18s %.1f%% (%s, phase %.3f)\n", "illumination", m.Fraction*100, m.PhaseName, m.Phase)
	fmt.Fprintf(w, "  %-18s %.2f°\n", "parallactic angle", m.ParallacticAngle.Deg)
	switch {
	case m.AlwaysUp:
		fmt.Fprintf(w, "  %-18s %s\n", "moonrise", "up all day")
	case m.AlwaysDown:
		fmt.Fprintf(w, "  %-18s %s\n", "moonrise", "down all day")
	default:
		fmt.Fprintf(w, "  %-18s %s\n", "moonrise", formatTime(m.Rise, loc))
		fmt.Fprintf(w, "  %-18s %s\n", "moonset", formatTime(m.Set, loc))
	}
	fmt.Fprintf(w, "  %-18s %s\n", "lunar noon", formatTime(m.LunarNoon, loc))
	fmt.Fprintf(w, "  %-18s %s\n", "lunar nadir", formatTime(m.Nadir, loc))

	if seasons > 0 {
		fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
		for _, s := range NextSeasons(snap.Time, seasons) {
			fmt.Fprintf(w, "  %-18s %s\n", s.Name, s.Time.In(loc).Format("2006-01-02 15:04 MST"))
		}
	}
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "none"
	}
	return t.In(loc).Format("2006-01-02 15:04:05 MST")
}

// Compass converts an azimuth in degrees measured from south towards
// west into a 16-point compass direction.
func Compass(azDeg float64) string {
	points := [...]string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	if math.IsNaN(azDeg) || math.IsInf(azDeg, 0) {
		return "?"
	}
	bearing := math.Mod(azDeg+180, 360)
	if bearing < 0 {
		bearing += 360
	}
	return points[int(math.Round(bearing/22.5))%len(points)]
}

// FormatDistance formats kilometres with thousands separators.
func FormatDistance(km float64) string {
	s := fmt.Sprintf("%.0f", km)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
