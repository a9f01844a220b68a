package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-suncalc/internal/trace"
	"github.com/litescript/ls-suncalc/suncalc"
)

// ChartWidth is the bar length for an altitude of +90°.
const ChartWidth = 60

// WriteAltitudeChart prints one bar per hour from start for hours hours,
// scaled so an empty bar is -90° and a full one +90°. Moon rows also show
// the lunation phase.
func WriteAltitudeChart(w io.Writer, body trace.Body, lat, lng float64, start time.Time, hours int, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	for h := 0; h <= hours; h++ {
		at := start.Add(time.Duration(h) * time.Hour)
		_, alt := trace.Altitude(body, at, lat, lng)

		fmt.Fprintf(w, "%s %-*s %7.2f°", at.In(loc).Format("2006-01-02 15:04"), ChartWidth, Bar(alt, ChartWidth), alt)
		if body == trace.Moon {
			fmt.Fprintf(w, "  %.3f", suncalc.GetMoonIllumination(at).Phase)
		}
		fmt.Fprintln(w)
	}
	half := (ChartWidth - 5) / 2
	fmt.Fprintf(w, "%16s [-90 %s 0 %s +90]\n", "axis", strings.Repeat("-", half-3), strings.Repeat("-", half-3))
}

// Bar renders an altitude in degrees as a run of '*'.
func Bar(altDeg float64, width int) string {
	if math.IsNaN(altDeg) {
		return ""
	}
	n := int((altDeg + 90) / 180 * float64(width))
	n = max(0, min(width, n))
	return strings.Repeat("*", n)
}
