package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suncalc/internal/trace"
)

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Altitude gradient above the horizon: low (amber) → mid (gold) → high (pale yellow).
var (
	altColorLow  = [3]uint8{0xc2, 0x41, 0x0c}
	altColorMid  = [3]uint8{0xf5, 0x9e, 0x0b}
	altColorHigh = [3]uint8{0xfe, 0xf0, 0x8a}
)

// altColorBelow is used for cells below the horizon.
var altColorBelow = [3]uint8{0x1b, 0x2b, 0x4b}

// renderSparkline renders tr as a sparkline of SparklineWidth cells. Block
// height covers -90° to +90°; colour marks whether the body is up.
func renderSparkline(tr *trace.Trace, now time.Time, animTick int) string {
	if tr == nil {
		return renderShimmerSparkline(animTick, "computing trace...")
	}

	samples := resampleAltitude(tr.Samples, SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("No samples")
	}

	var sb strings.Builder
	for _, alt := range samples {
		alt = max(-90, min(90, alt))
		blockIdx := min(int((alt+90)/180*8), 7)

		var r, g, b uint8
		if alt < 0 {
			r, g, b = altColorBelow[0], altColorBelow[1], altColorBelow[2]
		} else {
			r, g, b = interpolateAltColor(alt / 90)
		}
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}

	if cur := tr.Current(now); cur != nil {
		nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", cur.Altitude)))
	}

	return sb.String()
}

// renderShimmerSparkline renders a loading animation sparkline.
func renderShimmerSparkline(animTick int, msg string) string {
	var sb strings.Builder

	offset := animTick % SparklineWidth
	for i := 0; i < SparklineWidth; i++ {
		dist := (i - offset + SparklineWidth) % SparklineWidth
		gray := 60
		if dist < 8 {
			gray = 60 + dist*8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))
	return sb.String()
}

// interpolateAltColor returns RGB color for altitude fraction t in [0, 1].
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	t = max(0, min(1, t))

	from, to, s := altColorLow, altColorMid, t*2
	if t >= 0.5 {
		from, to, s = altColorMid, altColorHigh, (t-0.5)*2
	}

	mix := func(i int) uint8 {
		return uint8(float64(from[i])*(1-s) + float64(to[i])*s)
	}
	return mix(0), mix(1), mix(2)
}

// resampleAltitude averages samples into a fixed number of buckets.
func resampleAltitude(samples []trace.Sample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		start := int(float64(i) * perBucket)
		end := min(int(float64(i+1)*perBucket), len(samples))
		if end <= start {
			end = min(start+1, len(samples))
		}

		sum := 0.0
		for _, s := range samples[start:end] {
			sum += s.Altitude
		}
		if n := end - start; n > 0 {
			result[i] = sum / float64(n)
		}
	}

	return result
}
