// Package trace samples sun and moon altitude over a time window.
package trace

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-suncalc/internal/astro"
	"github.com/litescript/ls-suncalc/suncalc"
)

// Body selects the object being traced.
type Body int

const (
	Sun Body = iota
	Moon
)

// ErrUnknownBody is returned by ParseBody.
var ErrUnknownBody = errors.New("unknown body")

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// ParseBody parses "sun" or "moon".
func ParseBody(s string) (Body, error) {
	switch strings.ToLower(s) {
	case "sun":
		return Sun, nil
	case "moon":
		return Moon, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}

// Defaults for Compute.
const (
	DefaultWindow   = 12 * time.Hour
	DefaultInterval = 15 * time.Minute
)

// Sample is one altitude reading.
type Sample struct {
	Time     time.Time
	Altitude float64 // degrees above horizon
	Azimuth  float64 // degrees, from south towards west
}

// Trace holds samples over [WindowStart, WindowEnd].
type Trace struct {
	Body        Body
	Lat, Lng    float64
	Samples     []Sample
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
}

// Altitude returns the body's azimuth and altitude in degrees.
func Altitude(body Body, t time.Time, lat, lng float64) (az, alt float64) {
	if body == Moon {
		p := suncalc.GetMoonPosition(t, lat, lng)
		return astro.Degrees(p.Azimuth), astro.Degrees(p.Altitude)
	}
	p := suncalc.GetSunPosition(t, lat, lng)
	return astro.Degrees(p.Azimuth), astro.Degrees(p.Altitude)
}

// Compute samples the body every interval across window on each side of
// now. A non-positive interval yields an empty trace.
func Compute(body Body, lat, lng float64, now time.Time, window, interval time.Duration) *Trace {
	tr := &Trace{
		Body:        body,
		Lat:         lat,
		Lng:         lng,
		GeneratedAt: now,
		WindowStart: now.Add(-window),
		WindowEnd:   now.Add(window),
	}
	if interval <= 0 || window < 0 {
		return tr
	}

	n := int(2*window/interval) + 1
	tr.Samples = make([]Sample, 0, n)
	for t := tr.WindowStart; !t.After(tr.WindowEnd); t = t.Add(interval) {
		az, alt := Altitude(body, t, lat, lng)
		tr.Samples = append(tr.Samples, Sample{Time: t, Altitude: alt, Azimuth: az})
	}
	return tr
}

// Current returns the sample closest to now, or nil if there are none.
func (t *Trace) Current(now time.Time) *Sample {
	var closest *Sample
	minDelta := time.Duration(1<<63 - 1)

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now).Abs()
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}
	return closest
}

// Peak returns the highest sample, or nil if there are none.
func (t *Trace) Peak() *Sample {
	var peak *Sample
	for i := range t.Samples {
		if peak == nil || t.Samples[i].Altitude > peak.Altitude {
			peak = &t.Samples[i]
		}
	}
	return peak
}

// Altitudes returns the sample altitudes in order.
func (t *Trace) Altitudes() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Altitude
	}
	return out
}
