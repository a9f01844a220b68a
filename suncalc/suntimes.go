package suncalc

import (
	"time"

	"github.com/litescript/ls-suncalc/internal/astro"
)

// SunEvent is one configured crossing of a sun altitude.
type SunEvent struct {
	Name   string
	Angle  float64 // degrees
	Rising bool
	// Time is nil when the sun does not reach Angle on that day at the
	// requested latitude.
	Time *time.Time
}

// SunTimes holds the transit times of one solar day plus a rise and a set
// event for every definition the calculation was run with.
type SunTimes struct {
	SolarNoon time.Time
	Nadir     time.Time
	Events    []SunEvent // rise then set, in definition order
}

// GetSunTimes computes sun times at t for the given latitude and longitude
// using the process-wide definitions (see AddSunTime).
func GetSunTimes(t time.Time, lat, lng float64) SunTimes {
	return GetSunTimesFor(t, lat, lng, defaultRegistry.Definitions())
}

// GetSunTimesFor computes sun times using an explicit definition list.
//
// Rise times are the set times mirrored around solar noon, which assumes
// the sun's path is symmetric about transit.
func GetSunTimesFor(t time.Time, lat, lng float64, defs []SunTimeDefinition) SunTimes {
	phi, lw := astro.Observer(lat, lng)
	d := astro.ToDays(t)

	n := astro.JulianCycle(d, lw)
	ds := astro.ApproxTransit(0, lw, n)
	m := astro.SolarMeanAnomaly(ds)
	l := astro.EclipticLongitude(m)
	dec := astro.Declination(l, 0)
	jNoon := astro.SolarTransitJ(ds, m, l)

	times := SunTimes{
		SolarNoon: astro.FromJulian(jNoon),
		Nadir:     astro.FromJulian(jNoon - 0.5),
		Events:    make([]SunEvent, 0, 2*len(defs)),
	}

	for _, def := range defs {
		rise := SunEvent{Name: def.RiseName, Angle: def.Angle, Rising: true}
		set := SunEvent{Name: def.SetName, Angle: def.Angle}

		if jSet, ok := astro.SetJ(astro.Radians(def.Angle), lw, phi, dec, n, m, l); ok {
			jRise := jNoon - (jSet - jNoon)
			riseAt := astro.FromJulian(jRise)
			setAt := astro.FromJulian(jSet)
			rise.Time = &riseAt
			set.Time = &setAt
		}

		times.Events = append(times.Events, rise, set)
	}

	return times
}

// Time looks up an event by name, including SolarNoon and Nadir. The
// second result is false for unknown names and for events that do not
// occur. When several definitions share a name the last one wins.
func (s SunTimes) Time(name string) (time.Time, bool) {
	switch name {
	case SolarNoon:
		return s.SolarNoon, true
	case Nadir:
		return s.Nadir, true
	}
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].Name == name {
			if s.Events[i].Time == nil {
				return time.Time{}, false
			}
			return *s.Events[i].Time, true
		}
	}
	return time.Time{}, false
}

// Names returns every event name in report order, starting with SolarNoon
// and Nadir. Duplicate names appear once.
func (s SunTimes) Names() []string {
	names := []string{SolarNoon, Nadir}
	seen := map[string]bool{SolarNoon: true, Nadir: true}
	for _, e := range s.Events {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		names = append(names, e.Name)
	}
	return names
}

// Len returns the number of distinct named entries, counting the two
// transit events.
func (s SunTimes) Len() int {
	return len(s.Names())
}
