package suncalc

import (
	"math"
	"time"

	"github.com/litescript/ls-suncalc/internal/astro"
)

// moonHorizon is the altitude correction applied before root finding, a
// combined allowance for parallax and the moon's apparent radius.
const moonHorizon = 0.133 * astro.Rad

// MoonTimes holds the moon events of one UTC calendar day. Pointers are nil
// for events that were not found in the day.
type MoonTimes struct {
	Rise      *time.Time
	Set       *time.Time
	LunarNoon *time.Time // highest altitude found
	Nadir     *time.Time // lowest altitude found

	// Exactly one of these is set when neither a rise nor a set was found.
	AlwaysUp   bool
	AlwaysDown bool
}

// hourMark is an optional hour offset from the start of the day.
type hourMark struct {
	hours float64
	ok    bool
}

func at(hours float64) hourMark {
	return hourMark{hours: hours, ok: true}
}

// moonScan is the state carried from one two-hour window to the next.
type moonScan struct {
	h0   float64 // altitude at the start of the next window
	ye   float64 // fitted extremum of the last window
	rise hourMark
	set  hourMark
	min  hourMark
	max  hourMark
}

// done reports whether every event has been located.
func (s moonScan) done() bool {
	return s.rise.ok && s.set.ok && s.min.ok && s.max.ok
}

// fit folds the window centred on hour i, with altitudes h1 at i and h2 at
// i+1, into the scan. A parabola is fitted through the three samples at
// x = -1, 0, +1 and its roots and extremum are read off.
func (s moonScan) fit(i, h1, h2 float64) moonScan {
	next := s

	a := (s.h0+h2)/2 - h1
	b := (h2 - s.h0) / 2
	xe := -b / (2 * a)
	ye := (a*xe+b)*xe + h1
	d := b*b - 4*a*h1
	next.ye = ye

	if math.Abs(xe) <= 1 && ye < 0 {
		next.min = at(i + xe)
	}
	if math.Abs(xe) <= 1 && ye > 0 {
		next.max = at(i + xe)
	}

	roots := 0
	var x1, x2 float64
	if d >= 0 {
		dx := math.Sqrt(d) / (math.Abs(a) * 2)
		x1 = xe - dx
		x2 = xe + dx
		if math.Abs(x1) <= 1 {
			roots++
		}
		if math.Abs(x2) <= 1 {
			roots++
		}
		if x1 < -1 {
			x1 = x2
		}
	}

	switch roots {
	case 1:
		if s.h0 < 0 {
			next.rise = at(i + x1)
		} else {
			next.set = at(i + x1)
		}
	case 2:
		if ye < 0 {
			next.rise = at(i + x2)
			next.set = at(i + x1)
		} else {
			next.rise = at(i + x1)
			next.set = at(i + x2)
		}
	}

	next.h0 = h2
	return next
}

// GetMoonTimes finds moonrise, moonset and the altitude extremes during the
// UTC calendar day containing t.
//
// The method follows http://www.stargazing.net/kepler/moonrise.html: the
// day is walked in two-hour windows and each is approximated by a
// quadratic through three hourly altitude samples.
func GetMoonTimes(t time.Time, lat, lng float64) MoonTimes {
	y, mo, d := t.UTC().Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	altitude := func(hours float64) float64 {
		return GetMoonPosition(astro.HoursLater(day, hours), lat, lng).Altitude - moonHorizon
	}

	scan := moonScan{h0: altitude(0)}
	for i := 1.0; i < 24 && !scan.done(); i += 2 {
		scan = scan.fit(i, altitude(i), altitude(i+1))
	}

	return scan.result(day)
}

// result converts a finished scan into MoonTimes anchored at day.
func (s moonScan) result(day time.Time) MoonTimes {
	var mt MoonTimes
	mt.Nadir = s.min.time(day)
	mt.LunarNoon = s.max.time(day)
	mt.Rise = s.rise.time(day)
	mt.Set = s.set.time(day)

	if !s.rise.ok && !s.set.ok {
		if s.ye > 0 {
			mt.AlwaysUp = true
		} else {
			mt.AlwaysDown = true
		}
	}
	return mt
}

func (h hourMark) time(day time.Time) *time.Time {
	if !h.ok {
		return nil
	}
	t := astro.HoursLater(day, h.hours)
	return &t
}
