package suncalc

import (
	"math"
	"time"

	"github.com/litescript/ls-suncalc/internal/astro"
)

// sunDistanceKm is the mean Earth-Sun distance.
const sunDistanceKm = 149598000

// MoonIllumination describes the lit part of the moon.
type MoonIllumination struct {
	// Fraction is the illuminated fraction of the disc, 0 to 1.
	Fraction float64
	// Phase runs from 0 (new) through 0.25 (first quarter), 0.5 (full) and
	// 0.75 (last quarter) back towards 1.
	Phase float64
	// Angle is the midpoint angle of the bright limb, measured eastward from
	// the north point of the disc. Negative while waxing.
	Angle float64
}

// GetMoonIllumination returns the moon's illumination at t. It does not
// depend on the observer's location.
//
// Formulas follow http://idlastro.gsfc.nasa.gov/ftp/pro/astro/mphase.pro and
// chapter 48 of Meeus, Astronomical Algorithms (2nd ed.).
func GetMoonIllumination(t time.Time) MoonIllumination {
	d := astro.ToDays(t)
	s := astro.SunCoords(d)
	m := astro.MoonCoords(d)

	cosPhi := math.Sin(s.Dec)*math.Sin(m.Dec) + math.Cos(s.Dec)*math.Cos(m.Dec)*math.Cos(s.RA-m.RA)
	phi := math.Acos(cosPhi)
	inc := math.Atan2(sunDistanceKm*math.Sin(phi), m.DistanceKm-sunDistanceKm*math.Cos(phi))
	angle := math.Atan2(
		math.Cos(s.Dec)*math.Sin(s.RA-m.RA),
		math.Sin(s.Dec)*math.Cos(m.Dec)-math.Cos(s.Dec)*math.Sin(m.Dec)*math.Cos(s.RA-m.RA),
	)

	sign := 1.0
	if angle < 0 {
		sign = -1
	}
	phase := 0.5 + 0.5*inc*sign/math.Pi
	if phase >= 1 {
		phase -= 1
	}

	return MoonIllumination{
		Fraction: (1 + math.Cos(inc)) / 2,
		Phase:    phase,
		Angle:    angle,
	}
}

// GetMoonIlluminationNow returns the moon's illumination at the current
// time.
func GetMoonIlluminationNow() MoonIllumination {
	return GetMoonIllumination(time.Now())
}

// PhaseName returns the conventional name of the lunation phase, e.g.
// "Waxing Gibbous". Phases within 1/16 of a principal phase take its name.
func PhaseName(phase float64) string {
	names := [...]string{
		"New Moon",
		"Waxing Crescent",
		"First Quarter",
		"Waxing Gibbous",
		"Full Moon",
		"Waning Gibbous",
		"Last Quarter",
		"Waning Crescent",
	}
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return ""
	}
	p := phase - math.Floor(phase)
	idx := int(math.Floor(p*8+0.5)) % len(names)
	return names[idx]
}
