package astro

import (
	"math"
)

// J0 is the fixed offset between mean solar noon and the Julian cycle.
const J0 = 0.0009

// earthPerihelion is the ecliptic longitude of Earth's perihelion.
const earthPerihelion = Rad * 102.9372

// SolarMeanAnomaly returns the sun's mean anomaly for day count d.
func SolarMeanAnomaly(d float64) float64 {
	return Rad * (357.5291 + 0.98560028*d)
}

// EclipticLongitude returns the sun's ecliptic longitude for the mean
// anomaly m, using a three-term equation of the center.
func EclipticLongitude(m float64) float64 {
	c := Rad * (1.9148*math.Sin(m) + 0.02*math.Sin(2*m) + 0.0003*math.Sin(3*m))
	return m + c + earthPerihelion + math.Pi
}

// SunCoords returns the sun's equatorial coordinates for day count d.
func SunCoords(d float64) Equatorial {
	l := EclipticLongitude(SolarMeanAnomaly(d))
	return Equatorial{
		RA:  RightAscension(l, 0),
		Dec: Declination(l, 0),
	}
}

// JulianCycle returns the integer solar cycle nearest to day count d at the
// west-positive longitude lw.
func JulianCycle(d, lw float64) float64 {
	return math.Round(d - J0 - lw/(2*math.Pi))
}

// ApproxTransit returns the approximate day count at which the sun reaches
// hour angle ht in cycle n.
func ApproxTransit(ht, lw, n float64) float64 {
	return J0 + (ht+lw)/(2*math.Pi) + n
}

// SolarTransitJ corrects an approximate transit day count ds to a Julian
// date using the mean anomaly m and ecliptic longitude l.
func SolarTransitJ(ds, m, l float64) float64 {
	return J2000 + ds + 0.0053*math.Sin(m) - 0.0069*math.Sin(2*l)
}

// SetJ returns the Julian date at which the sun sinks to altitude h0 in
// cycle n. The second result is false when the sun never crosses h0 that
// day at latitude phi.
func SetJ(h0, lw, phi, dec, n, m, l float64) (float64, bool) {
	w, ok := HourAngle(h0, phi, dec)
	if !ok {
		return 0, false
	}
	a := ApproxTransit(w, lw, n)
	return SolarTransitJ(a, m, l), true
}
