package astro

import (
	"math"
)

// MoonCoordinates holds the moon's geocentric equatorial position and its
// distance from Earth.
type MoonCoordinates struct {
	Equatorial
	DistanceKm float64
}

// MoonCoords returns the moon's geocentric coordinates for day count d.
func MoonCoords(d float64) MoonCoordinates {
	l := Rad * (218.316 + 13.176396*d) // mean ecliptic longitude
	m := Rad * (134.963 + 13.064993*d) // mean anomaly
	f := Rad * (93.272 + 13.229350*d)  // mean distance from the ascending node

	l += Rad * 6.289 * math.Sin(m)
	b := Rad * 5.128 * math.Sin(f)

	return MoonCoordinates{
		Equatorial: Equatorial{
			RA:  RightAscension(l, b),
			Dec: Declination(l, b),
		},
		DistanceKm: 385001 - 20905*math.Cos(m),
	}
}
