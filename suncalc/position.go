// Package suncalc calculates sun and moon positions, sun light phases,
// moon rise and set times and moon illumination for a point on Earth.
//
// Inputs are an instant (read as UTC) and a latitude/longitude in degrees.
// Angles in results are radians, distances kilometres. Azimuth is measured
// from south towards west. Nothing is validated: out of range coordinates
// flow through the formulas and may produce NaN.
package suncalc

import (
	"math"
	"time"

	"github.com/litescript/ls-suncalc/internal/astro"
)

// SunPosition is the sun's place in the observer's sky.
type SunPosition struct {
	Azimuth  float64
	Altitude float64
}

// MoonPosition is the moon's place in the observer's sky.
type MoonPosition struct {
	Azimuth          float64
	Altitude         float64 // includes atmospheric refraction
	Distance         float64 // km
	ParallacticAngle float64
}

// GetSunPosition returns the sun's azimuth and altitude at t for the given
// latitude and longitude.
func GetSunPosition(t time.Time, lat, lng float64) SunPosition {
	phi, lw := astro.Observer(lat, lng)
	d := astro.ToDays(t)

	hz, _ := astro.ToHorizontal(astro.SunCoords(d), d, phi, lw)
	return SunPosition{
		Azimuth:  hz.Azimuth,
		Altitude: hz.Altitude,
	}
}

// GetMoonPosition returns the moon's azimuth, refracted altitude, distance
// and parallactic angle at t for the given latitude and longitude.
func GetMoonPosition(t time.Time, lat, lng float64) MoonPosition {
	phi, lw := astro.Observer(lat, lng)
	d := astro.ToDays(t)
	c := astro.MoonCoords(d)

	hz, h := astro.ToHorizontal(c.Equatorial, d, phi, lw)

	// Formula 14.1 of Meeus, Astronomical Algorithms (2nd ed.).
	pa := math.Atan2(math.Sin(h), math.Tan(phi)*math.Cos(c.Dec)-math.Sin(c.Dec)*math.Cos(h))

	return MoonPosition{
		Azimuth:          hz.Azimuth,
		Altitude:         hz.Altitude + astro.AstroRefraction(hz.Altitude),
		Distance:         c.DistanceKm,
		ParallacticAngle: pa,
	}
}
