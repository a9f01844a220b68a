// Package astro provides the low-precision sun and moon ephemeris and the
// sky math built on it.
//
// All angles are radians unless a name says otherwise. Day counts are days
// since J2000.0 (see ToDays). Most of the formulas follow
// http://aa.quae.nl/en/reken/zonpositie.html and
// http://aa.quae.nl/en/reken/hemelpositie.html.
package astro

import (
	"math"
)

// Rad is one degree expressed in radians.
const Rad = math.Pi / 180

// Obliquity is the obliquity of the ecliptic (23.4397°).
const Obliquity = Rad * 23.4397

// Equatorial holds geocentric equatorial coordinates in radians.
type Equatorial struct {
	RA  float64 // Right ascension
	Dec float64 // Declination
}

// Horizontal holds observer-relative coordinates in radians.
//
// Azimuth is measured from south, increasing towards west, so due north is
// ±π. Altitude is 0 at the horizon and π/2 at the zenith.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

// RightAscension converts ecliptic longitude l and latitude b to right
// ascension.
func RightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(Obliquity)-math.Tan(b)*math.Sin(Obliquity), math.Cos(l))
}

// Declination converts ecliptic longitude l and latitude b to declination.
func Declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(Obliquity) + math.Cos(b)*math.Sin(Obliquity)*math.Sin(l))
}

// Azimuth returns the azimuth of a body with hour angle h and declination
// dec, seen from latitude phi.
func Azimuth(h, phi, dec float64) float64 {
	return math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

// Altitude returns the geometric altitude of a body with hour angle h and
// declination dec, seen from latitude phi.
func Altitude(h, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h))
}

// SiderealTime returns the local sidereal time for day count d at the
// west-positive longitude lw.
func SiderealTime(d, lw float64) float64 {
	return Rad*(280.16+360.9856235*d) - lw
}

// AstroRefraction returns the atmospheric refraction for an apparent
// altitude h, per formula 16.4 of Meeus, Astronomical Algorithms (2nd ed.).
// The formula only holds for h >= 0, so negative altitudes are treated as 0.
func AstroRefraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

// HourAngle returns the hour angle at which a body with declination dec
// reaches altitude h0 as seen from latitude phi.
//
// The second result is false when that altitude is never reached on the
// day, e.g. polar day or polar night for a twilight angle.
func HourAngle(h0, phi, dec float64) (float64, bool) {
	x := (math.Sin(h0) - math.Sin(phi)*math.Sin(dec)) / (math.Cos(phi) * math.Cos(dec))
	if x < -1 || x > 1 || math.IsNaN(x) {
		return 0, false
	}
	return math.Acos(x), true
}

// ToHorizontal converts equatorial coordinates to horizontal ones for day
// count d, latitude phi and west-positive longitude lw. It also returns the
// hour angle, which callers need for the parallactic angle.
func ToHorizontal(eq Equatorial, d, phi, lw float64) (Horizontal, float64) {
	h := SiderealTime(d, lw) - eq.RA
	return Horizontal{
		Azimuth:  Azimuth(h, phi, eq.Dec),
		Altitude: Altitude(h, phi, eq.Dec),
	}, h
}

// Observer converts a latitude/longitude pair in degrees to the latitude
// and west-positive longitude in radians used by the formulas.
func Observer(latDeg, lngDeg float64) (phi, lw float64) {
	return Rad * latDeg, Rad * -lngDeg
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad / Rad
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * Rad
}
