package astro

import (
	"math"
	"time"
)

const (
	// SecondsPerDay is the length of a day without leap seconds.
	SecondsPerDay = 60 * 60 * 24

	// J1970 is the Julian day number at the Unix epoch (noon convention).
	J1970 = 2440588

	// J2000 is the Julian day of the J2000.0 epoch, 2000-01-01 12:00 UTC.
	J2000 = 2451545
)

// ToJulian returns the Julian date for an instant. The instant is read as
// UTC; sub-second precision is kept.
func ToJulian(t time.Time) float64 {
	return unixSeconds(t)/SecondsPerDay - 0.5 + J1970
}

// FromJulian converts a Julian date back to a UTC instant. There is no
// rounding to any calendar granularity.
func FromJulian(j float64) time.Time {
	return fromUnixSeconds((j + 0.5 - J1970) * SecondsPerDay)
}

// ToDays returns the number of days, including the fraction, since J2000.0.
// This day count feeds every ephemeris formula in the package.
func ToDays(t time.Time) float64 {
	return ToJulian(t) - J2000
}

// FromDays is the inverse of ToDays.
func FromDays(d float64) time.Time {
	return FromJulian(d + J2000)
}

// HoursLater returns t shifted by a possibly fractional number of hours.
func HoursLater(t time.Time, h float64) time.Time {
	return fromUnixSeconds(unixSeconds(t) + h*SecondsPerDay/24)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func fromUnixSeconds(s float64) time.Time {
	whole := math.Floor(s)
	nsec := math.Round((s - whole) * 1e9)
	return time.Unix(int64(whole), int64(nsec)).UTC()
}
