package report

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// Season is an equinox or solstice.
type Season struct {
	Name string
	Time time.Time // UTC, ignoring the ~1 minute difference between TT and UT
}

// SeasonsOf returns the four equinoxes and solstices of year in order.
func SeasonsOf(year int) []Season {
	return []Season{
		{"March equinox", jdeToTime(solstice.March(year))},
		{"June solstice", jdeToTime(solstice.June(year))},
		{"September equinox", jdeToTime(solstice.September(year))},
		{"December solstice", jdeToTime(solstice.December(year))},
	}
}

// NextSeasons returns the next n equinoxes and solstices after t.
func NextSeasons(t time.Time, n int) []Season {
	var out []Season
	for year := t.UTC().Year(); len(out) < n; year++ {
		for _, s := range SeasonsOf(year) {
			if s.Time.After(t) && len(out) < n {
				out = append(out, s)
			}
		}
	}
	return out
}

func jdeToTime(jde float64) time.Time {
	y, m, d := julian.JDToCalendar(jde)
	day := int(d)
	frac := d - float64(day)
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(frac * float64(24*time.Hour))).
		Truncate(time.Second)
}
