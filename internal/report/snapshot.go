// Package report renders calculation results for the headless CLI modes:
// JSON snapshots, text summaries and altitude charts.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/soniakeys/unit"

	"github.com/litescript/ls-suncalc/suncalc"
)

// Observer is the location a snapshot was computed for.
type Observer struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"latitude"`
	Lng  float64 `json:"longitude"`
}

// Angle carries an angle in both units.
type Angle struct {
	Rad float64 `json:"rad"`
	Deg float64 `json:"deg"`
}

func angle(rad float64) Angle {
	return Angle{Rad: rad, Deg: unit.Angle(rad).Deg()}
}

// EventTime is a named instant. Time is null for events that do not occur.
type EventTime struct {
	Name string     `json:"name"`
	Time *time.Time `json:"time"`
}

// SunReport is the sun half of a snapshot.
type SunReport struct {
	Azimuth  Angle       `json:"azimuth"`
	Altitude Angle       `json:"altitude"`
	Times    []EventTime `json:"times"`
}

// MoonReport is the moon half of a snapshot.
type MoonReport struct {
	Azimuth          Angle      `json:"azimuth"`
	Altitude         Angle      `json:"altitude"`
	DistanceKm       float64    `json:"distance_km"`
	ParallacticAngle Angle      `json:"parallactic_angle"`
	Fraction         float64    `json:"fraction"`
	Phase            float64    `json:"phase"`
	PhaseName        string     `json:"phase_name"`
	BrightLimbAngle  Angle      `json:"bright_limb_angle"`
	Rise             *time.Time `json:"rise"`
	Set              *time.Time `json:"set"`
	LunarNoon        *time.Time `json:"lunar_noon"`
	Nadir            *time.Time `json:"nadir"`
	AlwaysUp         bool       `json:"always_up"`
	AlwaysDown       bool       `json:"always_down"`
}

// Snapshot is every calculation for one instant and observer.
type Snapshot struct {
	Observer Observer   `json:"observer"`
	Time     time.Time  `json:"time"`
	Sun      SunReport  `json:"sun"`
	Moon     MoonReport `json:"moon"`
}

// BuildSnapshot runs all calculations for obs at t. Sun times use defs;
// moon times cover the UTC day containing t.
func BuildSnapshot(obs Observer, t time.Time, defs []suncalc.SunTimeDefinition) *Snapshot {
	t = t.UTC()
	sp := suncalc.GetSunPosition(t, obs.Lat, obs.Lng)
	st := suncalc.GetSunTimesFor(t, obs.Lat, obs.Lng, defs)
	mp := suncalc.GetMoonPosition(t, obs.Lat, obs.Lng)
	mt := suncalc.GetMoonTimes(t, obs.Lat, obs.Lng)
	ill := suncalc.GetMoonIllumination(t)

	snap := &Snapshot{
		Observer: obs,
		Time:     t,
		Sun: SunReport{
			Azimuth:  angle(sp.Azimuth),
			Altitude: angle(sp.Altitude),
		},
		Moon: MoonReport{
			Azimuth:          angle(mp.Azimuth),
			Altitude:         angle(mp.Altitude),
			DistanceKm:       mp.Distance,
			ParallacticAngle: angle(mp.ParallacticAngle),
			Fraction:         ill.Fraction,
			Phase:            ill.Phase,
			PhaseName:        suncalc.PhaseName(ill.Phase),
			BrightLimbAngle:  angle(ill.Angle),
			Rise:             mt.Rise,
			Set:              mt.Set,
			LunarNoon:        mt.LunarNoon,
			Nadir:            mt.Nadir,
			AlwaysUp:         mt.AlwaysUp,
			AlwaysDown:       mt.AlwaysDown,
		},
	}

	for _, name := range st.Names() {
		ev := EventTime{Name: name}
		if at, ok := st.Time(name); ok {
			ev.Time = &at
		}
		snap.Sun.Times = append(snap.Sun.Times, ev)
	}
	return snap
}

// SunTime looks up a sun event by name.
func (s *Snapshot) SunTime(name string) (time.Time, bool) {
	for _, ev := range s.Sun.Times {
		if ev.Name == name && ev.Time != nil {
			return *ev.Time, true
		}
	}
	return time.Time{}, false
}

// WriteJSON writes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
