// Package schedule turns sun and moon events into cron schedules.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-suncalc/suncalc"
)

// Moon event names accepted alongside the sun time names.
const (
	Moonrise = "moonrise"
	Moonset  = "moonset"
)

// searchDays bounds how far ahead Next looks before giving up.
const searchDays = 7

// ErrUnknownEvent is returned for names that are neither a sun time nor a
// moon event.
var ErrUnknownEvent = errors.New("unknown event")

// ParseEvent checks name against the moon events, the transit events and
// the rise and set names of defs. Nil defs means the process-wide
// definitions.
func ParseEvent(name string, defs []suncalc.SunTimeDefinition) (string, error) {
	if defs == nil {
		defs = suncalc.SunTimeDefinitions()
	}
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case Moonrise, Moonset, suncalc.SolarNoon, suncalc.Nadir:
		return name, nil
	}
	for _, d := range defs {
		if name == d.RiseName || name == d.SetName {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// EventSchedule fires at each occurrence of Event, shifted by Offset.
//
// This implements robfig/cron.Schedule.
type EventSchedule struct {
	Event  string
	Lat    float64
	Lng    float64
	Offset time.Duration
	// Defs resolves sun event names; nil means the process-wide
	// definitions (see suncalc.AddSunTime).
	Defs []suncalc.SunTimeDefinition
}

// Next returns the first occurrence after now, or the zero time if the
// event does not happen within a week, which cron treats as never.
func (s EventSchedule) Next(now time.Time) time.Time {
	var best time.Time
	consider := func(t *time.Time) {
		if t == nil {
			return
		}
		at := t.Add(s.Offset)
		if at.After(now) && (best.IsZero() || at.Before(best)) {
			best = at
		}
	}

	switch s.Event {
	case Moonrise, Moonset:
		y, m, d := now.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		for i := -1; i <= searchDays && best.IsZero(); i++ {
			mt := suncalc.GetMoonTimes(day.AddDate(0, 0, i), s.Lat, s.Lng)
			if s.Event == Moonrise {
				consider(mt.Rise)
			} else {
				consider(mt.Set)
			}
		}
	default:
		defs := s.Defs
		if defs == nil {
			defs = suncalc.SunTimeDefinitions()
		}
		for i := -1; i <= searchDays && best.IsZero(); i++ {
			st := suncalc.GetSunTimesFor(now.AddDate(0, 0, i), s.Lat, s.Lng, defs)
			if at, ok := st.Time(s.Event); ok {
				consider(&at)
			}
		}
	}
	return best
}

// Parse builds a schedule from spec. "@<event> [offset]" selects an
// EventSchedule, for example "@sunset -30m" or "@moonrise"; anything else
// is handed to cron's standard parser.
func Parse(spec string, lat, lng float64, defs []suncalc.SunTimeDefinition) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) > 0 && strings.HasPrefix(fields[0], "@") {
		if name, err := ParseEvent(strings.TrimPrefix(fields[0], "@"), defs); err == nil {
			s := EventSchedule{Event: name, Lat: lat, Lng: lng, Defs: defs}
			switch len(fields) {
			case 1:
			case 2:
				off, err := time.ParseDuration(fields[1])
				if err != nil {
					return nil, fmt.Errorf("parse offset: %w", err)
				}
				s.Offset = off
			default:
				return nil, fmt.Errorf("parse %q: too many fields", spec)
			}
			return s, nil
		}
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return sched, nil
}
