package suncalc

import (
	"sync"
)

// Event names reported by GetSunTimes. The two transit events are always
// present; the others come from DefaultSunTimeDefinitions.
const (
	SolarNoon       = "solar_noon"
	Nadir           = "nadir"
	Sunrise         = "sunrise"
	Sunset          = "sunset"
	SunriseEnd      = "sunrise_end"
	SunsetStart     = "sunset_start"
	Dawn            = "dawn"
	Dusk            = "dusk"
	NauticalDawn    = "nautical_dawn"
	NauticalDusk    = "nautical_dusk"
	NightEnd        = "night_end"
	NightStart      = "night_start"
	GoldenHourEnd   = "golden_hour_end"
	GoldenHourStart = "golden_hour_start"
)

// SunTimeDefinition names the morning and evening events at which the
// sun's centre crosses Angle degrees of altitude.
type SunTimeDefinition struct {
	Angle    float64 // degrees; negative is below the horizon
	RiseName string
	SetName  string
}

// DefaultSunTimeDefinitions returns the six built-in definitions in their
// canonical order.
//
// The golden hour pair keeps the historical naming: the morning event is
// golden_hour_end and the evening one golden_hour_start.
func DefaultSunTimeDefinitions() []SunTimeDefinition {
	return []SunTimeDefinition{
		{Angle: -0.833, RiseName: Sunrise, SetName: Sunset},
		{Angle: -0.3, RiseName: SunriseEnd, SetName: SunsetStart},
		{Angle: -6, RiseName: Dawn, SetName: Dusk},
		{Angle: -12, RiseName: NauticalDawn, SetName: NauticalDusk},
		{Angle: -18, RiseName: NightEnd, SetName: NightStart},
		{Angle: 6, RiseName: GoldenHourEnd, SetName: GoldenHourStart},
	}
}

// Registry is an append-only list of sun time definitions that is safe for
// concurrent use. Definitions are never removed or reordered.
type Registry struct {
	mu   sync.RWMutex
	defs []SunTimeDefinition
}

// NewRegistry creates a registry seeded with defs.
func NewRegistry(defs ...SunTimeDefinition) *Registry {
	r := &Registry{defs: make([]SunTimeDefinition, len(defs))}
	copy(r.defs, defs)
	return r
}

// Add appends a definition. Results computed before the call are not
// affected.
func (r *Registry) Add(angle float64, riseName, setName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, SunTimeDefinition{Angle: angle, RiseName: riseName, SetName: setName})
}

// Definitions returns a copy of the current definitions.
func (r *Registry) Definitions() []SunTimeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SunTimeDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// defaultRegistry backs GetSunTimes and AddSunTime.
var defaultRegistry = NewRegistry(DefaultSunTimeDefinitions()...)

// AddSunTime appends a definition to the process-wide registry used by
// GetSunTimes.
func AddSunTime(angle float64, riseName, setName string) {
	defaultRegistry.Add(angle, riseName, setName)
}

// SunTimeDefinitions returns a copy of the process-wide definitions.
func SunTimeDefinitions() []SunTimeDefinition {
	return defaultRegistry.Definitions()
}
