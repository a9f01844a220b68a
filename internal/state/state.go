// Package state provides thread-safe state management for the application.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-suncalc/internal/report"
	"github.com/litescript/ls-suncalc/internal/trace"
	"github.com/litescript/ls-suncalc/suncalc"
)

// EventType represents a detected crossing.
type EventType string

const (
	EventSunrise  EventType = "SUNRISE"
	EventSunset   EventType = "SUNSET"
	EventMoonrise EventType = "MOONRISE"
	EventMoonset  EventType = "MOONSET"
	EventNewMoon  EventType = "NEW_MOON"
	EventFullMoon EventType = "FULL_MOON"
)

// Horizons used for crossing detection, in degrees. They match the
// sunrise definition and the moon rise correction used by suncalc.
const (
	sunHorizonDeg  = -0.833
	moonHorizonDeg = 0.133
)

// Event is a crossing seen between two consecutive updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// HistoryEntry is one update's headline values.
type HistoryEntry struct {
	Timestamp   time.Time
	SunAltDeg   float64
	MoonAltDeg  float64
	MoonPhase   float64
	Illuminated float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	observer report.Observer
	defs     []suncalc.SunTimeDefinition

	// Current state
	current    *report.Snapshot
	sunTrace   *trace.Trace
	moonTrace  *trace.Trace
	lastUpdate time.Time

	// History ring, oldest first
	history       []HistoryEntry
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
	traceWindow     time.Duration
	traceInterval   time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	Observer        report.Observer
	Definitions     []suncalc.SunTimeDefinition
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
	TraceWindow     time.Duration
	TraceInterval   time.Duration
}

// DefaultConfig returns the default configuration for obs.
func DefaultConfig(obs report.Observer) Config {
	return Config{
		Observer:        obs,
		Definitions:     suncalc.DefaultSunTimeDefinitions(),
		MaxHistoryLen:   120, // two hours at one update per minute
		MaxEvents:       50,
		RefreshInterval: time.Minute,
		TraceWindow:     trace.DefaultWindow,
		TraceInterval:   trace.DefaultInterval,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	defs := cfg.Definitions
	if defs == nil {
		defs = suncalc.DefaultSunTimeDefinitions()
	}
	return &Manager{
		observer:        cfg.Observer,
		defs:            defs,
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		traceWindow:     cfg.TraceWindow,
		traceInterval:   cfg.TraceInterval,
	}
}

// Update recomputes everything for now and records crossings since the
// previous update.
func (m *Manager) Update(now time.Time) {
	m.mu.RLock()
	obs, defs := m.observer, m.defs
	window, interval := m.traceWindow, m.traceInterval
	m.mu.RUnlock()

	snap := report.BuildSnapshot(obs, now, defs)
	sunTrace := trace.Compute(trace.Sun, obs.Lat, obs.Lng, now, window, interval)
	moonTrace := trace.Compute(trace.Moon, obs.Lat, obs.Lng, now, window, interval)

	m.mu.Lock()
	defer m.mu.Unlock()

	// The observer may have moved while we computed.
	if m.observer != obs {
		return
	}

	entry := HistoryEntry{
		Timestamp:   snap.Time,
		SunAltDeg:   snap.Sun.Altitude.Deg,
		MoonAltDeg:  snap.Moon.Altitude.Deg,
		MoonPhase:   snap.Moon.Phase,
		Illuminated: snap.Moon.Fraction,
	}
	if n := len(m.history); n > 0 {
		m.detectEvents(m.history[n-1], entry)
	}

	m.current = snap
	m.sunTrace = sunTrace
	m.moonTrace = moonTrace
	m.lastUpdate = now

	m.history = append(m.history, entry)
	if m.maxHistoryLen > 0 && len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}
}

// detectEvents compares two consecutive entries and logs crossings.
func (m *Manager) detectEvents(prev, cur HistoryEntry) {
	if !cur.Timestamp.After(prev.Timestamp) {
		return
	}

	switch {
	case prev.SunAltDeg < sunHorizonDeg && cur.SunAltDeg >= sunHorizonDeg:
		m.addEvent(Event{Type: EventSunrise, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("altitude %.2f°", cur.SunAltDeg)})
	case prev.SunAltDeg >= sunHorizonDeg && cur.SunAltDeg < sunHorizonDeg:
		m.addEvent(Event{Type: EventSunset, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("altitude %.2f°", cur.SunAltDeg)})
	}

	switch {
	case prev.MoonAltDeg < moonHorizonDeg && cur.MoonAltDeg >= moonHorizonDeg:
		m.addEvent(Event{Type: EventMoonrise, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("altitude %.2f°", cur.MoonAltDeg)})
	case prev.MoonAltDeg >= moonHorizonDeg && cur.MoonAltDeg < moonHorizonDeg:
		m.addEvent(Event{Type: EventMoonset, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("altitude %.2f°", cur.MoonAltDeg)})
	}

	// Phase runs 0 to 1 and wraps at new moon. It is not monotonic near
	// new and full moon, so only a wrap or a climb through 0.5 counts.
	switch {
	case prev.MoonPhase > 0.75 && cur.MoonPhase < 0.25:
		m.addEvent(Event{Type: EventNewMoon, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("%.1f%% lit", cur.Illuminated*100)})
	case prev.MoonPhase > 0.25 && prev.MoonPhase < 0.5 && cur.MoonPhase >= 0.5 && cur.MoonPhase < 0.75:
		m.addEvent(Event{Type: EventFullMoon, Timestamp: cur.Timestamp, Detail: fmt.Sprintf("%.1f%% lit", cur.Illuminated*100)})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Observer   report.Observer
	Report     *report.Snapshot
	SunTrace   *trace.Trace
	MoonTrace  *trace.Trace
	LastUpdate time.Time
	Events     []Event
}

// Snapshot returns a consistent snapshot of current state. The report and
// traces are replaced, never mutated, by Update and may be shared.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Observer:   m.observer,
		Report:     m.current,
		SunTrace:   m.sunTrace,
		MoonTrace:  m.moonTrace,
		LastUpdate: m.lastUpdate,
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns a copy of the history buffer, oldest first.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// SetObserver moves the observer. History is cleared so that no crossing
// is reported across the move.
func (m *Manager) SetObserver(obs report.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obs == m.observer {
		return
	}
	m.observer = obs
	m.history = nil
	m.current = nil
	m.sunTrace = nil
	m.moonTrace = nil
}

// Observer returns the current observer.
func (m *Manager) Observer() report.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

// NextSunEvent returns the next named sun event after now from the current
// report, skipping events that do not occur.
func (m *Manager) NextSunEvent(now time.Time) (report.EventTime, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return report.EventTime{}, false
	}

	var best report.EventTime
	for _, ev := range m.current.Sun.Times {
		if ev.Time == nil || !ev.Time.After(now) {
			continue
		}
		if best.Time == nil || ev.Time.Before(*best.Time) {
			best = ev
		}
	}
	return best, best.Time != nil
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once Update has run for the current observer.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
