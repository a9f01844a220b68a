// Package config loads the observer and display settings for ls-suncalc.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// environment variables (optionally seeded from a .env file), then command
// line flags applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-suncalc/internal/logging"
	"github.com/litescript/ls-suncalc/suncalc"
)

// Environment variables read by ApplyEnv.
const (
	EnvLatitude  = "LS_SUNCALC_LAT"
	EnvLongitude = "LS_SUNCALC_LNG"
	EnvTimezone  = "LS_SUNCALC_TZ"
	EnvLogLevel  = "LS_SUNCALC_LOG_LEVEL"
)

var (
	ErrInvalidLatitude   = errors.New("latitude must be within [-90, 90]")
	ErrInvalidLongitude  = errors.New("longitude must be within [-180, 180]")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidDefinition = errors.New("invalid sun time definition")
)

// Duration is a time.Duration written as a Go duration string ("90s",
// "15m") in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// Location is the observer.
type Location struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Trace controls the sampled altitude curves.
type Trace struct {
	Window   Duration `yaml:"window"`   // each side of now
	Interval Duration `yaml:"interval"` // between samples
}

// SunTime is an extra twilight definition appended to the built-ins.
type SunTime struct {
	Angle float64 `yaml:"angle"`
	Rise  string  `yaml:"rise"`
	Set   string  `yaml:"set"`
}

// Config is the full application configuration.
type Config struct {
	Location Location  `yaml:"location"`
	Timezone string    `yaml:"timezone"` // IANA name, display only
	LogLevel string    `yaml:"log_level"`
	Refresh  Duration  `yaml:"refresh"`
	Trace    Trace     `yaml:"trace"`
	SunTimes []SunTime `yaml:"sun_times"`
}

// Default returns the built-in configuration: the Greenwich meridian,
// displayed in UTC.
func Default() Config {
	return Config{
		Location: Location{Name: "Greenwich", Latitude: 51.4769, Longitude: -0.0005},
		Timezone: "UTC",
		LogLevel: "info",
		Refresh:  Duration(time.Minute),
		Trace: Trace{
			Window:   Duration(12 * time.Hour),
			Interval: Duration(15 * time.Minute),
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document does not set.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// EnvLookup returns a lookup function over the process environment,
// falling back to the variables in the .env file at path. A missing file
// is not an error.
func EnvLookup(path string) (func(string) (string, bool), error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLatitude); ok && v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLatitude, err)
		}
		c.Location.Latitude = lat
	}
	if v, ok := lookup(EnvLongitude); ok && v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLongitude, err)
		}
		c.Location.Longitude = lng
	}
	if v, ok := lookup(EnvTimezone); ok && v != "" {
		c.Timezone = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the configuration. The calculation library accepts any
// coordinates; the application does not.
func (c Config) Validate() error {
	lat, lng := c.Location.Latitude, c.Location.Longitude
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: got %v", ErrInvalidLatitude, lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: got %v", ErrInvalidLongitude, lng)
	}
	if _, err := c.TimeLocation(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("refresh: %w", ErrInvalidDuration)
	}
	if c.Trace.Window <= 0 || c.Trace.Interval <= 0 {
		return fmt.Errorf("trace: %w", ErrInvalidDuration)
	}
	for i, st := range c.SunTimes {
		if st.Rise == "" || st.Set == "" {
			return fmt.Errorf("%w: sun_times[%d] needs rise and set names", ErrInvalidDefinition, i)
		}
		if st.Angle < -90 || st.Angle > 90 {
			return fmt.Errorf("%w: sun_times[%d] angle %v", ErrInvalidDefinition, i, st.Angle)
		}
	}
	return nil
}

// TimeLocation resolves Timezone for display.
func (c Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Definitions returns the built-in sun time definitions followed by the
// configured ones.
func (c Config) Definitions() []suncalc.SunTimeDefinition {
	defs := suncalc.DefaultSunTimeDefinitions()
	for _, st := range c.SunTimes {
		defs = append(defs, suncalc.SunTimeDefinition{Angle: st.Angle, RiseName: st.Rise, SetName: st.Set})
	}
	return defs
}

// Register appends the configured definitions to the process-wide
// registry used by suncalc.GetSunTimes.
func (c Config) Register() {
	for _, st := range c.SunTimes {
		suncalc.AddSunTime(st.Angle, st.Rise, st.Set)
	}
}
