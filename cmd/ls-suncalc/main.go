// Command ls-suncalc shows sun and moon positions, light phases and moon
// times for a location, as a terminal dashboard or as plain text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-suncalc/internal/config"
	"github.com/litescript/ls-suncalc/internal/logging"
	"github.com/litescript/ls-suncalc/internal/report"
	"github.com/litescript/ls-suncalc/internal/state"
	"github.com/litescript/ls-suncalc/internal/trace"
	"github.com/litescript/ls-suncalc/internal/ui"
	"github.com/litescript/ls-suncalc/internal/version"
)

const (
	defaultConfigPath = "ls-suncalc.yaml"
	minRefresh        = 1 * time.Second
	maxRefresh        = 1 * time.Hour
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// options are the parsed command line flags.
type options struct {
	configPath string
	lat, lng   float64
	at         string
	logLevel   string
	refresh    time.Duration

	summary   bool
	seasons   int
	jsonPath  string
	chart     string
	hours     int
	now       bool
	watch     time.Duration
	notify    stringList
	beep      bool
	showVer   bool
	setFlags  map[string]bool
}

// hasOutputMode reports whether an explicit output flag was given.
func (o options) hasOutputMode() bool {
	return o.summary || o.jsonPath != "" || o.chart != "" || o.now
}

func (o options) headless() bool {
	return o.hasOutputMode() || o.watch > 0 || len(o.notify) > 0
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", defaultConfigPath, "YAML config file")
	flag.Float64Var(&o.lat, "lat", 0, "Observer latitude in degrees (overrides config)")
	flag.Float64Var(&o.lng, "lng", 0, "Observer longitude in degrees (overrides config)")
	flag.StringVar(&o.at, "time", "", "Calculate for this RFC 3339 time instead of now")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.DurationVar(&o.refresh, "refresh", 0, "Dashboard refresh interval (e.g. 30s, 1m)")
	flag.BoolVar(&o.summary, "summary", false, "Print text summary instead of TUI")
	flag.IntVar(&o.seasons, "seasons", 0, "Append the next N equinoxes and solstices to the summary")
	flag.StringVar(&o.jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	flag.StringVar(&o.chart, "chart", "", "Print an hourly altitude chart for sun or moon")
	flag.IntVar(&o.hours, "hours", 24, "Hours covered by -chart")
	flag.BoolVar(&o.now, "now", false, "Single-line status")
	flag.DurationVar(&o.watch, "watch", 0, "Repeat output at interval (e.g. 5m)")
	flag.Var(&o.notify, "notify", `Log each occurrence of an event, e.g. "@sunset -30m" or a cron spec (repeatable)`)
	flag.BoolVar(&o.beep, "beep", false, "Beep on notifications and detected events (TTY only)")
	flag.BoolVar(&o.showVer, "version", false, "Print version and exit")
	flag.Parse()

	o.setFlags = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { o.setFlags[f.Name] = true })
	return o
}

func main() {
	opts := parseFlags()
	if opts.showVer {
		fmt.Println("ls-suncalc", version.Version)
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	loc, _ := cfg.TimeLocation() // checked by Validate

	logger := logging.New(logging.LevelOrDefault(cfg.LogLevel))
	cfg.Register()

	at := time.Now()
	if opts.at != "" {
		at, err = time.Parse(time.RFC3339, opts.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -time: %v\n", err)
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	obs := report.Observer{
		Name: cfg.Location.Name,
		Lat:  cfg.Location.Latitude,
		Lng:  cfg.Location.Longitude,
	}
	stateCfg := state.DefaultConfig(obs)
	stateCfg.Definitions = cfg.Definitions()
	stateCfg.RefreshInterval = clampRefresh(time.Duration(cfg.Refresh))
	stateCfg.TraceWindow = time.Duration(cfg.Trace.Window)
	stateCfg.TraceInterval = time.Duration(cfg.Trace.Interval)
	stateMgr := state.NewManager(stateCfg)

	logger.Debug("observer %s (%.4f, %.4f), %d sun time definitions",
		obs.Name, obs.Lat, obs.Lng, len(stateCfg.Definitions))

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if opts.headless() || !isTTY {
		h := &headless{
			opts:  opts,
			cfg:   cfg,
			loc:   loc,
			state: stateMgr,
			log:   logger,
			out:   os.Stdout,
			isTTY: isTTY,
		}
		if opts.at != "" {
			h.clock = func() time.Time { return at }
		}
		if err := h.run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Keep log lines off the alternate screen unless debugging.
	if logger.Level() > logging.LevelDebug {
		logger.SetOutput(io.Discard)
	}

	model := ui.New(stateMgr, loc)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the YAML file, .env and the environment,
// then flags.
func loadConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		// The default path is optional, an explicit one is not.
		if !errors.Is(err, fs.ErrNotExist) || o.setFlags["config"] {
			return cfg, err
		}
		cfg = config.Default()
	}

	lookup, err := config.EnvLookup(".env")
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if o.setFlags["lat"] {
		cfg.Location.Latitude = o.lat
		cfg.Location.Name = ""
	}
	if o.setFlags["lng"] {
		cfg.Location.Longitude = o.lng
		cfg.Location.Name = ""
	}
	if o.setFlags["log-level"] {
		cfg.LogLevel = o.logLevel
	}
	if o.setFlags["refresh"] {
		cfg.Refresh = config.Duration(o.refresh)
	}
	if o.chart != "" {
		if _, err := trace.ParseBody(o.chart); err != nil {
			return cfg, fmt.Errorf("-chart: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

func clampRefresh(d time.Duration) time.Duration {
	return max(minRefresh, min(maxRefresh, d))
}
