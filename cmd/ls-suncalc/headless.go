package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/litescript/ls-suncalc/internal/config"
	"github.com/litescript/ls-suncalc/internal/logging"
	"github.com/litescript/ls-suncalc/internal/report"
	"github.com/litescript/ls-suncalc/internal/schedule"
	"github.com/litescript/ls-suncalc/internal/state"
	"github.com/litescript/ls-suncalc/internal/trace"
)

// headless handles all output modes that do not start the TUI.
type headless struct {
	opts  options
	cfg   config.Config
	loc   *time.Location
	state *state.Manager
	log   *logging.Logger
	isTTY bool
	clock func() time.Time // nil means time.Now

	mu         sync.Mutex
	out        io.Writer
	lastEvents int
}

func (h *headless) now() time.Time {
	if h.clock != nil {
		return h.clock()
	}
	return time.Now()
}

func (h *headless) run(ctx context.Context) error {
	if len(h.opts.notify) > 0 {
		return h.runNotify(ctx)
	}

	if h.opts.watch == 0 {
		return h.outputOnce()
	}

	if err := h.outputOnce(); err != nil {
		h.log.Error("%v", err)
	}

	ticker := time.NewTicker(h.opts.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !h.opts.now {
				fmt.Fprintln(h.out) // blank line between outputs
			}
			if err := h.outputOnce(); err != nil {
				h.log.Error("%v", err)
			}
		}
	}
}

func (h *headless) outputOnce() error {
	at := h.now()
	h.state.Update(at)
	snap := h.state.Snapshot()
	rep := snap.Report
	obs := snap.Observer

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.now {
		h.writeNowLine(snap, at)
	}

	if h.opts.jsonPath != "" {
		if err := writeJSON(rep, h.opts.jsonPath, h.out); err != nil {
			return err
		}
	}

	if h.opts.summary || !h.opts.hasOutputMode() {
		report.WriteSummary(h.out, rep, h.loc, h.opts.seasons)
	}

	if h.opts.chart != "" {
		body, err := trace.ParseBody(h.opts.chart)
		if err != nil {
			return err
		}
		if h.opts.summary {
			fmt.Fprintln(h.out)
		}
		start := at.Truncate(time.Hour)
		report.WriteAltitudeChart(h.out, body, obs.Lat, obs.Lng, start, h.opts.hours, h.loc)
	}

	h.reportEvents(snap.Events)
	return nil
}

// writeNowLine prints a single status line.
func (h *headless) writeNowLine(snap state.Snapshot, at time.Time) {
	rep := snap.Report
	line := fmt.Sprintf("%s  sun %.1f° %s  moon %.1f° %s %.0f%% %s",
		at.In(h.loc).Format("15:04"),
		rep.Sun.Altitude.Deg, report.Compass(rep.Sun.Azimuth.Deg),
		rep.Moon.Altitude.Deg, report.Compass(rep.Moon.Azimuth.Deg),
		rep.Moon.Fraction*100, rep.Moon.PhaseName)
	if ev, ok := h.state.NextSunEvent(at); ok {
		line += fmt.Sprintf("  next %s %s", ev.Name, ev.Time.In(h.loc).Format("15:04"))
	}
	fmt.Fprintln(h.out, line)
}

// reportEvents logs crossings detected since the previous output.
func (h *headless) reportEvents(events []state.Event) {
	if len(events) < h.lastEvents {
		h.lastEvents = 0 // ring buffer wrapped
	}
	fresh := events[h.lastEvents:]
	h.lastEvents = len(events)

	for _, e := range fresh {
		h.log.Info("%s at %s (%s)", e.Type, e.Timestamp.In(h.loc).Format("15:04:05"), e.Detail)
	}
	if len(fresh) > 0 {
		h.bell()
	}
}

func (h *headless) bell() {
	if h.opts.beep && h.isTTY {
		fmt.Fprint(h.out, "\a")
	}
}

// runNotify prints a line at every occurrence of each -notify schedule
// until ctx is done.
func (h *headless) runNotify(ctx context.Context) error {
	obs := h.state.Observer()
	runner := schedule.NewRunner(h.log.WithComponent("notify"), h.loc)

	for _, spec := range h.opts.notify {
		sched, err := schedule.Parse(spec, obs.Lat, obs.Lng, nil) // definitions registered by main
		if err != nil {
			return fmt.Errorf("-notify %q: %w", spec, err)
		}
		runner.Add(spec, sched, h.notify)
	}

	runner.Run(ctx)
	return nil
}

func (h *headless) notify(label string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.out, "%s  %s\n", at.In(h.loc).Format(time.RFC3339), label)
	h.bell()
}

func writeJSON(rep *report.Snapshot, path string, stdout io.Writer) error {
	if path == "-" {
		if err := rep.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := rep.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
