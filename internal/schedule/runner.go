package schedule

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-suncalc/internal/logging"
)

// Runner runs callbacks on event schedules.
type Runner struct {
	cron *cron.Cron
	log  *logging.Logger
}

// NewRunner creates a stopped runner whose schedules are evaluated in loc.
func NewRunner(log *logging.Logger, loc *time.Location) *Runner {
	if loc == nil {
		loc = time.Local
	}
	return &Runner{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log,
	}
}

// Add registers fn to run at each activation of sched under label.
func (r *Runner) Add(label string, sched cron.Schedule, fn func(label string, at time.Time)) cron.EntryID {
	id := r.cron.Schedule(sched, cron.FuncJob(func() {
		fn(label, time.Now())
	}))
	if next := sched.Next(time.Now()); next.IsZero() {
		r.log.Warn("%s: no occurrence in the next %d days", label, searchDays)
	} else {
		r.log.Info("%s: next at %s", label, next.Local().Format(time.RFC3339))
	}
	return id
}

// Next returns the next activation of each entry.
func (r *Runner) Next() []time.Time {
	entries := r.cron.Entries()
	out := make([]time.Time, len(entries))
	for i, e := range entries {
		out[i] = e.Next
	}
	return out
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (r *Runner) Run(ctx context.Context) {
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
}
