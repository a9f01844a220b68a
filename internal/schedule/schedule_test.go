package schedule

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-suncalc/internal/logging"
	"github.com/litescript/ls-suncalc/suncalc"
)

func TestEventScheduleNext(t *testing.T) {
	tests := []struct {
		name   string
		event  string
		lat    float64
		offset time.Duration
		now    time.Time
		want   string // empty for never
	}{
		{"sunrise same day", suncalc.Sunrise, 50.5, 0, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC), "2013-03-05T04:34:56Z"},
		{"sunrise next day", suncalc.Sunrise, 50.5, 0, time.Date(2013, 3, 5, 5, 0, 0, 0, time.UTC), "2013-03-06T04:32:47Z"},
		{"sunrise with offset", suncalc.Sunrise, 50.5, -30 * time.Minute, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC), "2013-03-05T04:04:56Z"},
		{"solar noon", suncalc.SolarNoon, 50.5, 0, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC), "2013-03-05T10:10:57Z"},
		{"moonrise", Moonrise, 50.5, 0, time.Date(2013, 3, 3, 23, 0, 0, 0, time.UTC), "2013-03-04T23:54:29Z"},
		{"moonset next day", Moonset, 50.5, 0, time.Date(2013, 3, 4, 8, 0, 0, 0, time.UTC), "2013-03-05T08:44:40Z"},
		{"polar day", suncalc.Sunrise, 80, 0, time.Date(2013, 6, 21, 0, 0, 0, 0, time.UTC), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := EventSchedule{Event: tt.event, Lat: tt.lat, Lng: 30.5, Offset: tt.offset}
			got := s.Next(tt.now)

			if tt.want == "" {
				if !got.IsZero() {
					t.Errorf("Next() = %s, want zero", got)
				}
				return
			}
			want, err := time.Parse(time.RFC3339, tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if got.Unix() != want.Unix() {
				t.Errorf("Next() = %s, want %s", got.Format(time.RFC3339Nano), tt.want)
			}
			if !got.After(tt.now) {
				t.Errorf("Next() = %s is not after %s", got, tt.now)
			}
		})
	}
}

func TestEventScheduleCustomDefinition(t *testing.T) {
	defs := append(suncalc.DefaultSunTimeDefinitions(), suncalc.SunTimeDefinition{Angle: -9, RiseName: "blue_hour_start", SetName: "blue_hour_end"})
	s := EventSchedule{Event: "blue_hour_end", Lat: 50.5, Lng: 30.5, Defs: defs}

	got := s.Next(time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC))
	if got.Format(time.RFC3339) != "2013-03-05T16:38:28Z" {
		t.Errorf("Next() = %s, want 2013-03-05T16:38:28Z", got.Format(time.RFC3339))
	}

	// Without the definition the name never occurs.
	s.Defs = nil
	if got := s.Next(time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)); !got.IsZero() {
		t.Errorf("Next() = %s for an unknown name, want zero", got)
	}
}

func TestParseUsesRegisteredDefinitions(t *testing.T) {
	if _, err := Parse("@violet_end", 50.5, 30.5, nil); err == nil {
		t.Fatal("violet_end should not parse before it is registered")
	}

	suncalc.AddSunTime(-9, "violet_start", "violet_end")

	sched, err := Parse("@violet_end", 50.5, 30.5, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := sched.Next(time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC))
	if got.Format(time.RFC3339) != "2013-03-05T16:38:28Z" {
		t.Errorf("Next() = %s, want 2013-03-05T16:38:28Z", got.Format(time.RFC3339))
	}
}

func TestParseEvent(t *testing.T) {
	defs := suncalc.DefaultSunTimeDefinitions()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"sunrise", "sunrise", false},
		{" Golden_Hour_Start ", "golden_hour_start", false},
		{"solar_noon", "solar_noon", false},
		{"MOONSET", "moonset", false},
		{"teatime", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEvent(tt.in, defs)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseEvent(%q) error = %v", tt.in, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownEvent) {
			t.Errorf("ParseEvent(%q) error = %v, want ErrUnknownEvent", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEvent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	defs := suncalc.DefaultSunTimeDefinitions()
	now := time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		spec    string
		want    string
		wantErr bool
	}{
		{"@sunset", "2013-03-05T15:46:57Z", false},
		{"@sunset 30m", "2013-03-05T16:16:57Z", false},
		{"@dawn -1h", "2013-03-05T03:02:17Z", false},
		{"@every 1h", "2013-03-05T01:00:00Z", false},
		{"30 6 * * *", "2013-03-05T06:30:00Z", false},
		{"@sunset soon", "", true},
		{"@sunset 1m 2m", "", true},
		{"@teatime", "", true},
		{"not a schedule", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			sched, err := Parse(tt.spec, 50.5, 30.5, defs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := sched.Next(now).UTC().Format(time.RFC3339); got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunner(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelInfo)
	log.SetOutput(&buf)

	r := NewRunner(log, time.UTC)
	r.Add("sunset", EventSchedule{Event: suncalc.Sunset, Lat: 50.5, Lng: 30.5}, func(string, time.Time) {})
	r.Add("polar sunrise", EventSchedule{Event: suncalc.Sunrise, Lat: 89.9, Lng: 0}, func(string, time.Time) {})

	out := buf.String()
	if !strings.Contains(out, "sunset: next at") {
		t.Errorf("missing next-occurrence log line:\n%s", out)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if n := len(r.Next()); n != 2 {
		t.Errorf("len(Next()) = %d, want 2", n)
	}
}
