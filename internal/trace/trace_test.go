package trace

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCompute(t *testing.T) {
	now := time.Date(2013, 3, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		body     Body
		window   time.Duration
		interval time.Duration
		want     int
	}{
		{"sun default", Sun, DefaultWindow, DefaultInterval, 97},
		{"moon two hours", Moon, 2 * time.Hour, 5 * time.Minute, 49},
		{"zero window", Sun, 0, time.Minute, 1},
		{"no interval", Sun, time.Hour, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Compute(tt.body, 50.5, 30.5, now, tt.window, tt.interval)
			if len(tr.Samples) != tt.want {
				t.Fatalf("len(Samples) = %d, want %d", len(tr.Samples), tt.want)
			}
			if !tr.WindowStart.Equal(now.Add(-tt.window)) || !tr.WindowEnd.Equal(now.Add(tt.window)) {
				t.Errorf("window = [%s, %s]", tr.WindowStart, tr.WindowEnd)
			}
			for i, s := range tr.Samples {
				if s.Altitude < -90 || s.Altitude > 90 || math.IsNaN(s.Altitude) {
					t.Errorf("sample[%d] altitude = %f out of range", i, s.Altitude)
				}
				if i > 0 && s.Time.Sub(tr.Samples[i-1].Time) != tt.interval {
					t.Errorf("sample[%d] spacing = %s", i, s.Time.Sub(tr.Samples[i-1].Time))
				}
			}
		})
	}
}

func TestPeakNearSolarNoon(t *testing.T) {
	now := time.Date(2013, 3, 5, 10, 0, 0, 0, time.UTC)
	tr := Compute(Sun, 50.5, 30.5, now, 6*time.Hour, 5*time.Minute)

	peak := tr.Peak()
	if peak == nil {
		t.Fatal("Peak() = nil")
	}
	// Solar noon is 10:10:57 UTC.
	noon := time.Date(2013, 3, 5, 10, 10, 57, 0, time.UTC)
	if d := peak.Time.Sub(noon).Abs(); d > 5*time.Minute {
		t.Errorf("peak at %s, want within 5m of %s", peak.Time, noon)
	}
}

func TestCurrent(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tr := Compute(Moon, 40, -74, now, time.Hour, 10*time.Minute)

	cur := tr.Current(now.Add(12 * time.Minute))
	if cur == nil {
		t.Fatal("Current() = nil")
	}
	if want := now.Add(10 * time.Minute); !cur.Time.Equal(want) {
		t.Errorf("Current().Time = %s, want %s", cur.Time, want)
	}

	empty := &Trace{}
	if empty.Current(now) != nil || empty.Peak() != nil {
		t.Error("empty trace returned a sample")
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		in      string
		want    Body
		wantErr bool
	}{
		{"sun", Sun, false},
		{"Moon", Moon, false},
		{"mars", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseBody(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseBody(%q) error = %v", tt.in, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownBody) {
			t.Errorf("ParseBody(%q) error = %v, want ErrUnknownBody", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBody(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Sun.String() != "sun" || Moon.String() != "moon" {
		t.Error("String() mismatch")
	}
}
