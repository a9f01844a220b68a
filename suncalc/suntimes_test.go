package suncalc

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

var (
	refDate = time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC)
	refLat  = 50.5
	refLng  = 30.5
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tm
}

func TestGetSunPosition(t *testing.T) {
	pos := GetSunPosition(refDate, refLat, refLng)

	if math.Abs(pos.Azimuth-(-2.5003175907168385)) > 1e-9 {
		t.Errorf("Azimuth = %.16f, want -2.5003175907168385", pos.Azimuth)
	}
	if math.Abs(pos.Altitude-(-0.7000406838781611)) > 1e-9 {
		t.Errorf("Altitude = %.16f, want -0.7000406838781611", pos.Altitude)
	}
}

func TestGetSunTimes(t *testing.T) {
	expected := map[string]string{
		SolarNoon:       "2013-03-05T10:10:57Z",
		Nadir:           "2013-03-04T22:10:57Z",
		Sunrise:         "2013-03-05T04:34:56Z",
		Sunset:          "2013-03-05T15:46:57Z",
		SunriseEnd:      "2013-03-05T04:38:19Z",
		SunsetStart:     "2013-03-05T15:43:34Z",
		Dawn:            "2013-03-05T04:02:17Z",
		Dusk:            "2013-03-05T16:19:36Z",
		NauticalDawn:    "2013-03-05T03:24:31Z",
		NauticalDusk:    "2013-03-05T16:57:22Z",
		NightEnd:        "2013-03-05T02:46:17Z",
		NightStart:      "2013-03-05T17:35:36Z",
		GoldenHourEnd:   "2013-03-05T05:19:01Z",
		GoldenHourStart: "2013-03-05T15:02:52Z",
	}

	times := GetSunTimesFor(refDate, refLat, refLng, DefaultSunTimeDefinitions())
	if times.Len() != len(expected) {
		t.Fatalf("Len() = %d, want %d", times.Len(), len(expected))
	}

	for _, name := range times.Names() {
		t.Run(name, func(t *testing.T) {
			want, ok := expected[name]
			if !ok {
				t.Fatalf("unexpected event %q", name)
			}
			got, ok := times.Time(name)
			if !ok {
				t.Fatalf("Time(%q) not found", name)
			}
			if got.Unix() != mustParse(t, want).Unix() {
				t.Errorf("Time(%q) = %s, want %s", name, got.Format(time.RFC3339Nano), want)
			}
		})
	}
}

func TestGetSunTimesEventOrder(t *testing.T) {
	times := GetSunTimesFor(refDate, refLat, refLng, DefaultSunTimeDefinitions())
	want := []string{
		SolarNoon, Nadir,
		Sunrise, Sunset,
		SunriseEnd, SunsetStart,
		Dawn, Dusk,
		NauticalDawn, NauticalDusk,
		NightEnd, NightStart,
		GoldenHourEnd, GoldenHourStart,
	}
	got := times.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for i, e := range times.Events {
		if e.Rising != (i%2 == 0) {
			t.Errorf("event %q Rising = %v", e.Name, e.Rising)
		}
	}
}

func TestGetSunTimesMonotonic(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		lat  float64
		lng  float64
	}{
		{"Kyiv spring", refDate, 50.5, 30.5},
		{"Stockholm summer", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 59.3345, 18.0662},
		{"Quito equinox", time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC), -0.18, -78.47},
		{"Sydney winter", time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), -33.87, 151.21},
		{"Los Angeles winter", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 34.05, -118.24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times := GetSunTimesFor(tt.date, tt.lat, tt.lng, DefaultSunTimeDefinitions())
			rise, ok := times.Time(Sunrise)
			if !ok {
				t.Fatal("no sunrise")
			}
			set, ok := times.Time(Sunset)
			if !ok {
				t.Fatal("no sunset")
			}
			if !(times.Nadir.Before(rise) && rise.Before(times.SolarNoon) && times.SolarNoon.Before(set)) {
				t.Errorf("want nadir < sunrise < noon < sunset, got %s %s %s %s",
					times.Nadir, rise, times.SolarNoon, set)
			}
			if got := times.SolarNoon.Sub(times.Nadir); got.Round(time.Millisecond) != 12*time.Hour {
				t.Errorf("noon - nadir = %s, want 12h", got)
			}
			// Deeper twilight starts earlier. Nautical twilight may last all
			// night at high latitudes in summer.
			dawn, _ := times.Time(Dawn)
			nautical, ok := times.Time(NauticalDawn)
			if !ok {
				return
			}
			if !nautical.Before(dawn) || !dawn.Before(rise) {
				t.Errorf("want nautical dawn < dawn < sunrise, got %s %s %s", nautical, dawn, rise)
			}
		})
	}
}

func TestGetSunTimesMatchesGoSunrise(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		lat  float64
		lng  float64
	}{
		{"Kyiv", time.Date(2013, 3, 5, 12, 0, 0, 0, time.UTC), 50.5, 30.5},
		{"Cupertino", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 37.3229978, -122.0321823},
		{"Stockholm", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 59.3345, 18.0662},
		{"Cape Town", time.Date(2024, 12, 10, 12, 0, 0, 0, time.UTC), -33.92, 18.42},
	}

	const tol = 5 * time.Minute

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantRise, wantSet := sunrise.SunriseSunset(tt.lat, tt.lng, tt.date.Year(), tt.date.Month(), tt.date.Day())
			times := GetSunTimesFor(tt.date, tt.lat, tt.lng, DefaultSunTimeDefinitions())

			gotRise, _ := times.Time(Sunrise)
			gotSet, _ := times.Time(Sunset)
			if d := gotRise.Sub(wantRise); d.Abs() > tol {
				t.Errorf("sunrise = %s, go-sunrise = %s (off by %s)", gotRise, wantRise, d)
			}
			if d := gotSet.Sub(wantSet); d.Abs() > tol {
				t.Errorf("sunset = %s, go-sunrise = %s (off by %s)", gotSet, wantSet, d)
			}
		})
	}
}

func TestGetSunTimesPolar(t *testing.T) {
	t.Run("Polar day", func(t *testing.T) {
		times := GetSunTimesFor(time.Date(2013, 6, 21, 0, 0, 0, 0, time.UTC), 80, 0, DefaultSunTimeDefinitions())
		for _, e := range times.Events {
			if e.Time != nil {
				t.Errorf("%s = %s, want absent", e.Name, e.Time)
			}
			if _, ok := times.Time(e.Name); ok {
				t.Errorf("Time(%q) reported found", e.Name)
			}
		}
		if want := mustParse(t, "2013-06-20T12:02:52Z"); times.SolarNoon.Unix() != want.Unix() {
			t.Errorf("SolarNoon = %s, want %s", times.SolarNoon, want)
		}
	})

	t.Run("Polar night with civil twilight", func(t *testing.T) {
		times := GetSunTimesFor(time.Date(2013, 12, 21, 0, 0, 0, 0, time.UTC), 70, 20, DefaultSunTimeDefinitions())
		for _, name := range []string{Sunrise, Sunset, SunriseEnd, SunsetStart, GoldenHourEnd, GoldenHourStart} {
			if _, ok := times.Time(name); ok {
				t.Errorf("Time(%q) found during polar night", name)
			}
		}
		wants := map[string]string{
			Dawn:         "2013-12-21T08:35:47Z",
			Dusk:         "2013-12-21T12:43:00Z",
			NauticalDawn: "2013-12-21T06:47:02Z",
			NightStart:   "2013-12-21T15:51:45Z",
		}
		for name, want := range wants {
			got, ok := times.Time(name)
			if !ok {
				t.Errorf("Time(%q) not found", name)
				continue
			}
			if got.Unix() != mustParse(t, want).Unix() {
				t.Errorf("Time(%q) = %s, want %s", name, got, want)
			}
		}
	})
}

func TestGetSunTimesForCustomDefinition(t *testing.T) {
	defs := append(DefaultSunTimeDefinitions(), SunTimeDefinition{Angle: -9, RiseName: "blue_hour_start", SetName: "blue_hour_end"})
	times := GetSunTimesFor(refDate, refLat, refLng, defs)

	if times.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", times.Len())
	}
	for name, want := range map[string]string{
		"blue_hour_start": "2013-03-05T03:43:25Z",
		"blue_hour_end":   "2013-03-05T16:38:28Z",
	} {
		got, ok := times.Time(name)
		if !ok {
			t.Fatalf("Time(%q) not found", name)
		}
		if got.Unix() != mustParse(t, want).Unix() {
			t.Errorf("Time(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestGetSunTimesForNoDefinitions(t *testing.T) {
	times := GetSunTimesFor(refDate, refLat, refLng, nil)
	if len(times.Events) != 0 {
		t.Errorf("Events = %v, want none", times.Events)
	}
	if times.Len() != 2 {
		t.Errorf("Len() = %d, want 2", times.Len())
	}
	if _, ok := times.Time("sunrise"); ok {
		t.Error("Time(sunrise) found without definitions")
	}
}

func TestAddSunTime(t *testing.T) {
	saved := defaultRegistry
	defaultRegistry = NewRegistry(saved.Definitions()...)
	t.Cleanup(func() { defaultRegistry = saved })

	before := GetSunTimes(refDate, refLat, refLng)
	beforeSunrise, _ := before.Time(Sunrise)

	AddSunTime(-9, "blue_hour_start", "blue_hour_end")

	after := GetSunTimes(refDate, refLat, refLng)
	if _, ok := after.Time("blue_hour_end"); !ok {
		t.Error("new definition missing from GetSunTimes")
	}
	if after.Len() != before.Len()+2 {
		t.Errorf("Len() = %d, want %d", after.Len(), before.Len()+2)
	}

	// The earlier result is untouched.
	if _, ok := before.Time("blue_hour_end"); ok {
		t.Error("earlier result gained the new definition")
	}
	if got, _ := before.Time(Sunrise); !got.Equal(beforeSunrise) {
		t.Errorf("earlier sunrise changed: %s -> %s", beforeSunrise, got)
	}
	if got, _ := after.Time(Sunrise); !got.Equal(beforeSunrise) {
		t.Errorf("sunrise changed after append: %s -> %s", beforeSunrise, got)
	}

	if n := len(SunTimeDefinitions()); n != 7 {
		t.Errorf("SunTimeDefinitions() has %d entries, want 7", n)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(DefaultSunTimeDefinitions()...)
	if r.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", r.Len())
	}

	defs := r.Definitions()
	defs[0].RiseName = "changed"
	if r.Definitions()[0].RiseName != Sunrise {
		t.Error("Definitions() exposed internal storage")
	}

	r.Add(-3, "early", "late")
	got := r.Definitions()
	if last := got[len(got)-1]; last != (SunTimeDefinition{Angle: -3, RiseName: "early", SetName: "late"}) {
		t.Errorf("last definition = %+v", last)
	}
	for i, want := range DefaultSunTimeDefinitions() {
		if got[i] != want {
			t.Errorf("definition %d reordered: %+v, want %+v", i, got[i], want)
		}
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry(DefaultSunTimeDefinitions()...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Add(float64(-i), "rise", "set")
		}(i)
		go func() {
			defer wg.Done()
			_ = GetSunTimesFor(refDate, refLat, refLng, r.Definitions())
		}()
	}
	wg.Wait()

	if r.Len() != 14 {
		t.Errorf("Len() = %d, want 14", r.Len())
	}
}

func TestDefaultSunTimeDefinitionsGoldenHourNaming(t *testing.T) {
	defs := DefaultSunTimeDefinitions()
	golden := defs[len(defs)-1]
	if golden.Angle != 6 || golden.RiseName != GoldenHourEnd || golden.SetName != GoldenHourStart {
		t.Errorf("golden hour definition = %+v", golden)
	}
}
