package storage

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/litescript/ls-jyotish/internal/chart"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.db")
	s, err := Open(path, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storedChart(name string) *chart.VedicChart {
	return &chart.VedicChart{
		Birth: chart.BirthData{
			Name:      name,
			DateTime:  time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC),
			Timezone:  "Asia/Kolkata",
			Latitude:  28.6,
			Longitude: 77.2,
			Location:  "New Delhi",
		},
		JulianDay:    2448057.5,
		Ayanamsa:     23.7,
		AyanamsaName: "Lahiri",
		Ascendant:    185.2,
		Positions: []chart.PlanetPosition{
			chart.NewPlanetPosition(chart.Sun, 60.5, 0, 1, 0.96, false),
			chart.NewPlanetPosition(chart.Moon, 130, 0, 1, 13.2, false),
		},
	}
}

func TestSaveAndGetChart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveChart(ctx, storedChart("Ravi"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	got, err := s.GetChart(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Birth.Name != "Ravi" {
		t.Errorf("name = %q", got.Birth.Name)
	}
	if got.Ayanamsa != 23.7 {
		t.Errorf("ayanamsa = %v", got.Ayanamsa)
	}
	if len(got.Positions) != 2 {
		t.Fatalf("positions = %d", len(got.Positions))
	}
	if got.Positions[1].Planet != chart.Moon {
		t.Errorf("second position = %v", got.Positions[1].Planet)
	}
}

func TestLoadedChartKeepsBirthInstant(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	birth, err := chart.NewBirthData("Ravi",
		time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC),
		"Asia/Kolkata", 28.6, 77.2, "New Delhi")
	if err != nil {
		t.Fatal(err)
	}
	saved := storedChart("Ravi")
	saved.Birth = birth

	id, err := s.SaveChart(ctx, saved)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetChart(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// The resolved location does not survive the JSON payload; the loaded
	// chart must still read the wall clock in the birth timezone, not UTC.
	if want := time.Date(1990, 6, 15, 9, 0, 0, 0, time.UTC); !got.Birth.UTC().Equal(want) {
		t.Errorf("loaded UTC instant = %v, want %v", got.Birth.UTC(), want)
	}
	if !got.Birth.UTC().Equal(birth.UTC()) {
		t.Errorf("round-trip shifted the instant: %v vs %v", got.Birth.UTC(), birth.UTC())
	}
}

func TestGetChartNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetChart(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListChartsOmitsPayload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveChart(ctx, storedChart("One")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveChart(ctx, storedChart("Two")); err != nil {
		t.Fatal(err)
	}

	recs, err := s.ListCharts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, r := range recs {
		if len(r.ChartJSON) != 0 {
			t.Errorf("record %s carries payload in listing", r.ID)
		}
		if r.Timezone != "Asia/Kolkata" {
			t.Errorf("record %s timezone = %q", r.ID, r.Timezone)
		}
	}
}

func TestDeleteChart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveChart(ctx, storedChart("Gone"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteChart(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetChart(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: %v, want ErrNotFound", err)
	}
	if err := s.DeleteChart(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v, want ErrNotFound", err)
	}
}
