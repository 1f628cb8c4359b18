package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/dasha"
	"github.com/litescript/ls-jyotish/internal/panchanga"
)

func sampleChart() *chart.VedicChart {
	mk := func(p chart.Planet, lon, speed float64, retro bool) chart.PlanetPosition {
		pos := chart.NewPlanetPosition(p, lon, 0, 1, speed, retro)
		pos.House = int(lon/30) + 1
		return pos
	}
	return &chart.VedicChart{
		Birth: chart.BirthData{
			Name:      "Example",
			DateTime:  time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC),
			Timezone:  "UTC",
			Latitude:  28.6,
			Longitude: 77.2,
			Location:  "New Delhi",
		},
		JulianDay:    2448057.5,
		Ayanamsa:     23.7,
		AyanamsaName: "Lahiri",
		Ascendant:    5,
		Midheaven:    275,
		HouseSystem:  chart.WholeSign,
		Positions: []chart.PlanetPosition{
			mk(chart.Sun, 60.5, 0.96, false),
			mk(chart.Moon, 130, 13.2, false),
			mk(chart.Saturn, 280, -0.05, true),
		},
		CalculatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportChartFields(t *testing.T) {
	snap := ExportChart(sampleChart())
	if snap.Name != "Example" {
		t.Errorf("Name = %q", snap.Name)
	}
	if snap.BirthTime != "1990-06-15 14:30:00" {
		t.Errorf("BirthTime = %q", snap.BirthTime)
	}
	if len(snap.Positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(snap.Positions))
	}
	sun := snap.Positions[0]
	if sun.Planet != "Sun" || sun.Sign != "Gemini" {
		t.Errorf("sun = %s in %s", sun.Planet, sun.Sign)
	}
	sat := snap.Positions[2]
	if !sat.Retrograde {
		t.Error("Saturn should be retrograde")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportChart(sampleChart()).WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded ChartSnapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.AyanamsaName != "Lahiri" {
		t.Errorf("AyanamsaName = %q", decoded.AyanamsaName)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output is not indented")
	}
}

func TestWriteChartTable(t *testing.T) {
	var buf bytes.Buffer
	WriteChartTable(&buf, sampleChart())
	out := buf.String()
	for _, want := range []string{"Example", "Lahiri", "Sun", "Gemini", "Saturn"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteDashaTableMarksCurrent(t *testing.T) {
	birth := time.Date(1990, 6, 15, 14, 30, 0, 0, time.UTC)
	sys := dasha.Calculate(birth, 121) // Magha, Ketu lord
	now := birth.AddDate(10, 0, 0)

	var buf bytes.Buffer
	WriteDashaTable(&buf, sys, now)
	out := buf.String()
	if !strings.Contains(out, "> ") {
		t.Errorf("no running period marked:\n%s", out)
	}
	if !strings.Contains(out, "Current:") {
		t.Errorf("no current chain:\n%s", out)
	}
}

func TestWritePanchangaHandlesMissingEvents(t *testing.T) {
	ends := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)
	p := &panchanga.Panchanga{
		Time:      time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC),
		Tithi:     panchanga.Tithi{Index: 1, Name: "Shukla Pratipada", Paksha: "Shukla", EndsAt: &ends},
		Vara:      panchanga.Vara{Index: 0, Name: "Ravivara"},
		Nakshatra: panchanga.Nakshatra{Index: 0, Name: "Ashwini", Pada: 1},
		Yoga:      panchanga.Yoga{Index: 1, Name: "Vishkambha"},
		Karana:    panchanga.Karana{Index: 0, Name: "Kimstughna", Fixed: true},
		Phase:     panchanga.LunarPhase{AngleDeg: 5, Illumination: 0.002, Waxing: true},
	}
	var buf bytes.Buffer
	WritePanchanga(&buf, p)
	out := buf.String()
	if !strings.Contains(out, "ends 18:45") {
		t.Errorf("tithi end time missing:\n%s", out)
	}
	if !strings.Contains(out, "Ravivara") || !strings.Contains(out, "Ashwini") {
		t.Errorf("almanac fields missing:\n%s", out)
	}
	// Rise and set pointers are nil; the writer renders placeholders.
	if !strings.Contains(out, "Sunrise") {
		t.Errorf("sunrise line missing:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Uttara Bhadrapada", 14); got != "Uttara Bhadr.." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Ashwini", 14); got != "Ashwini" {
		t.Errorf("truncate = %q", got)
	}
}
