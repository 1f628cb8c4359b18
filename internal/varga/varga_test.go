package varga

import (
	"math"
	"testing"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

func TestDivisionalLongitudeDeterministic(t *testing.T) {
	// Pure function: repeated calls must be bit-identical.
	for _, d := range Divisions {
		for _, lon := range []float64{0, 13.7, 100.25, 359.999} {
			a := DivisionalLongitude(lon, d)
			b := DivisionalLongitude(lon, d)
			if a != b {
				t.Errorf("%s: DivisionalLongitude(%v) not deterministic: %v vs %v", d.Name(), lon, a, b)
			}
			if a < 0 || a >= 360 {
				t.Errorf("%s: DivisionalLongitude(%v) = %v, out of range", d.Name(), lon, a)
			}
		}
	}
}

func TestD1Identity(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 11.5 {
		if got := DivisionalLongitude(lon, D1); math.Abs(got-lon) > 1e-9 {
			t.Errorf("D1 should preserve longitude: %v -> %v", lon, got)
		}
	}
}

func TestNavamsaKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		wantSign chart.Sign
	}{
		// Aries (movable) counts from itself: first navamsa is Aries.
		{name: "0 Aries first navamsa", lon: 0.5, wantSign: chart.Aries},
		// Each navamsa spans 3°20'; the second part of Aries is Taurus.
		{name: "4 Aries second navamsa", lon: 4, wantSign: chart.Taurus},
		// Taurus (fixed) counts from its 9th, Capricorn.
		{name: "0 Taurus first navamsa", lon: 30.5, wantSign: chart.Capricorn},
		// Gemini (dual) counts from its 5th, Libra.
		{name: "0 Gemini first navamsa", lon: 60.5, wantSign: chart.Libra},
		// Last navamsa of Pisces is Pisces (vargottama corner).
		{name: "end of Pisces", lon: 359.9, wantSign: chart.Pisces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chart.Sign(astro.SignIndex(DivisionalLongitude(tt.lon, D9)))
			if got != tt.wantSign {
				t.Errorf("navamsa sign of %v = %v, want %v", tt.lon, got, tt.wantSign)
			}
		})
	}
}

func TestHoraOnlyCancerLeo(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 1.7 {
		sign := chart.Sign(astro.SignIndex(DivisionalLongitude(lon, D2)))
		if sign != chart.Cancer && sign != chart.Leo {
			t.Fatalf("hora sign for %v = %v, want Cancer or Leo", lon, sign)
		}
	}

	// First half of an odd sign is the Sun's hora (Leo).
	if s := chart.Sign(astro.SignIndex(DivisionalLongitude(10, D2))); s != chart.Leo {
		t.Errorf("10 Aries hora = %v, want Leo", s)
	}
	// Second half of an odd sign is the Moon's hora (Cancer).
	if s := chart.Sign(astro.SignIndex(DivisionalLongitude(20, D2))); s != chart.Cancer {
		t.Errorf("20 Aries hora = %v, want Cancer", s)
	}
	// Even signs reverse the order.
	if s := chart.Sign(astro.SignIndex(DivisionalLongitude(40, D2))); s != chart.Cancer {
		t.Errorf("10 Taurus hora = %v, want Cancer", s)
	}
}

func TestDrekkanaTrines(t *testing.T) {
	// Drekkana parts fall on the 1st, 5th and 9th from the sign.
	tests := []struct {
		lon  float64
		want chart.Sign
	}{
		{lon: 5, want: chart.Aries},    // first drekkana of Aries
		{lon: 15, want: chart.Leo},     // second
		{lon: 25, want: chart.Sagittarius}, // third
		{lon: 35, want: chart.Taurus},  // first drekkana of Taurus
		{lon: 45, want: chart.Virgo},
		{lon: 55, want: chart.Capricorn},
	}
	for _, tt := range tests {
		got := chart.Sign(astro.SignIndex(DivisionalLongitude(tt.lon, D3)))
		if got != tt.want {
			t.Errorf("drekkana sign of %v = %v, want %v", tt.lon, got, tt.want)
		}
	}
}

func TestBoundaryClamp(t *testing.T) {
	// A longitude exactly on a sign boundary must not overflow the part
	// index past N-1 through floating point.
	for _, d := range Divisions {
		for sign := 0; sign < 12; sign++ {
			boundary := float64(sign)*30 + 29.999999999999
			got := DivisionalLongitude(boundary, d)
			if got < 0 || got >= 360 {
				t.Errorf("%s: boundary %v maps out of range: %v", d.Name(), boundary, got)
			}
		}
	}
}

func TestVargottama(t *testing.T) {
	// 0-3.33 of Aries maps to an Aries navamsa: vargottama.
	if !IsVargottama(1.0) {
		t.Error("1.0 Aries should be vargottama")
	}
	// Mid-Aries maps elsewhere.
	if IsVargottama(15.0) {
		t.Error("15 Aries should not be vargottama")
	}

	// Stability under small perturbations that stay inside the same
	// navamsa part.
	for _, delta := range []float64{-0.5, -0.1, 0.1, 0.5} {
		if !IsVargottama(1.0 + delta) {
			t.Errorf("vargottama flag unstable at %v", 1.0+delta)
		}
	}
}

func TestBuildDivisionalChart(t *testing.T) {
	natal := &chart.VedicChart{
		Ascendant: 100,
		Positions: []chart.PlanetPosition{
			chart.NewPlanetPosition(chart.Sun, 10, 0, 1, 1, false),
			chart.NewPlanetPosition(chart.Saturn, 200, 0, 9, -0.03, true),
		},
	}

	dc := Build(natal, D9)
	if dc.Division != D9 {
		t.Fatalf("Division = %v, want D9", dc.Division)
	}
	if len(dc.Positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(dc.Positions))
	}

	for _, pos := range dc.Positions {
		if pos.House < 1 || pos.House > 12 {
			t.Errorf("%s house out of range: %d", pos.Planet, pos.House)
		}
	}

	// Retrograde flag carries over from D1.
	if !dc.Positions[1].Retrograde {
		t.Error("Saturn should remain flagged retrograde in D9")
	}
}

func TestBuildAllCoversDivisions(t *testing.T) {
	natal := &chart.VedicChart{
		Ascendant: 42,
		Positions: []chart.PlanetPosition{
			chart.NewPlanetPosition(chart.Moon, 123.4, 0, 0.0026, 13.1, false),
		},
	}

	all := BuildAll(natal)
	if len(all) != len(Divisions) {
		t.Fatalf("BuildAll returned %d charts, want %d", len(all), len(Divisions))
	}
	for _, d := range Divisions {
		if all[d] == nil {
			t.Errorf("missing chart for %s", d.Name())
		}
	}
}
