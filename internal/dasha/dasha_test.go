package dasha

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

var birth = time.Date(1985, 4, 12, 8, 45, 0, 0, time.UTC)

func TestBirthLordFromNakshatra(t *testing.T) {
	tests := []struct {
		name     string
		moonLon  float64
		wantLord chart.Planet
	}{
		{name: "Ashwini start", moonLon: 0, wantLord: chart.Ketu},
		{name: "Bharani", moonLon: 14, wantLord: chart.Venus},
		{name: "Krittika", moonLon: 27, wantLord: chart.Sun},
		{name: "Rohini", moonLon: 41, wantLord: chart.Moon},
		{name: "Magha wraps the sequence", moonLon: 121, wantLord: chart.Ketu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := Calculate(birth, tt.moonLon)
			if sys.BirthLord != tt.wantLord {
				t.Errorf("birth lord = %v, want %v", sys.BirthLord, tt.wantLord)
			}
		})
	}
}

func TestFullBalanceAtNakshatraStart(t *testing.T) {
	// Moon exactly on a nakshatra boundary: nothing of the first period
	// has elapsed.
	sys := Calculate(birth, 0)
	if math.Abs(sys.BalanceYears-PeriodYears[chart.Ketu]) > 1e-9 {
		t.Errorf("balance = %v, want full %v years", sys.BalanceYears, PeriodYears[chart.Ketu])
	}
	first := sys.Periods[0]
	if !first.Start.Equal(birth) {
		t.Errorf("first period starts %v, want birth", first.Start)
	}
	if math.Abs(first.Years-7) > 1e-9 {
		t.Errorf("first period years = %v, want 7", first.Years)
	}
}

func TestHalfElapsedBalance(t *testing.T) {
	// Moon halfway through Ashwini: half of Ketu's 7 years remain.
	sys := Calculate(birth, astro.NakshatraSpan/2)
	if math.Abs(sys.BalanceYears-3.5) > 1e-9 {
		t.Errorf("balance = %v, want 3.5", sys.BalanceYears)
	}
}

func TestTotalCycleIs120Years(t *testing.T) {
	for _, moonLon := range []float64{0, 5.5, 100.2, 222.9, 359.1} {
		sys := Calculate(birth, moonLon)
		var total float64
		for _, p := range sys.Periods {
			total += p.Years
		}
		if math.Abs(total-120) > 1e-6 {
			t.Errorf("moon %v: total years = %v, want 120", moonLon, total)
		}
	}
}

func TestMahadashasContiguous(t *testing.T) {
	sys := Calculate(birth, 77.3)
	for i := 1; i < len(sys.Periods); i++ {
		if !sys.Periods[i-1].End.Equal(sys.Periods[i].Start) {
			t.Errorf("gap between period %d and %d: %v vs %v",
				i-1, i, sys.Periods[i-1].End, sys.Periods[i].Start)
		}
	}
}

func TestSubPeriodsTileParent(t *testing.T) {
	sys := Calculate(birth, 0)
	// Use a later, unclipped Mahadasha so the notional structure is
	// intact.
	maha := sys.Periods[2]
	if len(maha.Children) != 9 {
		t.Fatalf("got %d antardashas, want 9", len(maha.Children))
	}
	if !maha.Children[0].Start.Equal(maha.Start) {
		t.Error("first antardasha should start with its Mahadasha")
	}
	if !maha.Children[8].End.Equal(maha.End) {
		t.Error("last antardasha should end with its Mahadasha")
	}
	if maha.Children[0].Planet != maha.Planet {
		t.Errorf("first antardasha lord = %v, want the Mahadasha's own %v",
			maha.Children[0].Planet, maha.Planet)
	}
	for i := 1; i < 9; i++ {
		if !maha.Children[i-1].End.Equal(maha.Children[i].Start) {
			t.Errorf("antardasha %d not contiguous", i)
		}
	}
}

func TestAntardashaProportions(t *testing.T) {
	sys := Calculate(birth, 0)
	maha := sys.Periods[1] // Venus, 20 years, unclipped
	if maha.Planet != chart.Venus {
		t.Fatalf("second Mahadasha = %v, want Venus", maha.Planet)
	}
	for _, sub := range maha.Children {
		want := maha.Years * PeriodYears[sub.Planet] / 120
		got := durationToYears(sub.End.Sub(sub.Start))
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("%v antardasha = %v years, want %v", sub.Planet, got, want)
		}
	}
}

func TestThreeLevelsDeep(t *testing.T) {
	sys := Calculate(birth, 50)
	maha := sys.Periods[2]
	antar := maha.Children[0]
	if len(antar.Children) != 9 {
		t.Fatalf("got %d pratyantardashas, want 9", len(antar.Children))
	}
	if antar.Children[0].Level != Pratyantardasha {
		t.Errorf("level = %v, want Pratyantardasha", antar.Children[0].Level)
	}
	if len(antar.Children[0].Children) != 0 {
		t.Error("pratyantardasha should not subdivide further")
	}
}

func TestAtQuery(t *testing.T) {
	sys := Calculate(birth, 0)

	chain := sys.At(birth.AddDate(10, 0, 0))
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if chain[0].Level != Mahadasha || chain[1].Level != Antardasha || chain[2].Level != Pratyantardasha {
		t.Error("chain levels out of order")
	}
	// 10 years in: past Ketu's 7, inside Venus.
	if chain[0].Planet != chart.Venus {
		t.Errorf("active Mahadasha = %v, want Venus", chain[0].Planet)
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].Start.Before(chain[i-1].Start) || chain[i].End.After(chain[i-1].End) {
			t.Errorf("chain level %d not nested inside level %d", i, i-1)
		}
	}

	if got := sys.At(birth.Add(-time.Hour)); got != nil {
		t.Errorf("query before birth returned %v, want nil", got)
	}
	if got := sys.At(birth.AddDate(130, 0, 0)); got != nil {
		t.Errorf("query beyond the cycle returned %v, want nil", got)
	}
}

func TestAtIsRepeatable(t *testing.T) {
	sys := Calculate(birth, 200)
	when := birth.AddDate(33, 4, 2)
	first := sys.At(when)
	second := sys.At(when)
	if len(first) != len(second) {
		t.Fatal("repeated query changed shape")
	}
	for i := range first {
		if first[i].Planet != second[i].Planet || !first[i].Start.Equal(second[i].Start) {
			t.Errorf("repeated query diverged at level %d", i)
		}
	}
}

func TestTrailingPartialRestoresBirthLord(t *testing.T) {
	// Moon mid-nakshatra: the elapsed share of the birth lord's period
	// returns at the tail, so the lord appears first and last.
	sys := Calculate(birth, astro.NakshatraSpan/2)
	last := sys.Periods[len(sys.Periods)-1]
	if last.Planet != sys.BirthLord {
		t.Errorf("trailing period lord = %v, want %v", last.Planet, sys.BirthLord)
	}
	if math.Abs(last.Years-3.5) > 1e-6 {
		t.Errorf("trailing period years = %v, want 3.5", last.Years)
	}
	if len(sys.Periods) != 10 {
		t.Errorf("got %d periods, want 10", len(sys.Periods))
	}
}
