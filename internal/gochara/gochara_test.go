package gochara

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/litescript/ls-jyotish/internal/aspect"
	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/ephem"
)

// sidProvider serves fixed sidereal longitudes by pre-adding the
// ayanamsa the adapter will subtract.
type sidProvider struct {
	lons map[ephem.Body]float64
}

func (p *sidProvider) Name() string                  { return "sid" }
func (p *sidProvider) Available(body ephem.Body) bool { _, ok := p.lons[body]; return ok }

func (p *sidProvider) PositionAt(_ context.Context, jd float64, body ephem.Body) (ephem.RawPosition, error) {
	lon, ok := p.lons[body]
	if !ok {
		return ephem.RawPosition{}, ephem.ErrUnknownBody
	}
	return ephem.RawPosition{
		LonDeg:         astro.NormalizeDegree(lon + astro.AyanamsaLahiri.Value(jd)),
		SpeedDegPerDay: 0.5,
		DistanceAU:     1,
	}, nil
}

func allBodies(base float64) map[ephem.Body]float64 {
	m := make(map[ephem.Body]float64)
	for i, b := range ephem.Bodies {
		m[b] = astro.NormalizeDegree(base + float64(i)*37)
	}
	return m
}

func transitPos(p chart.Planet, lon float64) chart.PlanetPosition {
	return chart.NewPlanetPosition(p, lon, 0, 1, 0.5, false)
}

func TestHouseFromMoon(t *testing.T) {
	tests := []struct {
		moon   chart.Sign
		target chart.Sign
		want   int
	}{
		{moon: chart.Aries, target: chart.Aries, want: 1},
		{moon: chart.Aries, target: chart.Taurus, want: 2},
		{moon: chart.Aries, target: chart.Pisces, want: 12},
		{moon: chart.Capricorn, target: chart.Aries, want: 4},
		{moon: chart.Pisces, target: chart.Aquarius, want: 12},
	}
	for _, tt := range tests {
		if got := houseFromMoon(tt.moon, tt.target); got != tt.want {
			t.Errorf("houseFromMoon(%v, %v) = %d, want %d", tt.moon, tt.target, got, tt.want)
		}
	}
}

func TestClassifyEffects(t *testing.T) {
	if got := classify(chart.Saturn, 11); got != Good {
		t.Errorf("Saturn in 11th = %v, want Good", got)
	}
	if got := classify(chart.Saturn, 8); got != Challenging {
		t.Errorf("Saturn in 8th = %v, want Challenging", got)
	}
	if got := classify(chart.Saturn, 1); got != Neutral {
		t.Errorf("Saturn in 1st = %v, want Neutral", got)
	}
	if got := classify(chart.Jupiter, 5); got != Good {
		t.Errorf("Jupiter in 5th = %v, want Good", got)
	}
}

func TestVedhaSuppression(t *testing.T) {
	a := NewAnalyzer(nil, aspect.DefaultOrbConfig(), slog.New(slog.DiscardHandler))

	// Natal Moon in Aries. Jupiter transits Aquarius, the favorable
	// 11th, while Mars occupies Scorpio, the 8th, which is Jupiter's
	// Vedha house for the 11th.
	tc := &chart.VedicChart{Positions: []chart.PlanetPosition{
		transitPos(chart.Jupiter, 310), // Aquarius
		transitPos(chart.Mars, 220),    // Scorpio
	}}

	transits := a.planetTransits(tc, chart.Aries)
	var jupiter PlanetTransit
	for _, tr := range transits {
		if tr.Planet == chart.Jupiter {
			jupiter = tr
		}
	}

	if jupiter.HouseFromMoon != 11 {
		t.Fatalf("Jupiter house = %d, want 11", jupiter.HouseFromMoon)
	}
	if jupiter.Effect != Neutral {
		t.Errorf("obstructed Jupiter effect = %v, want Neutral", jupiter.Effect)
	}
	if !jupiter.Obstructed || jupiter.ObstructedBy != chart.Mars {
		t.Errorf("obstruction not recorded: %+v", jupiter)
	}
}

func TestVedhaAbsentWithoutOccupant(t *testing.T) {
	a := NewAnalyzer(nil, aspect.DefaultOrbConfig(), slog.New(slog.DiscardHandler))

	tc := &chart.VedicChart{Positions: []chart.PlanetPosition{
		transitPos(chart.Jupiter, 310), // 11th from Aries Moon
		transitPos(chart.Mars, 70),     // Gemini, 3rd: favorable for Mars
	}}

	transits := a.planetTransits(tc, chart.Aries)
	for _, tr := range transits {
		if tr.Planet == chart.Jupiter && tr.Effect != Good {
			t.Errorf("unobstructed Jupiter = %v, want Good", tr.Effect)
		}
	}
}

func TestVedhaExemptPair(t *testing.T) {
	a := NewAnalyzer(nil, aspect.DefaultOrbConfig(), slog.New(slog.DiscardHandler))

	// Moon in Aries; Sun in the favorable 10th (Capricorn); Saturn in
	// the 4th (Cancer), the Sun's Vedha house for the 10th. The
	// Sun-Saturn pair is exempt, so the Sun keeps its good effect.
	tc := &chart.VedicChart{Positions: []chart.PlanetPosition{
		transitPos(chart.Sun, 280),    // Capricorn
		transitPos(chart.Saturn, 100), // Cancer
	}}

	transits := a.planetTransits(tc, chart.Aries)
	for _, tr := range transits {
		if tr.Planet == chart.Sun && tr.Effect != Good {
			t.Errorf("Sun effect = %v, want Good despite Saturn in Vedha house", tr.Effect)
		}
	}
}

func TestVerdictThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Verdict
	}{
		{score: 80, want: Excellent},
		{score: 75, want: Excellent},
		{score: 65, want: GoodPeriod},
		{score: 50, want: Mixed},
		{score: 35, want: ChallengingPeriod},
		{score: 10, want: Difficult},
	}
	for _, tt := range tests {
		if got := verdictFor(tt.score); got != tt.want {
			t.Errorf("verdictFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestAspectBalanceNeutralWhenEmpty(t *testing.T) {
	if got := aspectBalance(nil); got != 50 {
		t.Errorf("empty aspect balance = %v, want 50", got)
	}
}

func TestAnalyzeFailsWithoutMoon(t *testing.T) {
	provider := &sidProvider{lons: allBodies(10)}
	ad := ephem.NewAdapter(provider, astro.AyanamsaLahiri, slog.New(slog.DiscardHandler))
	a := NewAnalyzer(chart.NewBuilder(ad, slog.New(slog.DiscardHandler)), aspect.DefaultOrbConfig(), slog.New(slog.DiscardHandler))

	natal := &chart.VedicChart{Positions: []chart.PlanetPosition{
		transitPos(chart.Sun, 100),
	}}
	if _, err := a.Analyze(context.Background(), natal, time.Now()); err == nil {
		t.Fatal("expected an error for a chart without the Moon")
	}
}

func TestAnalyzeFullReport(t *testing.T) {
	// Fixed sky: Saturn in Scorpio and Jupiter in Leo, with the natal
	// Moon in Aries, put Saturn in the 8th (Ashtama Shani) and Jupiter
	// in the 5th (trine) at every sample point.
	lons := allBodies(10)
	lons[ephem.BodySaturn] = 215 // Scorpio
	lons[ephem.BodyJupiter] = 125 // Leo
	provider := &sidProvider{lons: lons}
	ad := ephem.NewAdapter(provider, astro.AyanamsaLahiri, slog.New(slog.DiscardHandler))
	a := NewAnalyzer(chart.NewBuilder(ad, slog.New(slog.DiscardHandler)), aspect.DefaultOrbConfig(), slog.New(slog.DiscardHandler))

	natal := &chart.VedicChart{Positions: []chart.PlanetPosition{
		transitPos(chart.Moon, 15), // Aries
		transitPos(chart.Sun, 100),
	}}

	an, err := a.Analyze(context.Background(), natal, time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(an.Transits) != len(ephem.Bodies) {
		t.Errorf("got %d transits, want %d", len(an.Transits), len(ephem.Bodies))
	}
	if an.Score < 0 || an.Score > 100 {
		t.Errorf("score %v outside [0,100]", an.Score)
	}

	names := map[string]int{}
	for _, s := range an.Significant {
		names[s.Name]++
		if s.Intensity < 1 || s.Intensity > 5 {
			t.Errorf("%s: intensity %d outside 1-5", s.Name, s.Intensity)
		}
	}
	for name, count := range names {
		if count > 1 {
			t.Errorf("significant period %q reported %d times, want deduplicated", name, count)
		}
	}
	if names["Ashtama Shani"] != 1 {
		t.Error("Saturn in the 8th from Moon should report Ashtama Shani")
	}
	if names["Jupiter in trine"] != 1 {
		t.Error("Jupiter in the 5th from Moon should report its trine window")
	}
}
