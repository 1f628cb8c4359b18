package chart

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/ephem"
)

// fixedProvider serves scripted tropical positions; bodies absent from the
// map are unavailable.
type fixedProvider struct {
	positions map[ephem.Body]ephem.RawPosition
}

func (p *fixedProvider) Name() string { return "fixed" }

func (p *fixedProvider) Available(body ephem.Body) bool {
	_, ok := p.positions[body]
	return ok
}

func (p *fixedProvider) PositionAt(_ context.Context, _ float64, body ephem.Body) (ephem.RawPosition, error) {
	pos, ok := p.positions[body]
	if !ok {
		return ephem.RawPosition{}, ephem.ErrUnknownBody
	}
	return pos, nil
}

func allBodiesProvider() *fixedProvider {
	positions := make(map[ephem.Body]ephem.RawPosition)
	for i, b := range ephem.Bodies {
		positions[b] = ephem.RawPosition{
			LonDeg:         float64(i) * 37,
			SpeedDegPerDay: 1,
		}
	}
	return &fixedProvider{positions: positions}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testBirth(t *testing.T) BirthData {
	t.Helper()
	birth, err := NewBirthData("test", time.Date(1990, 5, 15, 6, 30, 0, 0, time.UTC),
		"Asia/Kolkata", 28.6139, 77.209, "New Delhi")
	if err != nil {
		t.Fatalf("NewBirthData: %v", err)
	}
	return birth
}

func TestNewBirthDataValidation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		tz      string
		wantErr bool
	}{
		{name: "valid", lat: 28.6, lon: 77.2, tz: "Asia/Kolkata"},
		{name: "latitude too high", lat: 90.01, lon: 0, tz: "UTC", wantErr: true},
		{name: "latitude too low", lat: -91, lon: 0, tz: "UTC", wantErr: true},
		{name: "longitude too high", lat: 0, lon: 180.5, tz: "UTC", wantErr: true},
		{name: "longitude too low", lat: 0, lon: -181, tz: "UTC", wantErr: true},
		{name: "bad timezone", lat: 0, lon: 0, tz: "Not/AZone", wantErr: true},
		{name: "boundary values ok", lat: -90, lon: 180, tz: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBirthData("x", time.Now(), tt.tz, tt.lat, tt.lon, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBirthData error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBirthDataUTC(t *testing.T) {
	// 06:30 IST is 01:00 UTC.
	birth := testBirth(t)
	utc := birth.UTC()
	want := time.Date(1990, 5, 15, 1, 0, 0, 0, time.UTC)
	if !utc.Equal(want) {
		t.Errorf("UTC() = %v, want %v", utc, want)
	}
}

func TestBirthDataUTCWithoutResolvedLocation(t *testing.T) {
	// A BirthData that crossed a serialization boundary carries only the
	// IANA name; UTC must re-resolve it rather than assume UTC.
	birth := BirthData{
		DateTime: time.Date(1990, 5, 15, 6, 30, 0, 0, time.UTC),
		Timezone: "Asia/Kolkata",
	}
	want := time.Date(1990, 5, 15, 1, 0, 0, 0, time.UTC)
	if got := birth.UTC(); !got.Equal(want) {
		t.Errorf("UTC() = %v, want %v", got, want)
	}

	// An unresolvable name degrades to UTC instead of failing.
	birth.Timezone = "Not/AZone"
	if got := birth.UTC(); !got.Equal(birth.DateTime) {
		t.Errorf("UTC() with bad zone = %v, want %v", got, birth.DateTime)
	}
}

func TestBuildCompleteChart(t *testing.T) {
	adapter := ephem.NewAdapter(allBodiesProvider(), astro.AyanamsaLahiri, testLogger())
	builder := NewBuilder(adapter, testLogger())

	c, err := builder.Build(context.Background(), testBirth(t), Placidus)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(c.Positions) != len(Planets) {
		t.Fatalf("got %d positions, want %d", len(c.Positions), len(Planets))
	}
	for _, pos := range c.Positions {
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			t.Errorf("%s longitude out of range: %v", pos.Planet, pos.Longitude)
		}
		if pos.House < 1 || pos.House > 12 {
			t.Errorf("%s house out of range: %d", pos.Planet, pos.House)
		}
		if int(pos.Sign) != astro.SignIndex(pos.Longitude) {
			t.Errorf("%s sign %v inconsistent with longitude %v", pos.Planet, pos.Sign, pos.Longitude)
		}
	}
	if c.AyanamsaName != "Lahiri" {
		t.Errorf("AyanamsaName = %q, want Lahiri", c.AyanamsaName)
	}
}

func TestBuildFailsOnMissingBody(t *testing.T) {
	provider := allBodiesProvider()
	delete(provider.positions, ephem.BodySaturn)

	adapter := ephem.NewAdapter(provider, astro.AyanamsaLahiri, testLogger())
	builder := NewBuilder(adapter, testLogger())

	if _, err := builder.Build(context.Background(), testBirth(t), Placidus); err == nil {
		t.Fatal("expected failure when a body is unavailable, got complete chart")
	}
}

func TestHouseCuspsOrdering(t *testing.T) {
	jd := astro.JulianDay(time.Date(1990, 5, 15, 1, 0, 0, 0, time.UTC))

	for _, system := range []HouseSystem{Equal, WholeSign, Placidus} {
		cusps := houseCusps(system, jd, 28.6, 77.2)

		// Cusps must advance zodiacally: each step forward is under 180.
		for i := 0; i < 12; i++ {
			step := astro.NormalizeDegree(cusps[(i+1)%12] - cusps[i])
			if step <= 0 || step >= 180 {
				t.Errorf("%s: cusp step %d->%d is %v degrees", system, i+1, i+2, step)
			}
		}
	}
}

func TestPlacidusCuspQuadrants(t *testing.T) {
	// Each intermediate cusp must stay inside its own quadrant between
	// the angles: 11 and 12 between MC and Asc, 2 and 3 between Asc and
	// IC. A solver that drifts onto the mirrored horizon branch places
	// them outside and breaks zodiacal order around the 3rd and 12th.
	moments := []time.Time{
		time.Date(1990, 5, 15, 1, 0, 0, 0, time.UTC),
		time.Date(1990, 5, 15, 13, 0, 0, 0, time.UTC),
		time.Date(2003, 11, 2, 7, 30, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC),
	}
	lats := []float64{28.6, -33.9, 51.5}

	for _, at := range moments {
		for _, lat := range lats {
			jd := astro.JulianDay(at)
			cusps := houseCusps(Placidus, jd, lat, 77.2)
			asc, mc := cusps[0], cusps[9]
			ic := astro.NormalizeDegree(mc + 180)

			within := func(lon, lo, hi float64) bool {
				span := astro.NormalizeDegree(hi - lo)
				return astro.NormalizeDegree(lon-lo) < span
			}
			for _, c := range []int{10, 11} {
				if !within(cusps[c], mc, asc) {
					t.Errorf("lat %v at %v: cusp %d = %v outside MC %v .. Asc %v",
						lat, at, c+1, cusps[c], mc, asc)
				}
			}
			for _, c := range []int{1, 2} {
				if !within(cusps[c], asc, ic) {
					t.Errorf("lat %v at %v: cusp %d = %v outside Asc %v .. IC %v",
						lat, at, c+1, cusps[c], asc, ic)
				}
			}
		}
	}
}

func TestPlacidusPolarFallback(t *testing.T) {
	jd := astro.JulianDay(time.Date(2000, 12, 21, 12, 0, 0, 0, time.UTC))

	cusps := houseCusps(Placidus, jd, 70, 25)
	// At polar latitudes Placidus falls back to Equal: uniform 30-degree steps.
	for i := 0; i < 12; i++ {
		step := astro.NormalizeDegree(cusps[(i+1)%12] - cusps[i])
		if math.Abs(step-30) > 1e-6 {
			t.Errorf("polar fallback cusp step = %v, want 30", step)
		}
	}
}

func TestHouseOf(t *testing.T) {
	cusps := equalCusps(100) // house 1 starts at 100

	tests := []struct {
		lon  float64
		want int
	}{
		{lon: 100, want: 1},
		{lon: 129.99, want: 1},
		{lon: 130, want: 2},
		{lon: 95, want: 12},
		{lon: 0, want: 9},
	}
	for _, tt := range tests {
		if got := houseOf(tt.lon, cusps); got != tt.want {
			t.Errorf("houseOf(%v) = %d, want %d", tt.lon, got, tt.want)
		}
	}
}

func TestCombustionFlag(t *testing.T) {
	positions := []PlanetPosition{
		NewPlanetPosition(Sun, 100, 0, 1, 1, false),
		NewPlanetPosition(Mercury, 105, 0, 1, 1, false), // 5 deg from Sun
		NewPlanetPosition(Venus, 115, 0, 1, 1, false),   // 15 deg, outside 10 orb
		NewPlanetPosition(Rahu, 101, 0, 0, -0.05, true), // nodes never combust
	}

	flagCombustion(positions)

	if !positions[1].Combust {
		t.Error("Mercury at 5 degrees from Sun should be combust")
	}
	if positions[2].Combust {
		t.Error("Venus at 15 degrees from Sun should not be combust")
	}
	if positions[3].Combust {
		t.Error("Rahu should never be combust")
	}
}

func TestRetrogradeVenusTighterOrb(t *testing.T) {
	positions := []PlanetPosition{
		NewPlanetPosition(Sun, 100, 0, 1, 1, false),
		NewPlanetPosition(Venus, 109, 0, 1, -0.3, true), // 9 deg, retro orb is 8
	}
	flagCombustion(positions)
	if positions[1].Combust {
		t.Error("retrograde Venus at 9 degrees should use the 8-degree orb")
	}
}

func TestNewPlanetPositionDerivations(t *testing.T) {
	pos := NewPlanetPosition(Moon, 95.5, 1.1, 0.0026, 13.2, false)

	if pos.Sign != Cancer {
		t.Errorf("Sign = %v, want Cancer", pos.Sign)
	}
	if math.Abs(pos.DegreeInSign-5.5) > 1e-9 {
		t.Errorf("DegreeInSign = %v, want 5.5", pos.DegreeInSign)
	}
	if pos.Degree != 5 || pos.Minute != 30 {
		t.Errorf("DMS = %d/%d, want 5/30", pos.Degree, pos.Minute)
	}
	// 95.5 / (360/27) = 7.16 -> index 7, Pushya
	if pos.Nakshatra != 7 {
		t.Errorf("Nakshatra = %d, want 7 (Pushya)", pos.Nakshatra)
	}
}

func TestBuildTransitWholeSign(t *testing.T) {
	adapter := ephem.NewAdapter(ephem.NewStaticProvider(), astro.AyanamsaLahiri, testLogger())
	builder := NewBuilder(adapter, testLogger())

	c, err := builder.BuildTransit(context.Background(), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildTransit: %v", err)
	}
	if c.HouseSystem != WholeSign {
		t.Errorf("transit house system = %v, want WholeSign", c.HouseSystem)
	}
}
