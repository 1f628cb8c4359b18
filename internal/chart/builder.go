package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/ephem"
)

// Builder constructs charts from birth data and an ephemeris adapter.
// It is stateless and safe for concurrent use.
type Builder struct {
	eph *ephem.Adapter
	log *slog.Logger
}

// NewBuilder creates a chart builder.
func NewBuilder(eph *ephem.Adapter, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{eph: eph, log: log}
}

// Build computes a complete natal chart. If any tracked body cannot be
// resolved the whole construction fails; a partial chart would silently
// corrupt every downstream strength and period calculation.
func (b *Builder) Build(ctx context.Context, birth BirthData, system HouseSystem) (*VedicChart, error) {
	jd := astro.JulianDay(birth.UTC())

	bodies := make([]ephem.Body, 0, len(Planets))
	for _, p := range Planets {
		bodies = append(bodies, p.Body())
	}

	positions, err := b.eph.Positions(ctx, jd, bodies)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}

	ayanamsa := b.eph.AyanamsaValue(jd)

	cusps := houseCusps(system, jd, birth.Latitude, birth.Longitude)
	for i := range cusps {
		cusps[i] = astro.NormalizeDegree(cusps[i] - ayanamsa)
	}
	asc := cusps[0]
	mcTropical := astro.Midheaven(jd, birth.Longitude)
	mc := astro.NormalizeDegree(mcTropical - ayanamsa)

	chartPositions := make([]PlanetPosition, 0, len(Planets))
	for _, p := range Planets {
		raw, ok := positions[p.Body()]
		if !ok {
			return nil, fmt.Errorf("build chart: no position for %s", p)
		}
		pos := NewPlanetPosition(p, raw.LonDeg, raw.LatDeg, raw.DistanceAU, raw.SpeedDegPerDay, raw.Retrograde)
		pos.House = houseOf(pos.Longitude, cusps)
		chartPositions = append(chartPositions, pos)
	}

	flagCombustion(chartPositions)

	b.log.Debug("chart built",
		"name", birth.Name,
		"jd", jd,
		"ayanamsa", ayanamsa,
		"ascendant", asc,
		"house_system", system.String(),
	)

	return &VedicChart{
		Birth:        birth,
		JulianDay:    jd,
		Ayanamsa:     ayanamsa,
		AyanamsaName: b.eph.Ayanamsa().String(),
		Ascendant:    asc,
		Midheaven:    mc,
		Positions:    chartPositions,
		Cusps:        cusps,
		HouseSystem:  system,
		CalculatedAt: time.Now().UTC(),
	}, nil
}

// BuildTransit computes a chart for a transit moment. Transit charts are
// location-independent: they are built at 0,0 with whole-sign houses and
// only their sign placements are meaningful.
func (b *Builder) BuildTransit(ctx context.Context, t time.Time) (*VedicChart, error) {
	birth, err := NewBirthData("transit", t.UTC(), "UTC", 0, 0, "")
	if err != nil {
		return nil, fmt.Errorf("build transit chart: %w", err)
	}
	return b.Build(ctx, birth, WholeSign)
}

// flagCombustion marks planets within their combustion orb of the Sun.
func flagCombustion(positions []PlanetPosition) {
	var sunLon float64
	foundSun := false
	for _, pos := range positions {
		if pos.Planet == Sun {
			sunLon = pos.Longitude
			foundSun = true
			break
		}
	}
	if !foundSun {
		return
	}

	for i := range positions {
		orb, ok := combustionOrb(positions[i].Planet, positions[i].Retrograde)
		if !ok {
			continue
		}
		if astro.Separation(positions[i].Longitude, sunLon) <= orb {
			positions[i].Combust = true
		}
	}
}
