// Package aspect computes angular aspects between planets: classical
// Western-style aspects with configurable orbs, Vedic sign-based special
// aspects (graha drishti), and named yoga combinations.
package aspect

import (
	"math"
	"sort"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

// Type identifies a classical aspect by its exact angle.
type Type int

const (
	Conjunction Type = iota
	Sextile
	Square
	Trine
	Opposition
	SemiSextile
	SemiSquare
	Sesquiquadrate
	Quincunx
)

var typeNames = map[Type]string{
	Conjunction:    "Conjunction",
	Sextile:        "Sextile",
	Square:         "Square",
	Trine:          "Trine",
	Opposition:     "Opposition",
	SemiSextile:    "Semi-Sextile",
	SemiSquare:     "Semi-Square",
	Sesquiquadrate: "Sesquiquadrate",
	Quincunx:       "Quincunx",
}

var exactAngles = map[Type]float64{
	Conjunction:    0,
	Sextile:        60,
	Square:         90,
	Trine:          120,
	Opposition:     180,
	SemiSextile:    30,
	SemiSquare:     45,
	Sesquiquadrate: 135,
	Quincunx:       150,
}

// majorTypes are tested in every run; minor aspects only when the
// configuration asks for them.
var majorTypes = []Type{Conjunction, Sextile, Square, Trine, Opposition}

var minorTypes = []Type{SemiSextile, SemiSquare, Sesquiquadrate, Quincunx}

func (t Type) String() string { return typeNames[t] }

// Angle returns the aspect's exact angle in degrees.
func (t Type) Angle() float64 { return exactAngles[t] }

// IsMajor reports whether the aspect is one of the five classical majors.
func (t Type) IsMajor() bool { return t <= Opposition }

// IsHarmonious reports the traditional benefic/malefic character of the
// aspect angle. Conjunctions are counted as harmonious here; their real
// character depends on the planets involved.
func (t Type) IsHarmonious() bool {
	switch t {
	case Conjunction, Sextile, Trine, SemiSextile:
		return true
	}
	return false
}

// OrbConfig carries the per-planet orb allowances. The effective orb for
// a pair is the mean of the two planets' allowances; minor aspects use
// half of it.
type OrbConfig struct {
	Orbs          map[chart.Planet]float64
	IncludeMinors bool
}

// DefaultOrbConfig mirrors the orb allowances commonly used for natal
// work: wide for the luminaries, tight for the nodes.
func DefaultOrbConfig() OrbConfig {
	return OrbConfig{
		Orbs: map[chart.Planet]float64{
			chart.Sun:     10,
			chart.Moon:    9,
			chart.Mars:    8,
			chart.Mercury: 7,
			chart.Jupiter: 9,
			chart.Venus:   7,
			chart.Saturn:  9,
			chart.Rahu:    5,
			chart.Ketu:    5,
		},
		IncludeMinors: false,
	}
}

// orbFor falls back to a modest allowance for planets missing from the
// table.
func (c OrbConfig) orbFor(p chart.Planet) float64 {
	if o, ok := c.Orbs[p]; ok {
		return o
	}
	return 5
}

func (c OrbConfig) pairOrb(a, b chart.Planet, t Type) float64 {
	orb := (c.orbFor(a) + c.orbFor(b)) / 2
	if !t.IsMajor() {
		orb /= 2
	}
	return orb
}

// Aspect is one detected angular relationship between two planets.
type Aspect struct {
	PlanetA    chart.Planet
	PlanetB    chart.Planet
	Type       Type
	Separation float64 // shortest arc, degrees
	OrbDeg     float64 // deviation from the exact angle
	Applying   bool
	Strength   float64 // 1 at exact angle, 0 at the orb boundary
}

// Calculate tests every unordered planet pair against the configured
// aspect angles. At most one aspect (the tightest) is reported per pair.
func Calculate(positions []chart.PlanetPosition, cfg OrbConfig) []Aspect {
	types := majorTypes
	if cfg.IncludeMinors {
		types = append(append([]Type{}, majorTypes...), minorTypes...)
	}

	var out []Aspect
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a, b := positions[i], positions[j]
			if best, ok := bestAspect(a, b, types, cfg); ok {
				out = append(out, best)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].OrbDeg < out[j].OrbDeg })
	return out
}

func bestAspect(a, b chart.PlanetPosition, types []Type, cfg OrbConfig) (Aspect, bool) {
	sep := astro.Separation(a.Longitude, b.Longitude)

	var best Aspect
	found := false
	for _, t := range types {
		allow := cfg.pairOrb(a.Planet, b.Planet, t)
		dev := math.Abs(sep - t.Angle())
		if dev > allow {
			continue
		}
		if found && dev >= best.OrbDeg {
			continue
		}
		best = Aspect{
			PlanetA:    a.Planet,
			PlanetB:    b.Planet,
			Type:       t,
			Separation: sep,
			OrbDeg:     dev,
			Applying:   isApplying(a, b, t),
			Strength:   1 - dev/allow,
		}
		found = true
	}
	return best, found
}

// applyStepDays is the projection interval for the applying test. It is
// kept well under a day so a fast Moon cannot overshoot an exact aspect
// within one step.
const applyStepDays = 0.01

// isApplying projects both longitudes a short interval forward and
// reports whether the deviation from the exact angle shrinks.
func isApplying(a, b chart.PlanetPosition, t Type) bool {
	now := math.Abs(astro.Separation(a.Longitude, b.Longitude) - t.Angle())
	later := math.Abs(astro.Separation(
		a.Longitude+a.SpeedDegPerDay*applyStepDays,
		b.Longitude+b.SpeedDegPerDay*applyStepDays,
	) - t.Angle())
	return later < now
}

// Between computes aspects across two position sets, one aspect per
// cross pair. Used for transit-to-natal scans, where positions from the
// transit chart are tested against the natal chart.
func Between(transiting, natal []chart.PlanetPosition, cfg OrbConfig) []Aspect {
	types := majorTypes
	if cfg.IncludeMinors {
		types = append(append([]Type{}, majorTypes...), minorTypes...)
	}

	var out []Aspect
	for _, tp := range transiting {
		for _, np := range natal {
			if best, ok := bestAspect(tp, np, types, cfg); ok {
				out = append(out, best)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrbDeg < out[j].OrbDeg })
	return out
}
