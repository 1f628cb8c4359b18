package chart

import (
	"github.com/litescript/ls-jyotish/internal/astro"
)

// PlanetPosition is a planet's sidereal placement within a chart. The
// sign/degree/nakshatra fields are derived from the longitude at
// construction and are never mutated independently of it.
type PlanetPosition struct {
	Planet         Planet
	Longitude      float64 // sidereal, 0-360
	Latitude       float64
	DistanceAU     float64
	SpeedDegPerDay float64

	Sign         Sign
	DegreeInSign float64
	Degree       int // truncated DMS of DegreeInSign
	Minute       int
	Second       float64

	Nakshatra int // 0-26
	Pada      int // 1-4
	House     int // 1-12, assigned by the builder

	Retrograde bool
	Combust    bool
}

// NewPlanetPosition derives a placement from a sidereal longitude. House
// assignment and combustion flagging happen later in the builder, once the
// cusps and the Sun are known.
func NewPlanetPosition(planet Planet, lon, lat, distAU, speed float64, retrograde bool) PlanetPosition {
	lon = astro.NormalizeDegree(lon)
	inSign := astro.DegreeInSign(lon)
	d, m, s := astro.DMS(inSign)

	return PlanetPosition{
		Planet:         planet,
		Longitude:      lon,
		Latitude:       lat,
		DistanceAU:     distAU,
		SpeedDegPerDay: speed,
		Sign:           Sign(astro.SignIndex(lon)),
		DegreeInSign:   inSign,
		Degree:         d,
		Minute:         m,
		Second:         s,
		Nakshatra:      astro.NakshatraIndex(lon),
		Pada:           astro.Pada(lon),
		Retrograde:     retrograde,
	}
}

// Combustion orbs in degrees of separation from the Sun, per planet.
// A retrograde Mercury or Venus uses the tighter orb.
var combustionOrbs = map[Planet]float64{
	Moon:    12,
	Mars:    17,
	Mercury: 14,
	Venus:   10,
	Jupiter: 11,
	Saturn:  15,
}

var combustionOrbsRetro = map[Planet]float64{
	Mercury: 12,
	Venus:   8,
}

// combustionOrb returns the applicable combustion orb for a planet, or
// false for bodies that cannot be combust (the Sun itself, the nodes).
func combustionOrb(p Planet, retrograde bool) (float64, bool) {
	if retrograde {
		if orb, ok := combustionOrbsRetro[p]; ok {
			return orb, true
		}
	}
	orb, ok := combustionOrbs[p]
	return orb, ok
}
