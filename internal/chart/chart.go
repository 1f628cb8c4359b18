package chart

import (
	"time"
)

// VedicChart is a complete sidereal chart snapshot: ascendant, cusps, and
// one placement per tracked planet. Charts are immutable once built.
type VedicChart struct {
	Birth        BirthData
	JulianDay    float64
	Ayanamsa     float64 // value applied, degrees
	AyanamsaName string
	Ascendant    float64 // sidereal
	Midheaven    float64 // sidereal
	Positions    []PlanetPosition
	Cusps        [12]float64 // sidereal; index 0 is house 1
	HouseSystem  HouseSystem
	CalculatedAt time.Time
}

// Position returns the placement of a planet, if tracked.
func (c *VedicChart) Position(p Planet) (PlanetPosition, bool) {
	for _, pos := range c.Positions {
		if pos.Planet == p {
			return pos, true
		}
	}
	return PlanetPosition{}, false
}

// AscendantSign returns the rising sign.
func (c *VedicChart) AscendantSign() Sign {
	return Sign(int(c.Ascendant/30) % 12)
}
