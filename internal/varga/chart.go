package varga

import (
	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

// Position is a planet's placement inside a divisional chart. Retrograde
// status carries over from the D1 chart; houses are whole-sign from the
// divisional ascendant.
type Position struct {
	Planet       chart.Planet
	Longitude    float64
	Sign         chart.Sign
	DegreeInSign float64
	Degree       int
	Minute       int
	Second       float64
	Nakshatra    int
	Pada         int
	House        int
	Retrograde   bool
	Vargottama   bool // D9 only: same sign in D1 and D9
}

// DivisionalChart is a derived chart for one division type.
type DivisionalChart struct {
	Division  Division
	Ascendant float64
	Positions []Position
}

// Build derives a divisional chart from a natal chart. The mapping is a
// pure function of the chart's longitudes, so callers may cache results
// per (chart, division) freely.
func Build(c *chart.VedicChart, d Division) *DivisionalChart {
	asc := DivisionalLongitude(c.Ascendant, d)
	ascSign := astro.SignIndex(asc)

	positions := make([]Position, 0, len(c.Positions))
	for _, p := range c.Positions {
		lon := DivisionalLongitude(p.Longitude, d)
		inSign := astro.DegreeInSign(lon)
		deg, min, sec := astro.DMS(inSign)
		sign := astro.SignIndex(lon)

		pos := Position{
			Planet:       p.Planet,
			Longitude:    lon,
			Sign:         chart.Sign(sign),
			DegreeInSign: inSign,
			Degree:       deg,
			Minute:       min,
			Second:       sec,
			Nakshatra:    astro.NakshatraIndex(lon),
			Pada:         astro.Pada(lon),
			House:        ((sign-ascSign)+12)%12 + 1,
			Retrograde:   p.Retrograde,
		}
		if d == D9 {
			pos.Vargottama = IsVargottama(p.Longitude)
		}
		positions = append(positions, pos)
	}

	return &DivisionalChart{
		Division:  d,
		Ascendant: asc,
		Positions: positions,
	}
}

// IsVargottama reports whether a longitude occupies the same sign in the
// D1 and D9 charts.
func IsVargottama(lon float64) bool {
	return astro.SignIndex(lon) == astro.SignIndex(DivisionalLongitude(lon, D9))
}

// BuildAll derives every supported divisional chart for a natal chart.
func BuildAll(c *chart.VedicChart) map[Division]*DivisionalChart {
	out := make(map[Division]*DivisionalChart, len(Divisions))
	for _, d := range Divisions {
		out[d] = Build(c, d)
	}
	return out
}
