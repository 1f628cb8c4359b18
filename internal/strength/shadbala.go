// Package strength implements the Shadbala six-fold planetary strength
// system: positional, directional, temporal, motional, natural and
// aspectual scores in virupas, with per-planet pass thresholds.
package strength

import (
	"math"
	"time"

	"github.com/litescript/ls-jyotish/internal/aspect"
	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/varga"
)

// Rating buckets total strength as a percentage of the planet's
// required minimum. Exactly 100 percent rates Average.
type Rating int

const (
	ExtremelyWeak Rating = iota
	VeryWeak
	Weak
	Average
	AboveAverage
	Strong
	VeryStrong
	ExtremelyStrong
)

var ratingNames = [...]string{
	"Extremely Weak", "Very Weak", "Weak", "Average",
	"Above Average", "Strong", "Very Strong", "Extremely Strong",
}

func (r Rating) String() string {
	if r < 0 || int(r) >= len(ratingNames) {
		return "unknown"
	}
	return ratingNames[r]
}

// Breakdown holds the six component scores in virupas.
type Breakdown struct {
	Sthana     float64 // positional
	Dig        float64 // directional
	Kala       float64 // temporal
	Chesta     float64 // motional
	Naisargika float64 // natural
	Drik       float64 // aspectual
}

// Result is one planet's full strength assessment.
type Result struct {
	Planet        chart.Planet
	Breakdown     Breakdown
	TotalVirupas  float64
	Rupas         float64
	RequiredRupas float64
	Percent       float64 // of required
	IsStrong      bool
	Rating        Rating
}

// Calculate evaluates Shadbala for every planet in the chart. The orb
// configuration feeds the aspectual (Drik) component. Planets missing
// from a rule table score that component's documented default rather
// than failing.
func Calculate(c *chart.VedicChart, orbs aspect.OrbConfig) []Result {
	day := isDayBirth(c)
	aspects := aspect.Calculate(c.Positions, orbs)
	war := yuddhaAdjustments(c.Positions)

	results := make([]Result, 0, len(c.Positions))
	for _, p := range c.Positions {
		b := Breakdown{
			Sthana:     sthanaBala(p),
			Dig:        digBala(p),
			Kala:       kalaBala(c, p, day) + war[p.Planet],
			Chesta:     chestaBala(p),
			Naisargika: naisargikaVirupas[p.Planet],
			Drik:       drikBala(p.Planet, aspects),
		}

		total := b.Sthana + b.Dig + b.Kala + b.Chesta + b.Naisargika + b.Drik
		rupas := total / 60
		required := requiredRupas[p.Planet]
		if required == 0 {
			required = 5.0
		}
		percent := 100 * rupas / required

		results = append(results, Result{
			Planet:        p.Planet,
			Breakdown:     b,
			TotalVirupas:  total,
			Rupas:         rupas,
			RequiredRupas: required,
			Percent:       percent,
			IsStrong:      rupas >= required,
			Rating:        ratingFor(percent),
		})
	}
	return results
}

func ratingFor(percent float64) Rating {
	switch {
	case percent < 40:
		return ExtremelyWeak
	case percent < 60:
		return VeryWeak
	case percent < 85:
		return Weak
	case percent <= 100:
		return Average
	case percent < 115:
		return AboveAverage
	case percent < 130:
		return Strong
	case percent < 150:
		return VeryStrong
	default:
		return ExtremelyStrong
	}
}

// isDayBirth checks whether the Sun stands above the horizon, houses
// 7 through 12.
func isDayBirth(c *chart.VedicChart) bool {
	for _, p := range c.Positions {
		if p.Planet == chart.Sun {
			return p.House >= 7
		}
	}
	return true
}

// --- Sthana (positional) ---

func sthanaBala(p chart.PlanetPosition) float64 {
	return ucchaBala(p) + saptavargajaBala(p) + ojhayugmaBala(p) +
		kendradiBala(p) + drekkanaBala(p)
}

// ucchaBala scales linearly with distance from the debilitation point:
// 60 virupas at deep exaltation, 0 at deep debilitation.
func ucchaBala(p chart.PlanetPosition) float64 {
	exalt, ok := exaltationDeg[p.Planet]
	if !ok {
		return 0
	}
	debil := astro.NormalizeDegree(exalt + 180)
	return astro.Separation(p.Longitude, debil) / 3
}

// dignity tier values for the divisional score, best to worst.
const (
	tierExalted      = 3.0
	tierMoolatrikona = 2.7
	tierOwn          = 2.4
	tierFriend       = 1.8
	tierNeutral      = 1.2
	tierEnemy        = 0.6
	tierDebilitated  = 0.3
)

func dignityTier(p chart.Planet, s chart.Sign) float64 {
	if exalt, ok := exaltationDeg[p]; ok {
		if chart.Sign(astro.SignIndex(exalt)) == s {
			return tierExalted
		}
		if chart.Sign(astro.SignIndex(exalt+180)) == s {
			return tierDebilitated
		}
	}
	if moolatrikonaSign[p] == s {
		return tierMoolatrikona
	}
	if ownsSign(p, s) {
		return tierOwn
	}
	switch relationTo(p, s.Lord()) {
	case RelationFriend:
		return tierFriend
	case RelationEnemy:
		return tierEnemy
	default:
		return tierNeutral
	}
}

// saptavargajaBala sums weighted dignity tiers across six divisional
// charts. Weights total 20 and tiers peak at 3, so the maximum is 60.
func saptavargajaBala(p chart.PlanetPosition) float64 {
	var total float64
	for _, d := range saptavargaDivisions {
		divLon := varga.DivisionalLongitude(p.Longitude, d)
		sign := chart.Sign(astro.SignIndex(divLon))
		total += saptavargaWeights[d] * dignityTier(p.Planet, sign)
	}
	return total
}

// ojhayugmaBala awards 15 virupas when the planet stands in its
// preferred sign parity. Moon and Venus prefer even signs.
func ojhayugmaBala(p chart.PlanetPosition) float64 {
	prefersEven := p.Planet == chart.Moon || p.Planet == chart.Venus
	if p.Sign.IsOdd() != prefersEven {
		return 15
	}
	return 0
}

// kendradiBala: angular houses 60, succedent 30, cadent 15.
func kendradiBala(p chart.PlanetPosition) float64 {
	switch (p.House - 1) % 3 {
	case 0:
		return 60
	case 1:
		return 30
	default:
		return 15
	}
}

// drekkanaBala awards 15 virupas by decanate: male planets in the
// first, neutral in the second, female in the third.
func drekkanaBala(p chart.PlanetPosition) float64 {
	dec := int(p.DegreeInSign / 10)
	if dec > 2 {
		dec = 2
	}
	switch p.Planet {
	case chart.Sun, chart.Mars, chart.Jupiter:
		if dec == 0 {
			return 15
		}
	case chart.Moon, chart.Venus:
		if dec == 2 {
			return 15
		}
	case chart.Mercury, chart.Saturn:
		if dec == 1 {
			return 15
		}
	}
	return 0
}

// --- Dig (directional) ---

// digBala falls off 10 virupas per house step from the planet's ideal
// house, reaching 0 at the opposite house.
func digBala(p chart.PlanetPosition) float64 {
	ideal, ok := digIdealHouse[p.Planet]
	if !ok {
		return 0
	}
	d := p.House - ideal
	if d < 0 {
		d = -d
	}
	if d > 6 {
		d = 12 - d
	}
	return float64(60 - 10*d)
}

// --- Kala (temporal) ---

func kalaBala(c *chart.VedicChart, p chart.PlanetPosition, day bool) float64 {
	return nathonnathaBala(p.Planet, day) +
		pakshaBala(c, p.Planet) +
		tribhagaBala(c, p.Planet, day) +
		lordshipBala(c, p.Planet) +
		ayanaBala(c, p)
}

// nathonnathaBala: day planets score by day, night planets by night,
// Mercury always.
func nathonnathaBala(p chart.Planet, day bool) float64 {
	if p == chart.Mercury {
		return 60
	}
	if day && dayPlanets[p] {
		return 60
	}
	if !day && nightPlanets[p] {
		return 60
	}
	return 0
}

// pakshaBala scales with the Moon-Sun elongation folded to [0,180]:
// benefics strengthen toward full moon, malefics toward new.
func pakshaBala(c *chart.VedicChart, p chart.Planet) float64 {
	sun, okSun := c.Position(chart.Sun)
	moon, okMoon := c.Position(chart.Moon)
	if !okSun || !okMoon {
		return 0
	}
	e := astro.Separation(moon.Longitude, sun.Longitude)
	if p.IsNaturalBenefic() {
		return e / 3
	}
	return (180 - e) / 3
}

// tribhagaBala awards 60 to the lord of the current third of the day or
// night, approximated from the Sun's house. Jupiter always scores.
func tribhagaBala(c *chart.VedicChart, p chart.Planet, day bool) float64 {
	if p == chart.Jupiter {
		return 60
	}
	sun, ok := c.Position(chart.Sun)
	if !ok {
		return 0
	}

	var lord chart.Planet
	if day {
		// Above-horizon houses run 12 down to 7 from sunrise to sunset.
		switch sun.House {
		case 12, 11:
			lord = chart.Mercury
		case 10, 9:
			lord = chart.Sun
		default:
			lord = chart.Saturn
		}
	} else {
		switch sun.House {
		case 6, 5:
			lord = chart.Moon
		case 4, 3:
			lord = chart.Venus
		default:
			lord = chart.Mars
		}
	}
	if p == lord {
		return 60
	}
	return 0
}

// lordshipBala grants the hour, weekday, month and year lords fixed
// bonuses of 60, 45, 30 and 15 virupas. The month and year lords are
// the weekday lords of the first civil day of the month and year.
func lordshipBala(c *chart.VedicChart, p chart.Planet) float64 {
	t := c.Birth.DateTime

	var total float64
	if p == horaLordAt(t) {
		total += 60
	}
	if p == weekdayLords[int(t.Weekday())] {
		total += 45
	}
	monthStart := t.AddDate(0, 0, 1-t.Day())
	if p == weekdayLords[int(monthStart.Weekday())] {
		total += 30
	}
	yearStart := t.AddDate(0, int(1-t.Month()), 1-t.Day())
	if p == weekdayLords[int(yearStart.Weekday())] {
		total += 15
	}
	return total
}

// horaLordAt walks the planetary-hour sequence from the weekday lord's
// slot, with the day's first hora anchored at 06:00 local time.
func horaLordAt(t time.Time) chart.Planet {
	dayLord := weekdayLords[int(t.Weekday())]
	start := 0
	for i, p := range horaOrder {
		if p == dayLord {
			start = i
			break
		}
	}
	hours := t.Hour() - 6
	if hours < 0 {
		hours += 24
	}
	return horaOrder[(start+hours)%7]
}

// maxDeclinationDeg is the obliquity constant the Ayana approximation
// uses. The declination here is a sine approximation keyed on ecliptic
// longitude alone, kept for compatibility with reference outputs.
const maxDeclinationDeg = 23.44

// ayanaBala maps the approximate declination onto 0-60 virupas around a
// 30-virupa midpoint. Mercury benefits from declination magnitude in
// either hemisphere; planets outside the tables hold the midpoint.
func ayanaBala(c *chart.VedicChart, p chart.PlanetPosition) float64 {
	tropical := p.Longitude + c.Ayanamsa
	decl := maxDeclinationDeg * math.Sin(tropical*math.Pi/180)

	scale := 30 / maxDeclinationDeg
	var v float64
	switch {
	case p.Planet == chart.Mercury:
		v = 30 + math.Abs(decl)*scale
	case northFavoring[p.Planet]:
		v = 30 + decl*scale
	case southFavoring[p.Planet]:
		v = 30 - decl*scale
	default:
		v = 30
	}
	if v < 0 {
		return 0
	}
	if v > 60 {
		return 60
	}
	return v
}

// yuddhaAdjustments finds planetary wars: two eligible planets within
// one degree of longitude. The brighter planet gains 30 virupas, the
// dimmer loses 30.
func yuddhaAdjustments(positions []chart.PlanetPosition) map[chart.Planet]float64 {
	adj := make(map[chart.Planet]float64)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a, b := positions[i], positions[j]
			if !yuddhaPlanets[a.Planet] || !yuddhaPlanets[b.Planet] {
				continue
			}
			if astro.Separation(a.Longitude, b.Longitude) >= 1 {
				continue
			}
			if brightnessRank[a.Planet] < brightnessRank[b.Planet] {
				adj[a.Planet] += 30
				adj[b.Planet] -= 30
			} else {
				adj[b.Planet] += 30
				adj[a.Planet] -= 30
			}
		}
	}
	return adj
}

// --- Chesta (motional) ---

// chestaBala rewards slow and retrograde motion. The luminaries, which
// never retrograde, score zero by definition; so do the nodes, which
// have no direct-motion baseline.
func chestaBala(p chart.PlanetPosition) float64 {
	if p.Planet == chart.Sun || p.Planet == chart.Moon {
		return 0
	}
	mean, ok := meanSpeedDegPerDay[p.Planet]
	if !ok {
		return 0
	}
	if p.Retrograde {
		return 60
	}
	speed := math.Abs(p.SpeedDegPerDay)
	switch {
	case speed < 0.1*mean:
		return 50
	case speed < 0.5*mean:
		return 40
	case speed < mean:
		return 30
	default:
		return 20
	}
}

// --- Drik (aspectual) ---

// drikBala sums aspect strength weighted by the aspecting planet's
// nature, +15 per full-strength benefic aspect, -10 per malefic, and
// clamps the sum to [-30, 60].
func drikBala(p chart.Planet, aspects []aspect.Aspect) float64 {
	var total float64
	for _, a := range aspects {
		var other chart.Planet
		switch p {
		case a.PlanetA:
			other = a.PlanetB
		case a.PlanetB:
			other = a.PlanetA
		default:
			continue
		}
		if other.IsNaturalBenefic() {
			total += 15 * a.Strength
		} else {
			total -= 10 * a.Strength
		}
	}
	if total < -30 {
		return -30
	}
	if total > 60 {
		return 60
	}
	return total
}
