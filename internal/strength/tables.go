package strength

import (
	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/varga"
)

// exaltationDeg is the absolute longitude of each planet's deepest
// exaltation. The debilitation point sits exactly opposite. Nodes are
// absent; they score zero on exaltation strength.
var exaltationDeg = map[chart.Planet]float64{
	chart.Sun:     10,  // 10 Aries
	chart.Moon:    33,  // 3 Taurus
	chart.Mars:    298, // 28 Capricorn
	chart.Mercury: 165, // 15 Virgo
	chart.Jupiter: 95,  // 5 Cancer
	chart.Venus:   357, // 27 Pisces
	chart.Saturn:  200, // 20 Libra
}

// moolatrikonaSign is the sign each planet holds in moolatrikona
// dignity. Degree ranges are intentionally not modeled; divisional
// dignity is evaluated at sign granularity.
var moolatrikonaSign = map[chart.Planet]chart.Sign{
	chart.Sun:     chart.Leo,
	chart.Moon:    chart.Taurus,
	chart.Mars:    chart.Aries,
	chart.Mercury: chart.Virgo,
	chart.Jupiter: chart.Sagittarius,
	chart.Venus:   chart.Libra,
	chart.Saturn:  chart.Aquarius,
}

// Relation is a planet's disposition toward another planet's sign lord.
type Relation int

const (
	RelationEnemy Relation = iota
	RelationNeutral
	RelationFriend
)

// friendships is the classical natural-friendship table. A missing
// entry reads as neutral, which covers the nodes and any outer body.
var friendships = map[chart.Planet]map[chart.Planet]Relation{
	chart.Sun: {
		chart.Moon: RelationFriend, chart.Mars: RelationFriend, chart.Jupiter: RelationFriend,
		chart.Mercury: RelationNeutral,
		chart.Venus:   RelationEnemy, chart.Saturn: RelationEnemy,
	},
	chart.Moon: {
		chart.Sun: RelationFriend, chart.Mercury: RelationFriend,
		chart.Mars: RelationNeutral, chart.Jupiter: RelationNeutral,
		chart.Venus: RelationNeutral, chart.Saturn: RelationNeutral,
	},
	chart.Mars: {
		chart.Sun: RelationFriend, chart.Moon: RelationFriend, chart.Jupiter: RelationFriend,
		chart.Venus: RelationNeutral, chart.Saturn: RelationNeutral,
		chart.Mercury: RelationEnemy,
	},
	chart.Mercury: {
		chart.Sun: RelationFriend, chart.Venus: RelationFriend,
		chart.Mars: RelationNeutral, chart.Jupiter: RelationNeutral, chart.Saturn: RelationNeutral,
		chart.Moon: RelationEnemy,
	},
	chart.Jupiter: {
		chart.Sun: RelationFriend, chart.Moon: RelationFriend, chart.Mars: RelationFriend,
		chart.Saturn: RelationNeutral,
		chart.Mercury: RelationEnemy, chart.Venus: RelationEnemy,
	},
	chart.Venus: {
		chart.Mercury: RelationFriend, chart.Saturn: RelationFriend,
		chart.Mars: RelationNeutral, chart.Jupiter: RelationNeutral,
		chart.Sun: RelationEnemy, chart.Moon: RelationEnemy,
	},
	chart.Saturn: {
		chart.Mercury: RelationFriend, chart.Venus: RelationFriend,
		chart.Jupiter: RelationNeutral,
		chart.Sun: RelationEnemy, chart.Moon: RelationEnemy, chart.Mars: RelationEnemy,
	},
}

// relationTo looks up p's disposition toward other, neutral on any gap.
func relationTo(p, other chart.Planet) Relation {
	if row, ok := friendships[p]; ok {
		if r, ok := row[other]; ok {
			return r
		}
	}
	return RelationNeutral
}

// saptavargaDivisions and their weights for the divisional dignity
// score. Navamsa carries the most weight.
var saptavargaDivisions = []varga.Division{
	varga.D1, varga.D2, varga.D3, varga.D9, varga.D12, varga.D30,
}

var saptavargaWeights = map[varga.Division]float64{
	varga.D1:  5,
	varga.D2:  2,
	varga.D3:  3,
	varga.D9:  6,
	varga.D12: 2,
	varga.D30: 2,
}

// digIdealHouse maps each planet to the house where its directional
// strength peaks: Jupiter and Mercury the ascendant, Moon and Venus the
// nadir, Saturn the descendant, Sun and Mars the midheaven.
var digIdealHouse = map[chart.Planet]int{
	chart.Jupiter: 1,
	chart.Mercury: 1,
	chart.Moon:    4,
	chart.Venus:   4,
	chart.Saturn:  7,
	chart.Sun:     10,
	chart.Mars:    10,
}

// dayPlanets gain the full day/night bonus in a daytime birth, the
// nightPlanets at night. Mercury scores in both.
var dayPlanets = map[chart.Planet]bool{
	chart.Sun: true, chart.Jupiter: true, chart.Venus: true,
}

var nightPlanets = map[chart.Planet]bool{
	chart.Moon: true, chart.Mars: true, chart.Saturn: true,
}

// weekdayLords in Go weekday order, Sunday first.
var weekdayLords = [7]chart.Planet{
	chart.Sun, chart.Moon, chart.Mars, chart.Mercury,
	chart.Jupiter, chart.Venus, chart.Saturn,
}

// horaOrder is the descending-speed sequence the planetary hours cycle
// through.
var horaOrder = [7]chart.Planet{
	chart.Saturn, chart.Jupiter, chart.Mars, chart.Sun,
	chart.Venus, chart.Mercury, chart.Moon,
}

// northFavoring planets gain Ayana Bala at northern declination;
// southFavoring at southern. Mercury gains from declination magnitude
// in either direction.
var northFavoring = map[chart.Planet]bool{
	chart.Sun: true, chart.Mars: true, chart.Jupiter: true, chart.Venus: true,
}

var southFavoring = map[chart.Planet]bool{
	chart.Moon: true, chart.Saturn: true,
}

// yuddhaPlanets can enter a planetary war; luminaries and nodes cannot.
// brightnessRank decides the winner, lower rank wins. The table is kept
// as found in practice even though it has no classical citation for
// every pairing.
var yuddhaPlanets = map[chart.Planet]bool{
	chart.Mars: true, chart.Mercury: true, chart.Jupiter: true,
	chart.Venus: true, chart.Saturn: true,
}

var brightnessRank = map[chart.Planet]int{
	chart.Venus:   1,
	chart.Jupiter: 2,
	chart.Mercury: 3,
	chart.Mars:    4,
	chart.Saturn:  5,
}

// meanSpeedDegPerDay anchors the Chesta Bala speed bands. Geocentric
// long-run averages.
var meanSpeedDegPerDay = map[chart.Planet]float64{
	chart.Mercury: 0.9856,
	chart.Venus:   0.9856,
	chart.Mars:    0.5240,
	chart.Jupiter: 0.0831,
	chart.Saturn:  0.0334,
}

// naisargikaVirupas is the fixed natural-strength ladder, 60 times k/7
// descending Sun through Saturn. Nodes share Saturn's floor value.
var naisargikaVirupas = map[chart.Planet]float64{
	chart.Sun:     60,
	chart.Moon:    60 * 6.0 / 7.0,
	chart.Venus:   60 * 5.0 / 7.0,
	chart.Jupiter: 60 * 4.0 / 7.0,
	chart.Mercury: 60 * 3.0 / 7.0,
	chart.Mars:    60 * 2.0 / 7.0,
	chart.Saturn:  60 * 1.0 / 7.0,
	chart.Rahu:    60 * 1.0 / 7.0,
	chart.Ketu:    60 * 1.0 / 7.0,
}

// requiredRupas is the per-planet minimum for the isStrong verdict.
var requiredRupas = map[chart.Planet]float64{
	chart.Sun:     6.5,
	chart.Moon:    6.0,
	chart.Mars:    5.0,
	chart.Mercury: 7.0,
	chart.Jupiter: 6.5,
	chart.Venus:   5.5,
	chart.Saturn:  5.0,
	chart.Rahu:    5.0,
	chart.Ketu:    5.0,
}

// ownsSign reports whether the planet rules the sign, via the lordship
// already defined on chart.Sign.
func ownsSign(p chart.Planet, s chart.Sign) bool {
	return s.Lord() == p
}
