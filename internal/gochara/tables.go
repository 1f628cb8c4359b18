package gochara

import "github.com/litescript/ls-jyotish/internal/chart"

// favorableHouses lists the house-from-Moon placements that classically
// favor each transiting planet. neutralHouses soften the remainder;
// anything in neither set reads as challenging.
var favorableHouses = map[chart.Planet]map[int]bool{
	chart.Sun:     set(3, 6, 10, 11),
	chart.Moon:    set(1, 3, 6, 7, 10, 11),
	chart.Mars:    set(3, 6, 11),
	chart.Mercury: set(2, 4, 6, 8, 10, 11),
	chart.Jupiter: set(2, 5, 7, 9, 11),
	chart.Venus:   set(1, 2, 3, 4, 5, 8, 9, 11, 12),
	chart.Saturn:  set(3, 6, 11),
	chart.Rahu:    set(3, 6, 11),
	chart.Ketu:    set(3, 6, 11),
}

var neutralHouses = map[chart.Planet]map[int]bool{
	chart.Sun:     set(1, 2, 4),
	chart.Moon:    set(2, 4, 5),
	chart.Mars:    set(1, 2, 10),
	chart.Mercury: set(1, 3, 5),
	chart.Jupiter: set(1, 3, 10),
	chart.Venus:   set(7, 10),
	chart.Saturn:  set(1, 2, 10),
	chart.Rahu:    set(1, 2, 10),
	chart.Ketu:    set(1, 2, 10),
}

// vedhaHouses maps each planet's favorable house to the house whose
// occupation by another planet obstructs the good result.
var vedhaHouses = map[chart.Planet]map[int]int{
	chart.Sun:     {3: 9, 6: 12, 10: 4, 11: 5},
	chart.Moon:    {1: 5, 3: 9, 6: 12, 7: 2, 10: 4, 11: 8},
	chart.Mars:    {3: 12, 6: 9, 11: 5},
	chart.Mercury: {2: 5, 4: 3, 6: 9, 8: 1, 10: 8, 11: 12},
	chart.Jupiter: {2: 12, 5: 4, 7: 3, 9: 10, 11: 8},
	chart.Venus:   {1: 8, 2: 7, 3: 1, 4: 10, 5: 9, 8: 5, 9: 11, 11: 6, 12: 3},
	chart.Saturn:  {3: 12, 6: 9, 11: 5},
	chart.Rahu:    {3: 12, 6: 9, 11: 5},
	chart.Ketu:    {3: 12, 6: 9, 11: 5},
}

// vedhaExempt pairs never obstruct each other: the Sun with Saturn and
// the Moon with Mercury.
func vedhaExempt(a, b chart.Planet) bool {
	return (a == chart.Sun && b == chart.Saturn) ||
		(a == chart.Saturn && b == chart.Sun) ||
		(a == chart.Moon && b == chart.Mercury) ||
		(a == chart.Mercury && b == chart.Moon)
}

// binduTable approximates per-planet transit scores in the Ashtakavarga
// manner: benefic contributions 0-8 per house-from-Moon, indexed by
// house-1. Planets without a row use a flat middling 4.
var binduTable = map[chart.Planet][12]int{
	chart.Sun:     {3, 2, 6, 3, 3, 6, 3, 3, 4, 7, 7, 2},
	chart.Moon:    {6, 4, 6, 4, 4, 6, 5, 3, 4, 6, 7, 3},
	chart.Mars:    {3, 3, 6, 2, 3, 6, 2, 2, 3, 4, 6, 2},
	chart.Mercury: {4, 5, 5, 6, 4, 6, 4, 5, 4, 6, 6, 3},
	chart.Jupiter: {4, 6, 4, 5, 7, 4, 6, 3, 6, 4, 7, 3},
	chart.Venus:   {6, 6, 6, 6, 6, 4, 5, 5, 5, 4, 6, 5},
	chart.Saturn:  {2, 3, 6, 2, 3, 6, 2, 2, 3, 3, 6, 2},
}

const defaultBindus = 4

func bindusFor(p chart.Planet, house int) int {
	row, ok := binduTable[p]
	if !ok {
		return defaultBindus
	}
	if house < 1 || house > 12 {
		return defaultBindus
	}
	return row[house-1]
}

// significantRules drive the rolling period scan: Saturn and the slow
// bodies in the named houses from the natal Moon mark classical
// windows.
type significantRule struct {
	name      string
	planet    chart.Planet
	houses    map[int]bool
	intensity int // 1-5
}

var significantRules = []significantRule{
	{name: "Sade Sati", planet: chart.Saturn, houses: set(12, 1, 2), intensity: 5},
	{name: "Ashtama Shani", planet: chart.Saturn, houses: set(8), intensity: 4},
	{name: "Kantaka Shani", planet: chart.Saturn, houses: set(4), intensity: 3},
	{name: "Jupiter in trine", planet: chart.Jupiter, houses: set(5, 9), intensity: 2},
	{name: "Rahu over the natal Moon axis", planet: chart.Rahu, houses: set(1, 7), intensity: 3},
	{name: "Ketu over the natal Moon axis", planet: chart.Ketu, houses: set(1, 7), intensity: 3},
}

func set(houses ...int) map[int]bool {
	m := make(map[int]bool, len(houses))
	for _, h := range houses {
		m[h] = true
	}
	return m
}
