package aspect

import "github.com/litescript/ls-jyotish/internal/chart"

// yogaRule matches a planet pair against a set of aspect types. Pair
// order is ignored.
type yogaRule struct {
	name        string
	description string
	planetA     chart.Planet
	planetB     chart.Planet
	types       []Type
}

// yogaCatalog is the fixed set of named combinations detected from the
// classical aspect list. Strength comes from the underlying aspect's orb
// tightness.
var yogaCatalog = []yogaRule{
	{
		name:        "Raja Yoga",
		description: "Jupiter and Venus in harmonious combination",
		planetA:     chart.Jupiter,
		planetB:     chart.Venus,
		types:       []Type{Conjunction, Trine},
	},
	{
		name:        "Gaja Kesari Yoga",
		description: "Jupiter in a kendra from the Moon",
		planetA:     chart.Jupiter,
		planetB:     chart.Moon,
		types:       []Type{Conjunction, Square, Opposition},
	},
	{
		name:        "Budha-Aditya Yoga",
		description: "Mercury conjunct the Sun",
		planetA:     chart.Sun,
		planetB:     chart.Mercury,
		types:       []Type{Conjunction},
	},
	{
		name:        "Chandra-Mangala Yoga",
		description: "Moon conjunct Mars",
		planetA:     chart.Moon,
		planetB:     chart.Mars,
		types:       []Type{Conjunction},
	},
	{
		name:        "Guru-Chandala Yoga",
		description: "Jupiter conjunct Rahu",
		planetA:     chart.Jupiter,
		planetB:     chart.Rahu,
		types:       []Type{Conjunction},
	},
	{
		name:        "Surya-Guru Yoga",
		description: "Sun and Jupiter in trine",
		planetA:     chart.Sun,
		planetB:     chart.Jupiter,
		types:       []Type{Trine},
	},
}

// YogaMatch is one detected combination with the aspect that formed it.
type YogaMatch struct {
	Name        string
	Description string
	Aspect      Aspect
	Strength    float64 // percent, linear from 100 at exact to 0 at orb edge
}

// DetectYogas scans an aspect list against the fixed combination catalog.
func DetectYogas(aspects []Aspect) []YogaMatch {
	var out []YogaMatch
	for _, rule := range yogaCatalog {
		for _, a := range aspects {
			if !pairMatches(rule, a) {
				continue
			}
			if !typeMatches(rule, a.Type) {
				continue
			}
			out = append(out, YogaMatch{
				Name:        rule.name,
				Description: rule.description,
				Aspect:      a,
				Strength:    a.Strength * 100,
			})
		}
	}
	return out
}

func pairMatches(r yogaRule, a Aspect) bool {
	return (a.PlanetA == r.planetA && a.PlanetB == r.planetB) ||
		(a.PlanetA == r.planetB && a.PlanetB == r.planetA)
}

func typeMatches(r yogaRule, t Type) bool {
	for _, want := range r.types {
		if t == want {
			return true
		}
	}
	return false
}
