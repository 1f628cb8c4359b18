package aspect

import "github.com/litescript/ls-jyotish/internal/chart"

// drishtiOffsets lists the forward sign counts each planet casts its
// special aspect on, counted inclusively from its own sign. Every planet
// has the 7th; Mars, Jupiter, Saturn and the nodes add their classical
// extras.
var drishtiOffsets = map[chart.Planet][]int{
	chart.Sun:     {7},
	chart.Moon:    {7},
	chart.Mars:    {4, 7, 8},
	chart.Mercury: {7},
	chart.Jupiter: {5, 7, 9},
	chart.Venus:   {7},
	chart.Saturn:  {3, 7, 10},
	chart.Rahu:    {5, 7, 9},
	chart.Ketu:    {5, 7, 9},
}

// Drishti is one Vedic special aspect cast from one planet onto another.
// These are sign-counted, not angular: a planet aspects whole signs at
// fixed counts from its own, regardless of degree.
type Drishti struct {
	From  chart.Planet
	To    chart.Planet
	Count int // inclusive sign count from aspecting planet, 1-12
}

// GrahaDrishti returns every special aspect present among the chart's
// planets.
func GrahaDrishti(positions []chart.PlanetPosition) []Drishti {
	var out []Drishti
	for _, from := range positions {
		offsets, ok := drishtiOffsets[from.Planet]
		if !ok {
			offsets = []int{7}
		}
		for _, to := range positions {
			if from.Planet == to.Planet {
				continue
			}
			count := signCount(from.Sign, to.Sign)
			for _, off := range offsets {
				if count == off {
					out = append(out, Drishti{From: from.Planet, To: to.Planet, Count: count})
					break
				}
			}
		}
	}
	return out
}

// Aspects reports whether from casts a special aspect on the given sign.
func Aspects(from chart.PlanetPosition, target chart.Sign) bool {
	offsets, ok := drishtiOffsets[from.Planet]
	if !ok {
		offsets = []int{7}
	}
	count := signCount(from.Sign, target)
	for _, off := range offsets {
		if count == off {
			return true
		}
	}
	return false
}

// signCount is the inclusive count from one sign to another, 1-12.
func signCount(from, to chart.Sign) int {
	return (int(to)-int(from)+12)%12 + 1
}
