// Package varga derives divisional (varga) charts from a natal chart by
// the classical sign-partition rules. Every mapping here is a pure function
// of the input longitude and the division type.
package varga

import (
	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

// Division identifies a divisional chart type by its division count.
type Division int

const (
	D1  Division = 1  // Rasi
	D2  Division = 2  // Hora
	D3  Division = 3  // Drekkana
	D4  Division = 4  // Chaturthamsa
	D7  Division = 7  // Saptamsa
	D9  Division = 9  // Navamsa
	D10 Division = 10 // Dasamsa
	D12 Division = 12 // Dvadasamsa
	D16 Division = 16 // Shodasamsa
	D20 Division = 20 // Vimsamsa
	D24 Division = 24 // Chaturvimsamsa
	D27 Division = 27 // Bhamsa
	D30 Division = 30 // Trimsamsa
	D40 Division = 40 // Khavedamsa
	D45 Division = 45 // Akshavedamsa
	D60 Division = 60 // Shashtyamsa
)

// Divisions lists the supported types in ascending order.
var Divisions = []Division{D1, D2, D3, D4, D7, D9, D10, D12, D16, D20, D24, D27, D30, D40, D45, D60}

var divisionNames = map[Division]string{
	D1: "Rasi", D2: "Hora", D3: "Drekkana", D4: "Chaturthamsa",
	D7: "Saptamsa", D9: "Navamsa", D10: "Dasamsa", D12: "Dvadasamsa",
	D16: "Shodasamsa", D20: "Vimsamsa", D24: "Chaturvimsamsa", D27: "Bhamsa",
	D30: "Trimsamsa", D40: "Khavedamsa", D45: "Akshavedamsa", D60: "Shashtyamsa",
}

// Name returns the classical name of the division.
func (d Division) Name() string {
	if n, ok := divisionNames[d]; ok {
		return n
	}
	return "unknown"
}

// Parts returns the number of equal parts each sign is divided into.
func (d Division) Parts() int {
	return int(d)
}

// DivisionalLongitude maps a D1 sidereal longitude into the divisional
// chart's longitude. The partition arithmetic is identical for every
// division; only the starting-sign rule differs per type.
func DivisionalLongitude(lon float64, d Division) float64 {
	lon = astro.NormalizeDegree(lon)
	sign := chart.Sign(astro.SignIndex(lon))
	inSign := astro.DegreeInSign(lon)

	n := d.Parts()
	partSpan := astro.SignSpan / float64(n)

	part := int(inSign / partSpan)
	// Longitudes landing exactly on a 30-degree boundary can produce
	// part == n under floating point; clamp to the valid range.
	if part >= n {
		part = n - 1
	}
	if part < 0 {
		part = 0
	}

	start := startingSign(sign, d)
	step := stride(d)
	if d == D2 && sign.IsOdd() {
		// Odd-sign horas run Leo then Cancer; a hora chart never
		// contains any other sign.
		step = -1
	}
	divSign := boundWrap(int(start) + part*step)

	// Position within the part, rescaled to a full 30-degree sign.
	within := (inSign - float64(part)*partSpan) / partSpan * astro.SignSpan

	return astro.NormalizeDegree(float64(divSign)*astro.SignSpan + within)
}

// startingSign returns the sign the division's parts count from, per the
// classical rule for each division type.
func startingSign(s chart.Sign, d Division) chart.Sign {
	switch d {
	case D1, D12, D60:
		// Counted from the occupied sign itself.
		return s

	case D2:
		// Hora: odd signs alternate Leo/Cancer, even signs Cancer/Leo.
		if s.IsOdd() {
			return chart.Leo
		}
		return chart.Cancer

	case D3:
		// Drekkana: 1st, 5th and 9th from the occupied sign.
		// Achieved by stepping 4 signs per part.
		return s // parts advance by stride 4, see below

	case D4:
		// Chaturthamsa: 1st, 4th, 7th, 10th from the occupied sign.
		return s // stride 3

	case D7:
		// Saptamsa: odd signs count from themselves, even from the 7th.
		if s.IsOdd() {
			return s
		}
		return chart.Sign(boundWrap(int(s) + 6))

	case D9:
		// Navamsa: movable from itself, fixed from the 9th, dual from
		// the 5th.
		switch s.Quality() {
		case chart.Movable:
			return s
		case chart.Fixed:
			return chart.Sign(boundWrap(int(s) + 8))
		default:
			return chart.Sign(boundWrap(int(s) + 4))
		}

	case D10:
		// Dasamsa: odd from itself, even from the 9th.
		if s.IsOdd() {
			return s
		}
		return chart.Sign(boundWrap(int(s) + 8))

	case D16:
		// Shodasamsa: movable from Aries, fixed from Leo, dual from
		// Sagittarius.
		switch s.Quality() {
		case chart.Movable:
			return chart.Aries
		case chart.Fixed:
			return chart.Leo
		default:
			return chart.Sagittarius
		}

	case D20:
		// Vimsamsa: movable from Aries, fixed from Sagittarius, dual
		// from Leo.
		switch s.Quality() {
		case chart.Movable:
			return chart.Aries
		case chart.Fixed:
			return chart.Sagittarius
		default:
			return chart.Leo
		}

	case D24:
		// Chaturvimsamsa: odd from Leo, even from Cancer.
		if s.IsOdd() {
			return chart.Leo
		}
		return chart.Cancer

	case D27:
		// Bhamsa: by element — fire from Aries, earth from Cancer,
		// air from Libra, water from Capricorn.
		return chart.Sign(s.Element() * 3)

	case D30:
		// Trimsamsa: odd from Aries, even from Libra.
		if s.IsOdd() {
			return chart.Aries
		}
		return chart.Libra

	case D40:
		// Khavedamsa: odd from Aries, even from Libra.
		if s.IsOdd() {
			return chart.Aries
		}
		return chart.Libra

	case D45:
		// Akshavedamsa: movable from Aries, fixed from Leo, dual from
		// Sagittarius.
		switch s.Quality() {
		case chart.Movable:
			return chart.Aries
		case chart.Fixed:
			return chart.Leo
		default:
			return chart.Sagittarius
		}

	default:
		return s
	}
}

// stride returns the sign step between consecutive parts. Most divisions
// advance one sign per part; Drekkana and Chaturthamsa jump by trines and
// quadrants respectively.
func stride(d Division) int {
	switch d {
	case D3:
		return 4
	case D4:
		return 3
	default:
		return 1
	}
}

func boundWrap(i int) int {
	return ((i % 12) + 12) % 12
}
