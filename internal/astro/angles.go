// Package astro provides the time and angle primitives shared by every
// calculator: Julian Day conversion, sidereal time, degree normalization,
// shortest-arc separations, and ayanamsa models.
package astro

import (
	"math"
)

const (
	// SignSpan is the width of one zodiac sign in degrees.
	SignSpan = 30.0

	// NakshatraSpan is the width of one lunar mansion in degrees (360/27).
	NakshatraSpan = 360.0 / 27.0

	// PadaSpan is the width of one nakshatra quarter in degrees.
	PadaSpan = NakshatraSpan / 4.0
)

// NormalizeDegree wraps an angle into the range [0, 360).
func NormalizeDegree(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Separation returns the shortest-arc angular distance between two ecliptic
// longitudes. The result is always in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(NormalizeDegree(a) - NormalizeDegree(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedSeparation returns the directed arc from a to b in (-180, 180].
// Positive means b lies ahead of a in zodiacal order.
func SignedSeparation(a, b float64) float64 {
	d := NormalizeDegree(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// Orb returns the shortest-arc distance between an actual separation and an
// exact aspect angle, wrapping through 360.
func Orb(actual, exact float64) float64 {
	return Separation(actual, exact)
}

// SignIndex returns the zodiac sign index (0=Aries .. 11=Pisces) for a
// longitude.
func SignIndex(lon float64) int {
	idx := int(NormalizeDegree(lon) / SignSpan)
	if idx > 11 {
		idx = 11
	}
	return idx
}

// DegreeInSign returns the longitude's offset within its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	return NormalizeDegree(lon) - float64(SignIndex(lon))*SignSpan
}

// NakshatraIndex returns the lunar mansion index (0=Ashwini .. 26=Revati)
// for a longitude.
func NakshatraIndex(lon float64) int {
	idx := int(NormalizeDegree(lon) / NakshatraSpan)
	if idx > 26 {
		idx = 26
	}
	return idx
}

// PositionInNakshatra returns the longitude's offset within its nakshatra,
// in [0, NakshatraSpan).
func PositionInNakshatra(lon float64) float64 {
	return NormalizeDegree(lon) - float64(NakshatraIndex(lon))*NakshatraSpan
}

// Pada returns the nakshatra quarter (1-4) occupied by a longitude.
func Pada(lon float64) int {
	p := int(PositionInNakshatra(lon)/PadaSpan) + 1
	if p > 4 {
		p = 4
	}
	return p
}

// DMS decomposes a degree value into whole degrees, minutes and seconds.
// The decomposition truncates rather than rounds so that formatted output
// never carries a component past its boundary (29°59'59.9" stays in the
// same sign).
func DMS(deg float64) (d, m int, s float64) {
	deg = math.Abs(deg)
	d = int(deg)
	frac := (deg - float64(d)) * 60
	m = int(frac)
	s = (frac - float64(m)) * 60
	return d, m, s
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
