package chart

import (
	"math"

	"github.com/litescript/ls-jyotish/internal/astro"
)

// HouseSystem selects the cusp computation strategy.
type HouseSystem int

const (
	Placidus HouseSystem = iota // default
	Equal
	WholeSign
)

// String returns the house system name.
func (h HouseSystem) String() string {
	switch h {
	case Placidus:
		return "Placidus"
	case Equal:
		return "Equal"
	case WholeSign:
		return "Whole Sign"
	default:
		return "unknown"
	}
}

// ParseHouseSystem parses a house system name, defaulting to Placidus.
func ParseHouseSystem(s string) HouseSystem {
	switch s {
	case "equal", "Equal":
		return Equal
	case "whole", "whole-sign", "Whole Sign", "wholesign":
		return WholeSign
	default:
		return Placidus
	}
}

// placidusLatLimit is the latitude beyond which the Placidus construction
// degenerates (polar circles). Above it the builder falls back to Equal
// cusps from the same ascendant.
const placidusLatLimit = 66.5

// houseCusps computes the twelve tropical cusp longitudes for a moment and
// place. Cusp index 0 holds house 1 (the ascendant).
func houseCusps(system HouseSystem, jd, latDeg, lonDeg float64) [12]float64 {
	asc := astro.Ascendant(jd, latDeg, lonDeg)
	mc := astro.Midheaven(jd, lonDeg)

	switch system {
	case WholeSign:
		return wholeSignCusps(asc)
	case Equal:
		return equalCusps(asc)
	default:
		if math.Abs(latDeg) >= placidusLatLimit {
			return equalCusps(asc)
		}
		return placidusCusps(jd, latDeg, lonDeg, asc, mc)
	}
}

func equalCusps(asc float64) [12]float64 {
	var cusps [12]float64
	for i := 0; i < 12; i++ {
		cusps[i] = astro.NormalizeDegree(asc + float64(i)*30)
	}
	return cusps
}

func wholeSignCusps(asc float64) [12]float64 {
	var cusps [12]float64
	start := float64(astro.SignIndex(asc)) * 30
	for i := 0; i < 12; i++ {
		cusps[i] = astro.NormalizeDegree(start + float64(i)*30)
	}
	return cusps
}

// placidusCusps computes Placidus intermediate cusps by the standard
// iterative semi-arc method: cusps 11/12/2/3 are solved directly, the rest
// follow from the angles and opposition.
func placidusCusps(jd, latDeg, lonDeg, asc, mc float64) [12]float64 {
	ramc := astro.LST(jd, lonDeg)
	eps := astro.Obliquity(jd)

	c11 := placidusCusp(ramc, 30, 1.0/3.0, latDeg, eps)
	c12 := placidusCusp(ramc, 60, 2.0/3.0, latDeg, eps)
	c2 := placidusCusp(ramc, 120, 2.0/3.0, latDeg, eps)
	c3 := placidusCusp(ramc, 150, 1.0/3.0, latDeg, eps)

	var cusps [12]float64
	cusps[0] = asc
	cusps[1] = c2
	cusps[2] = c3
	cusps[3] = astro.NormalizeDegree(mc + 180)
	cusps[4] = astro.NormalizeDegree(c11 + 180)
	cusps[5] = astro.NormalizeDegree(c12 + 180)
	cusps[6] = astro.NormalizeDegree(asc + 180)
	cusps[7] = astro.NormalizeDegree(c2 + 180)
	cusps[8] = astro.NormalizeDegree(c3 + 180)
	cusps[9] = mc
	cusps[10] = c11
	cusps[11] = c12
	return cusps
}

// placidusCusp solves one intermediate cusp: the ecliptic degree whose
// fraction of its semi-arc matches the cusp's meridian offset. The pole
// height is re-derived from the candidate's declination each pass;
// poleAscendant keeps every iterate in the quadrant of the cusp's right
// ascension, so the nocturnal cusps cannot converge onto the mirrored
// horizon branch. Converges in a handful of iterations at non-polar
// latitudes.
func placidusCusp(ramcDeg, offsetDeg, frac, latDeg, epsDeg float64) float64 {
	ra := astro.NormalizeDegree(ramcDeg + offsetDeg)
	sinEps := math.Sin(degToRad(epsDeg))
	cosEps := math.Cos(degToRad(epsDeg))
	tanLat := math.Tan(degToRad(latDeg))

	lon := poleAscendant(ra, radToDeg(math.Atan(tanLat*frac)), sinEps, cosEps)
	for i := 0; i < 30; i++ {
		tanDec := math.Tan(math.Asin(sinEps * math.Sin(degToRad(lon))))
		if math.Abs(tanDec) < 1e-12 {
			lon = ra
			break
		}
		ad := math.Asin(clampUnit(tanLat * tanDec))
		pole := radToDeg(math.Atan(math.Sin(ad*frac) / tanDec))
		next := poleAscendant(ra, pole, sinEps, cosEps)

		if math.Abs(astro.SignedSeparation(lon, next)) < 1e-9 {
			lon = next
			break
		}
		lon = next
	}
	return astro.NormalizeDegree(lon)
}

// poleAscendant is the ascendant formula evaluated for an arbitrary pole
// height, dispatched by quadrant of the right ascension so the result
// stays on the same side of the meridian as the cusp it solves.
func poleAscendant(raDeg, poleDeg, sinEps, cosEps float64) float64 {
	ra := astro.NormalizeDegree(raDeg)
	var lon float64
	switch {
	case ra < 90:
		lon = poleAscQuadrant(ra, poleDeg, sinEps, cosEps)
	case ra < 180:
		lon = 180 - poleAscQuadrant(180-ra, -poleDeg, sinEps, cosEps)
	case ra < 270:
		lon = 180 + poleAscQuadrant(ra-180, -poleDeg, sinEps, cosEps)
	default:
		lon = 360 - poleAscQuadrant(360-ra, poleDeg, sinEps, cosEps)
	}
	return astro.NormalizeDegree(lon)
}

// poleAscQuadrant is the first-quadrant kernel of poleAscendant. Returns
// a longitude in [0, 180].
func poleAscQuadrant(xDeg, poleDeg, sinEps, cosEps float64) float64 {
	sinX := math.Sin(degToRad(xDeg))
	den := cosEps*math.Cos(degToRad(xDeg)) - math.Tan(degToRad(poleDeg))*sinEps

	var lon float64
	switch {
	case math.Abs(sinX) < 1e-12:
		if den < 0 {
			lon = 180
		}
	case math.Abs(den) < 1e-12:
		lon = 90
	default:
		lon = radToDeg(math.Atan(sinX / den))
		if lon < 0 {
			lon += 180
		}
	}
	return lon
}

// houseOf locates a longitude within the cusp intervals, wrapping through
// 360. Returns a house number 1-12.
func houseOf(lon float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		lo := cusps[i]
		hi := cusps[(i+1)%12]
		if inArc(lon, lo, hi) {
			return i + 1
		}
	}
	// Unreachable for well-formed cusps; degrade to the ascendant house.
	return 1
}

// inArc reports whether lon lies in the zodiacal arc [lo, hi), wrapping.
func inArc(lon, lo, hi float64) bool {
	lon = astro.NormalizeDegree(lon)
	lo = astro.NormalizeDegree(lo)
	hi = astro.NormalizeDegree(hi)
	if lo <= hi {
		return lon >= lo && lon < hi
	}
	return lon >= lo || lon < hi
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
