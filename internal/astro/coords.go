package astro

import (
	"math"
)

// Equatorial holds right ascension and declination in degrees.
type Equatorial struct {
	RADeg  float64 // 0-360
	DecDeg float64 // -90 to +90
}

// EclipticToEquatorial converts ecliptic longitude/latitude (degrees) to
// equatorial coordinates for the obliquity at the given Julian Day.
func EclipticToEquatorial(lonDeg, latDeg, jd float64) Equatorial {
	eps := degToRad(Obliquity(jd))
	lon := degToRad(lonDeg)
	lat := degToRad(latDeg)

	sinDec := math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon)
	dec := math.Asin(clamp(sinDec, -1, 1))

	y := math.Sin(lon)*math.Cos(eps) - math.Tan(lat)*math.Sin(eps)
	x := math.Cos(lon)
	ra := math.Atan2(y, x)

	return Equatorial{
		RADeg:  NormalizeDegree(radToDeg(ra)),
		DecDeg: radToDeg(dec),
	}
}

// Altitude returns the altitude in degrees of an equatorial position seen
// from latitude latDeg when the local sidereal time is lstDeg.
func Altitude(eq Equatorial, latDeg, lstDeg float64) float64 {
	lat := degToRad(latDeg)
	dec := degToRad(eq.DecDeg)
	ha := degToRad(NormalizeDegree(lstDeg - eq.RADeg))

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	return radToDeg(math.Asin(clamp(sinAlt, -1, 1)))
}

// Ascendant returns the tropical ecliptic longitude of the ascendant for a
// Julian Day and geographic position (Meeus, ch. 12).
func Ascendant(jd, latDeg, lonDeg float64) float64 {
	ramc := degToRad(LST(jd, lonDeg))
	eps := degToRad(Obliquity(jd))
	lat := degToRad(latDeg)

	y := -math.Cos(ramc)
	x := math.Sin(ramc)*math.Cos(eps) + math.Tan(lat)*math.Sin(eps)

	asc := radToDeg(math.Atan2(y, x)) + 180
	return NormalizeDegree(asc)
}

// Midheaven returns the tropical ecliptic longitude of the midheaven (MC)
// for a Julian Day and observer east longitude.
func Midheaven(jd, lonDeg float64) float64 {
	ramc := degToRad(LST(jd, lonDeg))
	eps := degToRad(Obliquity(jd))

	mc := radToDeg(math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(eps)))
	return NormalizeDegree(mc)
}
