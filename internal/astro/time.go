package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UTC).
const J2000 = 2451545.0

// JulianDay calculates the Julian Day for a given time.
// The time is converted to UTC before conversion.
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Time of day as fraction
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// Treat January/February as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5

	return jd
}

// TimeFromJulianDay converts a Julian Day back to a UTC time.
// Inverse of JulianDay for the Gregorian calendar; sub-second precision.
func TimeFromJulianDay(jd float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f

	var month float64
	if e < 14 {
		month = e - 1
	} else {
		month = e - 13
	}

	var year float64
	if month > 2 {
		year = c - 4716
	} else {
		year = c - 4715
	}

	dayInt := math.Floor(day)
	dayFrac := day - dayInt

	secs := dayFrac * 86400
	h := int(secs / 3600)
	min := int(secs/60) % 60
	s := int(secs) % 60
	ns := int((secs - math.Floor(secs)) * 1e9)

	return time.Date(int(year), time.Month(int(month)), int(dayInt), h, min, s, ns, time.UTC)
}

// GMST calculates Greenwich Mean Sidereal Time in degrees for a Julian Day.
// Uses the IAU 1982 formula.
func GMST(jd float64) float64 {
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDegree(gmst)
}

// LST calculates Local Sidereal Time in degrees for a Julian Day and an
// observer east longitude.
func LST(jd, lonDeg float64) float64 {
	return NormalizeDegree(GMST(jd) + lonDeg)
}

// Obliquity returns the mean obliquity of the ecliptic in degrees for a
// Julian Day (IAU 1980 polynomial).
func Obliquity(jd float64) float64 {
	T := (jd - J2000) / 36525.0
	return 23.439291111 - 0.0130041667*T - 1.638889e-7*T*T + 5.036389e-7*T*T*T
}
