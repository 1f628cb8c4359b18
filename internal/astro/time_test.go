package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
		tol      float64
	}{
		{
			name:     "J2000 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
			tol:      0.0001,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
			tol:      0.0001,
		},
		{
			name:     "Known date 2024-01-01 00:00 UTC",
			time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2460310.5,
			tol:      0.0001,
		},
		{
			name:     "non-UTC input converted",
			time:     time.Date(2000, 1, 1, 17, 30, 0, 0, time.FixedZone("IST", 5*3600+1800)),
			expected: 2451545.0,
			tol:      0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.time)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDay() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestTimeFromJulianDay_RoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1987, 6, 19, 4, 30, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, in := range times {
		jd := JulianDay(in)
		out := TimeFromJulianDay(jd)
		if d := out.Sub(in); d > time.Second || d < -time.Second {
			t.Errorf("round trip for %v drifted by %v (got %v)", in, d, out)
		}
	}
}

func TestGMST(t *testing.T) {
	// At J2000 epoch, GMST should be approximately 280.46 degrees.
	gmst := GMST(J2000)
	if math.Abs(gmst-280.46) > 0.1 {
		t.Errorf("GMST at J2000 = %v, want ~280.46", gmst)
	}
	if gmst < 0 || gmst >= 360 {
		t.Errorf("GMST out of range: %v", gmst)
	}
}

func TestObliquity(t *testing.T) {
	// Mean obliquity at J2000 is 23.4393 degrees, slowly decreasing.
	eps := Obliquity(J2000)
	if math.Abs(eps-23.4393) > 0.001 {
		t.Errorf("Obliquity at J2000 = %v, want ~23.4393", eps)
	}
	if later := Obliquity(J2000 + 36525); later >= eps {
		t.Errorf("obliquity should decrease over a century: %v -> %v", eps, later)
	}
}

func TestAyanamsaValue(t *testing.T) {
	// Lahiri ayanamsa is ~23.86 at J2000 and grows ~50.27 arcsec/year.
	lahiri := AyanamsaLahiri.Value(J2000)
	if math.Abs(lahiri-23.85675) > 1e-9 {
		t.Errorf("Lahiri at J2000 = %v, want 23.85675", lahiri)
	}

	century := AyanamsaLahiri.Value(J2000 + 36525)
	expectedDrift := 100 * precessionRate / 3600
	if math.Abs((century-lahiri)-expectedDrift) > 1e-9 {
		t.Errorf("Lahiri drift over a century = %v, want %v", century-lahiri, expectedDrift)
	}

	// Models are ordered: Raman < Krishnamurti < Lahiri at any epoch.
	if !(AyanamsaRaman.Value(J2000) < AyanamsaKrishnamurti.Value(J2000) &&
		AyanamsaKrishnamurti.Value(J2000) < AyanamsaLahiri.Value(J2000)) {
		t.Error("ayanamsa model ordering violated at J2000")
	}
}

func TestToSidereal(t *testing.T) {
	// Tropical 0 Aries minus ~23.86 ayanamsa lands in sidereal Pisces.
	sid := AyanamsaLahiri.ToSidereal(0, J2000)
	if math.Abs(sid-(360-23.85675)) > 1e-9 {
		t.Errorf("ToSidereal(0) = %v, want %v", sid, 360-23.85675)
	}
}

func TestAscendantAndMidheaven_Range(t *testing.T) {
	jd := JulianDay(time.Date(1990, 5, 15, 6, 30, 0, 0, time.UTC))

	for _, lat := range []float64{-45, 0, 28.6, 51.5} {
		asc := Ascendant(jd, lat, 77.2)
		if asc < 0 || asc >= 360 {
			t.Errorf("Ascendant at lat %v out of range: %v", lat, asc)
		}
	}

	mc := Midheaven(jd, 77.2)
	if mc < 0 || mc >= 360 {
		t.Errorf("Midheaven out of range: %v", mc)
	}
}

func TestAscendant_EquatorOffsetFromMC(t *testing.T) {
	// At the equator the ascendant leads the midheaven by roughly a quadrant.
	jd := JulianDay(time.Date(2020, 3, 20, 12, 0, 0, 0, time.UTC))
	asc := Ascendant(jd, 0, 0)
	mc := Midheaven(jd, 0)

	diff := NormalizeDegree(asc - mc)
	if diff < 80 || diff > 100 {
		t.Errorf("Asc-MC separation at equator = %v, want ~90", diff)
	}
}
