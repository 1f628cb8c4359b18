package astro

// Ayanamsa identifies a sidereal offset model. The ayanamsa is subtracted
// from a tropical ecliptic longitude to obtain the sidereal longitude.
type Ayanamsa int

const (
	AyanamsaLahiri Ayanamsa = iota // Chitrapaksha (default)
	AyanamsaRaman
	AyanamsaKrishnamurti
)

// precessionRate is the annual rate of precession in arc-seconds per year
// used by all supported ayanamsa models.
const precessionRate = 50.2719

// Reference ayanamsa values at J2000.0, in degrees.
var ayanamsaAtJ2000 = map[Ayanamsa]float64{
	AyanamsaLahiri:       23.85675,
	AyanamsaRaman:        22.46008,
	AyanamsaKrishnamurti: 23.75012,
}

// String returns the model name.
func (a Ayanamsa) String() string {
	switch a {
	case AyanamsaLahiri:
		return "Lahiri"
	case AyanamsaRaman:
		return "Raman"
	case AyanamsaKrishnamurti:
		return "Krishnamurti"
	default:
		return "unknown"
	}
}

// ParseAyanamsa parses an ayanamsa model name. Unrecognized names fall back
// to Lahiri.
func ParseAyanamsa(s string) Ayanamsa {
	switch s {
	case "raman", "Raman":
		return AyanamsaRaman
	case "krishnamurti", "Krishnamurti", "kp", "KP":
		return AyanamsaKrishnamurti
	default:
		return AyanamsaLahiri
	}
}

// Value returns the ayanamsa offset in degrees for a Julian Day.
// Linear precession from the J2000.0 reference value.
func (a Ayanamsa) Value(jd float64) float64 {
	base, ok := ayanamsaAtJ2000[a]
	if !ok {
		base = ayanamsaAtJ2000[AyanamsaLahiri]
	}
	years := (jd - J2000) / 365.25
	return base + years*precessionRate/3600
}

// ToSidereal converts a tropical longitude to a sidereal longitude under
// this ayanamsa model.
func (a Ayanamsa) ToSidereal(tropicalLon, jd float64) float64 {
	return NormalizeDegree(tropicalLon - a.Value(jd))
}
