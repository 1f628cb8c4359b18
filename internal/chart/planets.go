// Package chart builds Vedic natal and transit charts: sidereal planetary
// positions with their derived sign, nakshatra, house and dignity flags.
package chart

import (
	"github.com/litescript/ls-jyotish/internal/ephem"
)

// Planet identifies a tracked graha.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Rahu
	Ketu
)

// Planets is the canonical chart order of the tracked set.
var Planets = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu}

var planetNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Rahu", "Ketu"}

// String returns the planet name.
func (p Planet) String() string {
	if p < 0 || int(p) >= len(planetNames) {
		return "unknown"
	}
	return planetNames[p]
}

// Body maps the planet to its provider-level body identifier.
func (p Planet) Body() ephem.Body {
	switch p {
	case Sun:
		return ephem.BodySun
	case Moon:
		return ephem.BodyMoon
	case Mercury:
		return ephem.BodyMercury
	case Venus:
		return ephem.BodyVenus
	case Mars:
		return ephem.BodyMars
	case Jupiter:
		return ephem.BodyJupiter
	case Saturn:
		return ephem.BodySaturn
	case Rahu:
		return ephem.BodyRahu
	default:
		return ephem.BodyKetu
	}
}

// PlanetForBody is the inverse of Planet.Body.
func PlanetForBody(b ephem.Body) (Planet, bool) {
	for _, p := range Planets {
		if p.Body() == b {
			return p, true
		}
	}
	return 0, false
}

// IsNaturalBenefic reports whether the planet is a natural benefic under
// the simplified classification the rule tables use (Moon and Mercury are
// counted benefic unconditionally).
func (p Planet) IsNaturalBenefic() bool {
	switch p {
	case Moon, Mercury, Jupiter, Venus:
		return true
	default:
		return false
	}
}

// Sign identifies a zodiac sign, 0-indexed from Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign name.
func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return "unknown"
	}
	return signNames[s]
}

// Quality is the threefold sign classification used by divisional chart
// rules (movable/fixed/dual, a.k.a. cardinal/fixed/mutable).
type Quality int

const (
	Movable Quality = iota
	Fixed
	Dual
)

// Quality returns the sign's quality: Aries movable, Taurus fixed, Gemini
// dual, repeating around the zodiac.
func (s Sign) Quality() Quality {
	return Quality(int(s) % 3)
}

// IsOdd reports whether the sign is odd (Aries, Gemini, ... counting from 1).
func (s Sign) IsOdd() bool {
	return int(s)%2 == 0
}

// Lord returns the classical ruling planet of the sign.
func (s Sign) Lord() Planet {
	switch s {
	case Aries, Scorpio:
		return Mars
	case Taurus, Libra:
		return Venus
	case Gemini, Virgo:
		return Mercury
	case Cancer:
		return Moon
	case Leo:
		return Sun
	case Sagittarius, Pisces:
		return Jupiter
	default: // Capricorn, Aquarius
		return Saturn
	}
}

// Element returns the sign's element index: 0 fire, 1 earth, 2 air, 3 water.
func (s Sign) Element() int {
	return int(s) % 4
}

// nakshatraNames are the 27 lunar mansions in order from 0 Aries.
var nakshatraNames = [...]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// NakshatraName returns the name of a nakshatra index (0-26).
func NakshatraName(idx int) string {
	if idx < 0 || idx >= len(nakshatraNames) {
		return "unknown"
	}
	return nakshatraNames[idx]
}
