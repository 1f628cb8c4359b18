// Package panchanga computes the five classical limbs of the Vedic
// calendar (tithi, vara, nakshatra, yoga, karana) for a moment and
// place, along with rise/set events and the lunar phase.
package panchanga

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/ephem"
)

const (
	tithiSpan  = 12.0 // degrees of Moon-Sun elongation per tithi
	karanaSpan = 6.0  // half a tithi
)

var tithiNames = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi",
	"Shukla Panchami", "Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami",
	"Shukla Navami", "Shukla Dashami", "Shukla Ekadashi", "Shukla Dwadashi",
	"Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi",
	"Krishna Panchami", "Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami",
	"Krishna Navami", "Krishna Dashami", "Krishna Ekadashi", "Krishna Dwadashi",
	"Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

var varaNames = [7]string{
	"Ravivara", "Somavara", "Mangalavara", "Budhavara",
	"Guruvara", "Shukravara", "Shanivara",
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana",
	"Atiganda", "Sukarma", "Dhriti", "Shula", "Ganda",
	"Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra",
	"Siddhi", "Vyatipata", "Variyana", "Parigha", "Shiva",
	"Siddha", "Sadhya", "Shubha", "Shukla", "Brahma",
	"Indra", "Vaidhriti",
}

var movableKaranaNames = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

var fixedKaranaNames = [4]string{
	"Shakuni", "Chatushpada", "Naga", "Kimstughna",
}

// Tithi is a lunar day, 1-30, defined by 12-degree steps of Moon-Sun
// elongation. 1-15 is the waxing (Shukla) fortnight, 16-30 the waning.
type Tithi struct {
	Index  int
	Name   string
	Paksha string
	EndsAt *time.Time
}

// Vara is the weekday.
type Vara struct {
	Index int // 0 = Sunday
	Name  string
}

// Nakshatra is the Moon's lunar mansion at the moment.
type Nakshatra struct {
	Index  int // 0-26
	Name   string
	Pada   int // 1-4
	EndsAt *time.Time
}

// Yoga is the 27-fold division of the Sun+Moon longitude sum.
type Yoga struct {
	Index  int // 1-27
	Name   string
	EndsAt *time.Time
}

// Karana is a half-tithi. Indices 0-55 cycle through the seven movable
// karanas; 56-59 are the four fixed ones closing the lunar month.
type Karana struct {
	Index  int // 0-59
	Name   string
	Fixed  bool
	EndsAt *time.Time
}

// LunarPhase describes the Moon's illumination state.
type LunarPhase struct {
	AngleDeg     float64 // Moon-Sun elongation, 0-360
	Illumination float64 // 0 at new moon, 1 at full
	Waxing       bool
}

// Panchanga is the full almanac snapshot for one moment and place.
type Panchanga struct {
	Time      time.Time
	JulianDay float64

	Tithi     Tithi
	Vara      Vara
	Nakshatra Nakshatra
	Yoga      Yoga
	Karana    Karana
	Phase     LunarPhase

	// Rise and set events may legitimately be absent at high latitudes
	// or, for the Moon, on calendar days it never crosses the horizon.
	Sunrise  *time.Time
	Sunset   *time.Time
	Moonrise *time.Time
	Moonset  *time.Time
}

// Calculator derives Panchanga snapshots from ephemeris positions.
type Calculator struct {
	eph *ephem.Adapter
	log *slog.Logger
}

func NewCalculator(eph *ephem.Adapter, log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.Default()
	}
	return &Calculator{eph: eph, log: log}
}

// Calculate builds the almanac for the given civil moment. The time's
// location is used for the vara and for anchoring rise/set lookups.
func (c *Calculator) Calculate(ctx context.Context, t time.Time, latDeg, lonDeg float64) (*Panchanga, error) {
	jd := astro.JulianDay(t)

	positions, err := c.eph.Positions(ctx, jd, []ephem.Body{ephem.BodySun, ephem.BodyMoon})
	if err != nil {
		return nil, fmt.Errorf("panchanga positions: %w", err)
	}
	sun := positions[ephem.BodySun]
	moon := positions[ephem.BodyMoon]

	elong := astro.NormalizeDegree(moon.LonDeg - sun.LonDeg)
	elongSpeed := moon.SpeedDegPerDay - sun.SpeedDegPerDay
	sumLon := astro.NormalizeDegree(moon.LonDeg + sun.LonDeg)
	sumSpeed := moon.SpeedDegPerDay + sun.SpeedDegPerDay

	p := &Panchanga{
		Time:      t,
		JulianDay: jd,
		Tithi:     tithiAt(t, elong, elongSpeed),
		Vara:      Vara{Index: int(t.Weekday()), Name: varaNames[int(t.Weekday())]},
		Nakshatra: nakshatraAt(t, moon.LonDeg, moon.SpeedDegPerDay),
		Yoga:      yogaAt(t, sumLon, sumSpeed),
		Karana:    karanaAt(t, elong, elongSpeed),
		Phase:     phaseOf(elong),
	}

	c.riseSet(ctx, p, jd, latDeg, lonDeg)

	c.log.Debug("panchanga computed",
		"time", t,
		"tithi", p.Tithi.Index,
		"nakshatra", p.Nakshatra.Name,
		"yoga", p.Yoga.Index)

	return p, nil
}

func tithiAt(t time.Time, elong, elongSpeed float64) Tithi {
	idx := int(elong / tithiSpan)
	if idx > 29 {
		idx = 29
	}
	paksha := "Shukla"
	if idx >= 15 {
		paksha = "Krishna"
	}
	boundary := float64(idx+1) * tithiSpan
	return Tithi{
		Index:  idx + 1,
		Name:   tithiNames[idx],
		Paksha: paksha,
		EndsAt: boundaryTime(t, boundary-elong, elongSpeed),
	}
}

func nakshatraAt(t time.Time, moonLon, moonSpeed float64) Nakshatra {
	idx := astro.NakshatraIndex(moonLon)
	inNak := astro.PositionInNakshatra(moonLon)
	return Nakshatra{
		Index:  idx,
		Name:   chart.NakshatraName(idx),
		Pada:   astro.Pada(moonLon),
		EndsAt: boundaryTime(t, astro.NakshatraSpan-inNak, moonSpeed),
	}
}

func yogaAt(t time.Time, sumLon, sumSpeed float64) Yoga {
	idx := int(sumLon / astro.NakshatraSpan)
	if idx > 26 {
		idx = 26
	}
	boundary := float64(idx+1) * astro.NakshatraSpan
	return Yoga{
		Index:  idx + 1,
		Name:   yogaNames[idx],
		EndsAt: boundaryTime(t, boundary-sumLon, sumSpeed),
	}
}

func karanaAt(t time.Time, elong, elongSpeed float64) Karana {
	idx := int(elong / karanaSpan)
	if idx > 59 {
		idx = 59
	}
	k := Karana{
		Index:  idx,
		EndsAt: boundaryTime(t, float64(idx+1)*karanaSpan-elong, elongSpeed),
	}
	if idx >= 56 {
		k.Name = fixedKaranaNames[idx-56]
		k.Fixed = true
	} else {
		k.Name = movableKaranaNames[idx%7]
	}
	return k
}

func phaseOf(elong float64) LunarPhase {
	return LunarPhase{
		AngleDeg:     elong,
		Illumination: (1 - math.Cos(elong*math.Pi/180)) / 2,
		Waxing:       elong < 180,
	}
}

// boundaryTime converts an angular distance to the next element boundary
// into a timestamp via the relative angular speed. A non-positive relative
// speed has no meaningful crossing time and yields nil.
func boundaryTime(t time.Time, distDeg, speedDegPerDay float64) *time.Time {
	if speedDegPerDay <= 0 {
		return nil
	}
	days := distDeg / speedDegPerDay
	end := t.Add(time.Duration(days * 24 * float64(time.Hour)))
	return &end
}

func (c *Calculator) riseSet(ctx context.Context, p *Panchanga, jd, latDeg, lonDeg float64) {
	type lookup struct {
		body  ephem.Body
		event ephem.RiseSetEvent
		dst   **time.Time
	}
	lookups := []lookup{
		{ephem.BodySun, ephem.EventRise, &p.Sunrise},
		{ephem.BodySun, ephem.EventSet, &p.Sunset},
		{ephem.BodyMoon, ephem.EventRise, &p.Moonrise},
		{ephem.BodyMoon, ephem.EventSet, &p.Moonset},
	}
	for _, l := range lookups {
		when, err := c.eph.RiseSet(ctx, jd, l.body, latDeg, lonDeg, l.event)
		if err != nil {
			// Rise/set is supplementary; failure to compute one event
			// does not invalidate the almanac.
			c.log.Warn("rise/set lookup failed", "body", l.body, "err", err)
			continue
		}
		*l.dst = when
	}
}
