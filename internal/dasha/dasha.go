// Package dasha builds the Vimshottari 120-year planetary period
// timeline from the birth Moon's nakshatra, three levels deep.
package dasha

import (
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
)

// Level is the depth of a period in the hierarchy.
type Level int

const (
	Mahadasha Level = iota
	Antardasha
	Pratyantardasha
)

var levelNames = [...]string{"Mahadasha", "Antardasha", "Pratyantardasha"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// Sequence is the fixed Vimshottari planet order. The ruling planet of
// nakshatra n is Sequence[n mod 9].
var Sequence = [9]chart.Planet{
	chart.Ketu, chart.Venus, chart.Sun, chart.Moon, chart.Mars,
	chart.Rahu, chart.Jupiter, chart.Saturn, chart.Mercury,
}

// PeriodYears allots each planet its share of the 120-year cycle.
var PeriodYears = map[chart.Planet]float64{
	chart.Ketu:    7,
	chart.Venus:   20,
	chart.Sun:     6,
	chart.Moon:    10,
	chart.Mars:    7,
	chart.Rahu:    18,
	chart.Jupiter: 16,
	chart.Saturn:  19,
	chart.Mercury: 17,
}

const (
	cycleYears = 120.0
	// Date arithmetic uses a fixed Julian year.
	hoursPerYear = 365.25 * 24
)

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * hoursPerYear * float64(time.Hour))
}

func durationToYears(d time.Duration) float64 {
	return d.Hours() / hoursPerYear
}

// Period is one interval in the timeline. The tree is immutable once
// built; whether a period is active at some moment is a query, never a
// stored flag.
type Period struct {
	Planet   chart.Planet
	Level    Level
	Start    time.Time
	End      time.Time
	Years    float64
	Children []Period
}

// Contains reports whether t falls inside the half-open [Start, End).
func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// System is the full timeline for one birth.
type System struct {
	BirthTime    time.Time
	MoonLong     float64
	BirthLord    chart.Planet
	BalanceYears float64 // remainder of the first Mahadasha at birth
	Periods      []Period
}

// Calculate builds the timeline. The first Mahadasha starts at birth
// with only its balance remaining; the elapsed share of the birth
// lord's period reappears as a trailing partial period so the timeline
// covers exactly 120 years.
func Calculate(birth time.Time, moonLongitude float64) *System {
	nak := astro.NakshatraIndex(moonLongitude)
	lordIdx := nak % 9
	lord := Sequence[lordIdx]

	frac := astro.PositionInNakshatra(moonLongitude) / astro.NakshatraSpan
	balance := PeriodYears[lord] * (1 - frac)
	elapsed := PeriodYears[lord] - balance

	// Build the notional cycle from the moment the birth lord's full
	// period would have begun, then clip everything to the lived
	// 120-year window.
	cycleStart := birth.Add(-yearsToDuration(elapsed))
	cutoff := birth.Add(yearsToDuration(cycleYears))

	var periods []Period
	start := cycleStart
	// Nine periods plus the birth lord's reappearance at the wrap.
	for i := 0; i <= 9; i++ {
		planet := Sequence[(lordIdx+i)%9]
		years := PeriodYears[planet]
		p := buildPeriod(planet, Mahadasha, start, years)
		start = p.End
		if clipped, ok := clip(p, birth, cutoff); ok {
			periods = append(periods, clipped)
		}
	}

	return &System{
		BirthTime:    birth,
		MoonLong:     astro.NormalizeDegree(moonLongitude),
		BirthLord:    lord,
		BalanceYears: balance,
		Periods:      periods,
	}
}

// buildPeriod constructs a period and its sub-periods from a notional
// uncut span. Each child's share is proportional to its planet's cycle
// allotment, walked in sequence order starting from the parent's own
// planet.
func buildPeriod(planet chart.Planet, level Level, start time.Time, years float64) Period {
	p := Period{
		Planet: planet,
		Level:  level,
		Start:  start,
		End:    start.Add(yearsToDuration(years)),
		Years:  years,
	}
	if level >= Pratyantardasha {
		return p
	}

	idx := sequenceIndex(planet)
	childStart := start
	p.Children = make([]Period, 0, 9)
	for i := 0; i < 9; i++ {
		sub := Sequence[(idx+i)%9]
		subYears := years * PeriodYears[sub] / cycleYears
		child := buildPeriod(sub, level+1, childStart, subYears)
		childStart = child.End
		p.Children = append(p.Children, child)
	}
	// Absorb accumulated rounding so children tile the parent exactly.
	p.Children[8].End = p.End
	return p
}

// clip trims a period subtree to the [birth, cutoff) window. Periods
// wholly outside vanish; straddling ones are shortened and their years
// recomputed from the clamped span.
func clip(p Period, birth, cutoff time.Time) (Period, bool) {
	if !p.End.After(birth) || !cutoff.After(p.Start) {
		return Period{}, false
	}
	if p.Start.Before(birth) {
		p.Start = birth
	}
	if p.End.After(cutoff) {
		p.End = cutoff
	}
	p.Years = durationToYears(p.End.Sub(p.Start))

	if len(p.Children) > 0 {
		kept := make([]Period, 0, len(p.Children))
		for _, c := range p.Children {
			if cc, ok := clip(c, birth, cutoff); ok {
				kept = append(kept, cc)
			}
		}
		p.Children = kept
	}
	return p, true
}

func sequenceIndex(p chart.Planet) int {
	for i, s := range Sequence {
		if s == p {
			return i
		}
	}
	return 0
}

// At returns the chain of periods containing t, outermost first:
// Mahadasha, Antardasha, Pratyantardasha. It returns nil when t falls
// outside the timeline.
func (s *System) At(t time.Time) []Period {
	var chain []Period
	periods := s.Periods
	for len(periods) > 0 {
		found := false
		for i := range periods {
			if periods[i].Contains(t) {
				chain = append(chain, periods[i])
				periods = periods[i].Children
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// Mahadashas returns just the top-level periods.
func (s *System) Mahadashas() []Period {
	return s.Periods
}
