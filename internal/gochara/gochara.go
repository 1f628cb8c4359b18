// Package gochara analyzes planetary transits against a natal chart:
// house-from-Moon effects with Vedha obstruction, transit-to-natal
// aspects, and a combined qualitative assessment over a rolling window.
package gochara

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/litescript/ls-jyotish/internal/aspect"
	"github.com/litescript/ls-jyotish/internal/chart"
)

// ErrNoMoon reports a natal chart without a Moon position. The chart
// builder never produces one, so this guards against hand-built input.
var ErrNoMoon = errors.New("gochara: natal chart has no Moon position")

// Effect is the qualitative read of one planet's transit.
type Effect int

const (
	Challenging Effect = iota
	Neutral
	Good
)

var effectNames = [...]string{"Challenging", "Neutral", "Good"}

func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return "unknown"
	}
	return effectNames[e]
}

// score converts an effect to its 0-100 contribution.
func (e Effect) score() float64 {
	switch e {
	case Good:
		return 100
	case Neutral:
		return 50
	default:
		return 0
	}
}

// Verdict is the overall five-tier assessment.
type Verdict int

const (
	Difficult Verdict = iota
	ChallengingPeriod
	Mixed
	GoodPeriod
	Excellent
)

var verdictNames = [...]string{"Difficult", "Challenging", "Mixed", "Good", "Excellent"}

func (v Verdict) String() string {
	if v < 0 || int(v) >= len(verdictNames) {
		return "unknown"
	}
	return verdictNames[v]
}

// PlanetTransit is one transiting planet's assessment.
type PlanetTransit struct {
	Planet        chart.Planet
	Longitude     float64
	Sign          chart.Sign
	HouseFromMoon int
	Effect        Effect
	Obstructed    bool
	ObstructedBy  chart.Planet // meaningful only when Obstructed
	BinduScore    float64      // 0-100
}

// SignificantPeriod is an upcoming classical transit window.
type SignificantPeriod struct {
	Name      string
	Planet    chart.Planet
	Date      time.Time
	House     int
	Intensity int // 1-5
}

// Analysis is the full transit report for one moment.
type Analysis struct {
	Natal        *chart.VedicChart
	TransitTime  time.Time
	TransitChart *chart.VedicChart
	Transits     []PlanetTransit
	Aspects      []aspect.Aspect
	Score        float64 // 0-100
	Verdict      Verdict
	Significant  []SignificantPeriod
}

// Analyzer builds transit charts and scores them against a natal chart.
type Analyzer struct {
	builder *chart.Builder
	orbs    aspect.OrbConfig
	log     *slog.Logger
}

func NewAnalyzer(builder *chart.Builder, orbs aspect.OrbConfig, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{builder: builder, orbs: orbs, log: log}
}

// sampleOffsets are the forward scan points for significant periods.
var sampleOffsets = []int{0, 7, 14, 21, 28}

// Analyze produces the transit assessment for the given moment.
func (a *Analyzer) Analyze(ctx context.Context, natal *chart.VedicChart, at time.Time) (*Analysis, error) {
	natalMoon, ok := natal.Position(chart.Moon)
	if !ok {
		return nil, ErrNoMoon
	}

	tc, err := a.builder.BuildTransit(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("transit chart at %v: %w", at, err)
	}

	transits := a.planetTransits(tc, natalMoon.Sign)
	aspects := aspect.Between(tc.Positions, natal.Positions, a.orbs)

	score := combinedScore(transits, aspects)

	significant, err := a.scanSignificant(ctx, at, natalMoon.Sign)
	if err != nil {
		return nil, err
	}

	an := &Analysis{
		Natal:        natal,
		TransitTime:  at,
		TransitChart: tc,
		Transits:     transits,
		Aspects:      aspects,
		Score:        score,
		Verdict:      verdictFor(score),
		Significant:  significant,
	}

	a.log.Debug("transit analysis",
		"time", at,
		"score", score,
		"verdict", an.Verdict.String(),
		"significant", len(significant))

	return an, nil
}

// houseFromMoon counts inclusively from the natal Moon's sign.
func houseFromMoon(moonSign, target chart.Sign) int {
	return (int(target)-int(moonSign)+12)%12 + 1
}

func (a *Analyzer) planetTransits(tc *chart.VedicChart, moonSign chart.Sign) []PlanetTransit {
	// Precompute each planet's house-from-Moon for the Vedha pass.
	houses := make(map[chart.Planet]int, len(tc.Positions))
	for _, p := range tc.Positions {
		houses[p.Planet] = houseFromMoon(moonSign, p.Sign)
	}

	out := make([]PlanetTransit, 0, len(tc.Positions))
	for _, p := range tc.Positions {
		house := houses[p.Planet]
		pt := PlanetTransit{
			Planet:        p.Planet,
			Longitude:     p.Longitude,
			Sign:          p.Sign,
			HouseFromMoon: house,
			Effect:        classify(p.Planet, house),
			BinduScore:    float64(bindusFor(p.Planet, house)) * 100 / 8,
		}

		if pt.Effect == Good {
			if blocker, blocked := vedhaBlocker(p.Planet, house, houses); blocked {
				pt.Effect = Neutral
				pt.Obstructed = true
				pt.ObstructedBy = blocker
			}
		}
		out = append(out, pt)
	}
	return out
}

func classify(p chart.Planet, house int) Effect {
	if favorableHouses[p][house] {
		return Good
	}
	if neutralHouses[p][house] {
		return Neutral
	}
	return Challenging
}

// vedhaBlocker checks whether any other planet occupies the obstruction
// house paired with this favorable placement.
func vedhaBlocker(p chart.Planet, house int, houses map[chart.Planet]int) (chart.Planet, bool) {
	obstruction, ok := vedhaHouses[p][house]
	if !ok {
		return 0, false
	}
	for other, h := range houses {
		if other == p || h != obstruction || vedhaExempt(p, other) {
			continue
		}
		return other, true
	}
	return 0, false
}

// combinedScore blends the three signals: 40% house effects, 30%
// aspect balance, 30% bindu scores.
func combinedScore(transits []PlanetTransit, aspects []aspect.Aspect) float64 {
	if len(transits) == 0 {
		return 0
	}

	var gochara, bindu float64
	for _, t := range transits {
		gochara += t.Effect.score()
		bindu += t.BinduScore
	}
	gochara /= float64(len(transits))
	bindu /= float64(len(transits))

	return 0.4*gochara + 0.3*aspectBalance(aspects) + 0.3*bindu
}

// aspectBalance maps the transit-to-natal aspect list to 0-100, 50 when
// harmonious and hard aspects cancel out.
func aspectBalance(aspects []aspect.Aspect) float64 {
	if len(aspects) == 0 {
		return 50
	}
	var sum float64
	for _, a := range aspects {
		if a.Type.IsHarmonious() {
			sum += 50 * a.Strength
		} else {
			sum -= 50 * a.Strength
		}
	}
	score := 50 + sum/float64(len(aspects))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func verdictFor(score float64) Verdict {
	switch {
	case score >= 75:
		return Excellent
	case score >= 60:
		return GoodPeriod
	case score >= 45:
		return Mixed
	case score >= 30:
		return ChallengingPeriod
	default:
		return Difficult
	}
}

// scanSignificant samples the coming weeks for classical slow-planet
// windows, deduplicated by rule name.
func (a *Analyzer) scanSignificant(ctx context.Context, at time.Time, moonSign chart.Sign) ([]SignificantPeriod, error) {
	seen := make(map[string]bool)
	var out []SignificantPeriod

	for _, days := range sampleOffsets {
		when := at.AddDate(0, 0, days)
		tc, err := a.builder.BuildTransit(ctx, when)
		if err != nil {
			return nil, fmt.Errorf("significant-period sample at %v: %w", when, err)
		}
		for _, rule := range significantRules {
			if seen[rule.name] {
				continue
			}
			pos, ok := tc.Position(rule.planet)
			if !ok {
				continue
			}
			house := houseFromMoon(moonSign, pos.Sign)
			if !rule.houses[house] {
				continue
			}
			seen[rule.name] = true
			out = append(out, SignificantPeriod{
				Name:      rule.name,
				Planet:    rule.planet,
				Date:      when,
				House:     house,
				Intensity: rule.intensity,
			})
		}
	}
	return out, nil
}
