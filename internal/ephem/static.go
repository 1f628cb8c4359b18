package ephem

import (
	"context"

	"github.com/litescript/ls-jyotish/internal/astro"
)

// meanElements holds a linear mean-motion model for one body: longitude at
// J2000.0 and a constant daily rate.
type meanElements struct {
	lonAtJ2000 float64 // degrees
	ratePerDay float64 // degrees/day
	latDeg     float64
	distanceAU float64
}

// staticElements are coarse mean elements, good to a few degrees over
// decades. Sufficient for offline demos and deterministic tests; real chart
// work should use the Horizons provider.
var staticElements = map[Body]meanElements{
	BodySun:     {lonAtJ2000: 280.460, ratePerDay: 0.9856474, distanceAU: 1.0},
	BodyMoon:    {lonAtJ2000: 218.316, ratePerDay: 13.1763966, distanceAU: 0.00257},
	BodyMercury: {lonAtJ2000: 252.251, ratePerDay: 4.0923344, distanceAU: 1.0},
	BodyVenus:   {lonAtJ2000: 181.980, ratePerDay: 1.6021303, distanceAU: 1.2},
	BodyMars:    {lonAtJ2000: 355.433, ratePerDay: 0.5240208, distanceAU: 1.5},
	BodyJupiter: {lonAtJ2000: 34.351, ratePerDay: 0.0830853, distanceAU: 5.2},
	BodySaturn:  {lonAtJ2000: 50.077, ratePerDay: 0.0334442, distanceAU: 9.5},
	BodyRahu:    {lonAtJ2000: 125.045, ratePerDay: -0.0529539, distanceAU: 0},
	BodyKetu:    {lonAtJ2000: 305.045, ratePerDay: -0.0529539, distanceAU: 0},
}

// StaticProvider serves approximate positions from a built-in mean-motion
// model. It needs no network access and is fully deterministic, which makes
// it the offline fallback and the provider of choice in tests.
type StaticProvider struct{}

// NewStaticProvider creates the offline provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Name implements Provider.
func (p *StaticProvider) Name() string {
	return "static"
}

// Available implements Provider.
func (p *StaticProvider) Available(body Body) bool {
	_, ok := staticElements[body]
	return ok
}

// PositionAt implements Provider.
func (p *StaticProvider) PositionAt(_ context.Context, jd float64, body Body) (RawPosition, error) {
	el, ok := staticElements[body]
	if !ok {
		return RawPosition{}, ErrUnknownBody
	}

	days := jd - astro.J2000
	return RawPosition{
		LonDeg:         astro.NormalizeDegree(el.lonAtJ2000 + el.ratePerDay*days),
		LatDeg:         el.latDeg,
		DistanceAU:     el.distanceAU,
		SpeedDegPerDay: el.ratePerDay,
	}, nil
}
