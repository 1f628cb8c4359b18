package ephem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-jyotish/internal/astro"
)

// Position is a sidereal-frame geocentric position with derived flags.
type Position struct {
	Body           Body
	LonDeg         float64 // sidereal ecliptic longitude, 0-360
	LatDeg         float64
	DistanceAU     float64
	SpeedDegPerDay float64
	Retrograde     bool
}

// RiseSetEvent selects which horizon crossing to look for.
type RiseSetEvent int

const (
	EventRise RiseSetEvent = iota
	EventSet
)

// Horizon altitude thresholds in degrees. The Sun and Moon use upper-limb
// values with standard refraction; other bodies use refraction only.
var horizonAltitude = map[Body]float64{
	BodySun:  -0.8333,
	BodyMoon: 0.125,
}

const defaultHorizonAltitude = -0.5667

// riseSetStep is the scan resolution for horizon crossings.
const riseSetStep = 10 * time.Minute

// Adapter converts raw provider positions into the sidereal frame and
// derives retrograde flags and rise/set events. All methods are safe for
// concurrent use.
type Adapter struct {
	provider Provider
	ayanamsa astro.Ayanamsa
	log      *slog.Logger
}

// NewAdapter creates an adapter over a position provider.
func NewAdapter(provider Provider, ayanamsa astro.Ayanamsa, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		provider: provider,
		ayanamsa: ayanamsa,
		log:      log,
	}
}

// ProviderName returns the backing provider's name.
func (a *Adapter) ProviderName() string {
	return a.provider.Name()
}

// Ayanamsa returns the configured sidereal offset model.
func (a *Adapter) Ayanamsa() astro.Ayanamsa {
	return a.ayanamsa
}

// AyanamsaValue returns the ayanamsa offset in degrees at a Julian Day.
func (a *Adapter) AyanamsaValue(jd float64) float64 {
	return a.ayanamsa.Value(jd)
}

// Position returns the sidereal position of a body at a Julian Day.
// The Sun and Moon are never marked retrograde regardless of the rate the
// provider reports.
func (a *Adapter) Position(ctx context.Context, jd float64, body Body) (Position, error) {
	raw, err := a.provider.PositionAt(ctx, jd, body)
	if err != nil {
		return Position{}, fmt.Errorf("position for %s at jd %.5f: %w", body, jd, err)
	}

	retro := raw.SpeedDegPerDay < 0
	if body == BodySun || body == BodyMoon {
		retro = false
	}

	return Position{
		Body:           body,
		LonDeg:         a.ayanamsa.ToSidereal(raw.LonDeg, jd),
		LatDeg:         raw.LatDeg,
		DistanceAU:     raw.DistanceAU,
		SpeedDegPerDay: raw.SpeedDegPerDay,
		Retrograde:     retro,
	}, nil
}

// Positions fetches sidereal positions for a set of bodies concurrently.
// A failure for any body fails the whole call; partial position sets would
// mislead every downstream calculator.
func (a *Adapter) Positions(ctx context.Context, jd float64, bodies []Body) (map[Body]Position, error) {
	var mu sync.Mutex
	out := make(map[Body]Position, len(bodies))

	g, ctx := errgroup.WithContext(ctx)
	for _, body := range bodies {
		g.Go(func() error {
			pos, err := a.Position(ctx, jd, body)
			if err != nil {
				return err
			}
			mu.Lock()
			out[body] = pos
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TropicalPosition returns the raw tropical position, bypassing the
// sidereal conversion. Rise/set and declination math work in the tropical
// frame.
func (a *Adapter) TropicalPosition(ctx context.Context, jd float64, body Body) (RawPosition, error) {
	return a.provider.PositionAt(ctx, jd, body)
}

// RiseSet finds the requested horizon crossing of a body during the UTC
// day containing jd, seen from the given geographic position. It returns
// nil (with no error) when the event does not occur that day, which is
// normal at high latitudes and for the Moon roughly once a month.
func (a *Adapter) RiseSet(ctx context.Context, jd float64, body Body, latDeg, lonDeg float64, event RiseSetEvent) (*time.Time, error) {
	dayStart := dayStartJD(jd)

	// Two anchor positions; intermediate longitudes are interpolated.
	// Even the Moon moves only ~13 degrees/day, so linear interpolation
	// is well within the scan resolution.
	p0, err := a.provider.PositionAt(ctx, dayStart, body)
	if err != nil {
		return nil, fmt.Errorf("rise/set anchor for %s: %w", body, err)
	}
	p1, err := a.provider.PositionAt(ctx, dayStart+1, body)
	if err != nil {
		return nil, fmt.Errorf("rise/set anchor for %s: %w", body, err)
	}
	dLon := astro.SignedSeparation(p0.LonDeg, p1.LonDeg)
	dLat := p1.LatDeg - p0.LatDeg

	threshold, ok := horizonAltitude[body]
	if !ok {
		threshold = defaultHorizonAltitude
	}

	stepDays := riseSetStep.Hours() / 24

	altAt := func(frac float64) float64 {
		sampleJD := dayStart + frac
		lon := astro.NormalizeDegree(p0.LonDeg + dLon*frac)
		lat := p0.LatDeg + dLat*frac
		eq := astro.EclipticToEquatorial(lon, lat, sampleJD)
		return astro.Altitude(eq, latDeg, astro.LST(sampleJD, lonDeg))
	}

	prev := altAt(0)
	for frac := stepDays; frac <= 1+1e-9; frac += stepDays {
		curr := altAt(frac)

		crossed := false
		switch event {
		case EventRise:
			crossed = prev <= threshold && curr > threshold
		case EventSet:
			crossed = prev >= threshold && curr < threshold
		}

		if crossed {
			// Linear interpolation inside the step.
			f := 0.0
			if curr != prev {
				f = (threshold - prev) / (curr - prev)
			}
			eventJD := dayStart + (frac - stepDays) + f*stepDays
			t := astro.TimeFromJulianDay(eventJD)
			return &t, nil
		}
		prev = curr
	}

	return nil, nil
}

// dayStartJD returns the Julian Day of 00:00 UTC for the day containing jd.
func dayStartJD(jd float64) float64 {
	t := astro.TimeFromJulianDay(jd)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return astro.JulianDay(midnight)
}
