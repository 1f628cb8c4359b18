// Package ephem provides planetary positions for chart calculation.
// It wraps an external position source behind the Provider interface and
// exposes a sidereal-frame Adapter on top of it.
package ephem

import (
	"context"
	"errors"
)

// Body identifies a tracked celestial body at the provider level.
type Body int

const (
	BodySun Body = iota
	BodyMoon
	BodyMercury
	BodyVenus
	BodyMars
	BodyJupiter
	BodySaturn
	BodyRahu // mean lunar ascending node
	BodyKetu // mean lunar descending node (derived, Rahu + 180)
)

// Bodies is the default tracked set in canonical chart order.
var Bodies = []Body{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyRahu, BodyKetu,
}

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	case BodyMercury:
		return "Mercury"
	case BodyVenus:
		return "Venus"
	case BodyMars:
		return "Mars"
	case BodyJupiter:
		return "Jupiter"
	case BodySaturn:
		return "Saturn"
	case BodyRahu:
		return "Rahu"
	case BodyKetu:
		return "Ketu"
	default:
		return "unknown"
	}
}

// RawPosition is a tropical-frame geocentric position as returned by the
// external source.
type RawPosition struct {
	LonDeg         float64 // ecliptic longitude, 0-360
	LatDeg         float64 // ecliptic latitude
	DistanceAU     float64 // geocentric distance
	SpeedDegPerDay float64 // longitude rate; negative while retrograde
}

// Errors surfaced by providers and the adapter.
var (
	// ErrPositionUnavailable means the external source could not resolve a
	// position for the requested body and moment.
	ErrPositionUnavailable = errors.New("position unavailable")

	// ErrUnknownBody means the body is not served by this provider.
	ErrUnknownBody = errors.New("unknown body")
)

// Provider defines the interface for external position sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// PositionAt returns the tropical geocentric position of a body at a
	// Julian Day (UTC). Failures propagate; no defaults are substituted.
	PositionAt(ctx context.Context, jd float64, body Body) (RawPosition, error)

	// Available returns true if this provider can supply data for the body.
	Available(body Body) bool
}
