package chart

import (
	"fmt"
	"time"
)

// BirthData is an immutable description of a birth (or transit) moment and
// place. Construct it with NewBirthData, which validates coordinate ranges
// and resolves the timezone up front.
type BirthData struct {
	Name      string
	DateTime  time.Time // civil wall-clock time, naive of zone
	Timezone  string    // IANA identifier
	Latitude  float64
	Longitude float64
	Location  string // free-form place label

	loc *time.Location
}

// NewBirthData validates and constructs birth data. Latitude must be in
// [-90, 90], longitude in [-180, 180], and the timezone must resolve;
// violations fail immediately and are never clamped.
func NewBirthData(name string, dateTime time.Time, timezone string, lat, lon float64, location string) (BirthData, error) {
	if lat < -90 || lat > 90 {
		return BirthData{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return BirthData{}, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return BirthData{}, fmt.Errorf("resolve timezone %q: %w", timezone, err)
	}

	return BirthData{
		Name:      name,
		DateTime:  dateTime,
		Timezone:  timezone,
		Latitude:  lat,
		Longitude: lon,
		Location:  location,
		loc:       loc,
	}, nil
}

// UTC returns the birth moment as an absolute UTC instant, interpreting the
// stored wall-clock time in the birth timezone. The resolved location does
// not survive serialization, so it is re-derived from the IANA name when
// absent.
func (b BirthData) UTC() time.Time {
	loc := b.loc
	if loc == nil && b.Timezone != "" {
		loc, _ = time.LoadLocation(b.Timezone)
	}
	if loc == nil {
		loc = time.UTC
	}
	d := b.DateTime
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), loc).UTC()
}
