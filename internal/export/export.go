// Package export renders charts and analyses as JSON snapshots and
// plain-text tables for the headless CLI modes.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/dasha"
	"github.com/litescript/ls-jyotish/internal/gochara"
	"github.com/litescript/ls-jyotish/internal/panchanga"
	"github.com/litescript/ls-jyotish/internal/strength"
)

// ChartSnapshot is the JSON-serializable representation of a chart.
type ChartSnapshot struct {
	Name         string           `json:"name"`
	BirthTime    string           `json:"birth_time"`
	Timezone     string           `json:"timezone"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	Location     string           `json:"location,omitempty"`
	JulianDay    float64          `json:"julian_day"`
	Ayanamsa     float64          `json:"ayanamsa"`
	AyanamsaName string           `json:"ayanamsa_name"`
	HouseSystem  string           `json:"house_system"`
	Ascendant    float64          `json:"ascendant"`
	Midheaven    float64          `json:"midheaven"`
	Cusps        [12]float64      `json:"cusps"`
	Positions    []PositionExport `json:"positions"`
	CalculatedAt time.Time        `json:"calculated_at"`
}

// PositionExport is a JSON-friendly planet position with derived fields.
type PositionExport struct {
	Planet     string  `json:"planet"`
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Degrees    int     `json:"degrees"`
	Minutes    int     `json:"minutes"`
	Seconds    float64 `json:"seconds"`
	Nakshatra  string  `json:"nakshatra"`
	Pada       int     `json:"pada"`
	House      int     `json:"house"`
	Speed      float64 `json:"speed_deg_per_day"`
	Retrograde bool    `json:"retrograde"`
	Combust    bool    `json:"combust"`
}

// ExportChart converts a chart to its snapshot form.
func ExportChart(c *chart.VedicChart) *ChartSnapshot {
	snap := &ChartSnapshot{
		Name:         c.Birth.Name,
		BirthTime:    c.Birth.DateTime.Format("2006-01-02 15:04:05"),
		Timezone:     c.Birth.Timezone,
		Latitude:     c.Birth.Latitude,
		Longitude:    c.Birth.Longitude,
		Location:     c.Birth.Location,
		JulianDay:    c.JulianDay,
		Ayanamsa:     c.Ayanamsa,
		AyanamsaName: c.AyanamsaName,
		HouseSystem:  c.HouseSystem.String(),
		Ascendant:    c.Ascendant,
		Midheaven:    c.Midheaven,
		Cusps:        c.Cusps,
		CalculatedAt: c.CalculatedAt,
	}
	for _, p := range c.Positions {
		snap.Positions = append(snap.Positions, PositionExport{
			Planet:     p.Planet.String(),
			Longitude:  p.Longitude,
			Sign:       p.Sign.String(),
			Degrees:    p.Degree,
			Minutes:    p.Minute,
			Seconds:    p.Second,
			Nakshatra:  chart.NakshatraName(p.Nakshatra),
			Pada:       p.Pada,
			House:      p.House,
			Speed:      p.SpeedDegPerDay,
			Retrograde: p.Retrograde,
			Combust:    p.Combust,
		})
	}
	return snap
}

// WriteJSON writes the snapshot as indented JSON.
func (s *ChartSnapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteChartTable writes the planetary position table.
func WriteChartTable(w io.Writer, c *chart.VedicChart) {
	fmt.Fprintf(w, "%s — %s (%s)\n", c.Birth.Name,
		c.Birth.DateTime.Format("2006-01-02 15:04"), c.Birth.Timezone)
	fmt.Fprintf(w, "Ayanamsa %s %.4f | Ascendant %s | %s houses\n",
		c.AyanamsaName, c.Ayanamsa, c.AscendantSign(), c.HouseSystem)
	fmt.Fprintln(w, strings.Repeat("-", 78))
	fmt.Fprintf(w, "%-9s %-12s %-10s %-14s %-5s %-6s %s\n",
		"Planet", "Sign", "Position", "Nakshatra", "Pada", "House", "Flags")
	fmt.Fprintln(w, strings.Repeat("-", 78))

	for _, p := range c.Positions {
		var flags []string
		if p.Retrograde {
			flags = append(flags, "R")
		}
		if p.Combust {
			flags = append(flags, "C")
		}
		fmt.Fprintf(w, "%-9s %-12s %2d°%02d'%05.2f\" %-14s %-5d %-6d %s\n",
			p.Planet, p.Sign, p.Degree, p.Minute, p.Second,
			truncate(chart.NakshatraName(p.Nakshatra), 14), p.Pada, p.House,
			strings.Join(flags, ""))
	}
}

// WritePanchanga writes the almanac block.
func WritePanchanga(w io.Writer, p *panchanga.Panchanga) {
	fmt.Fprintf(w, "Panchanga @ %s\n", p.Time.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(w, strings.Repeat("-", 56))
	fmt.Fprintf(w, "Tithi      %-22s %s\n", p.Tithi.Name, endTime(p.Tithi.EndsAt))
	fmt.Fprintf(w, "Vara       %s\n", p.Vara.Name)
	fmt.Fprintf(w, "Nakshatra  %-22s %s\n",
		fmt.Sprintf("%s (pada %d)", p.Nakshatra.Name, p.Nakshatra.Pada),
		endTime(p.Nakshatra.EndsAt))
	fmt.Fprintf(w, "Yoga       %-22s %s\n", p.Yoga.Name, endTime(p.Yoga.EndsAt))
	fmt.Fprintf(w, "Karana     %-22s %s\n", p.Karana.Name, endTime(p.Karana.EndsAt))
	fmt.Fprintf(w, "Moon       %.1f%% illuminated", p.Phase.Illumination*100)
	if p.Phase.Waxing {
		fmt.Fprintln(w, ", waxing")
	} else {
		fmt.Fprintln(w, ", waning")
	}
	fmt.Fprintf(w, "Sunrise    %s   Sunset  %s\n", eventTime(p.Sunrise), eventTime(p.Sunset))
	fmt.Fprintf(w, "Moonrise   %s   Moonset %s\n", eventTime(p.Moonrise), eventTime(p.Moonset))
}

// WriteDashaTable writes the Mahadasha timeline, marking the running
// period and expanding its sub-periods.
func WriteDashaTable(w io.Writer, sys *dasha.System, now time.Time) {
	fmt.Fprintf(w, "Vimshottari Dasha (birth lord %s, balance %.2f years)\n",
		sys.BirthLord, sys.BalanceYears)
	fmt.Fprintln(w, strings.Repeat("-", 64))

	for _, p := range sys.Periods {
		marker := "  "
		if p.Contains(now) {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%-9s %s — %s  (%.2f y)\n", marker, p.Planet,
			p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Years)
	}

	chain := sys.At(now)
	if len(chain) > 1 {
		fmt.Fprintln(w)
		fmt.Fprint(w, "Current: ")
		parts := make([]string, len(chain))
		for i, p := range chain {
			parts[i] = p.Planet.String()
		}
		fmt.Fprintf(w, "%s (until %s)\n",
			strings.Join(parts, " / "),
			chain[len(chain)-1].End.Format("2006-01-02"))
	}
}

// WriteShadbalaTable writes the strength breakdown per planet.
func WriteShadbalaTable(w io.Writer, results []strength.Result) {
	fmt.Fprintf(w, "%-9s %7s %7s %7s %7s %7s %7s %7s %6s  %s\n",
		"Planet", "Sthana", "Dig", "Kala", "Chesta", "Naisg", "Drik", "Rupas", "Req", "Rating")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, r := range results {
		fmt.Fprintf(w, "%-9s %7.1f %7.1f %7.1f %7.1f %7.1f %7.1f %7.2f %6.2f  %s\n",
			r.Planet,
			r.Breakdown.Sthana, r.Breakdown.Dig, r.Breakdown.Kala,
			r.Breakdown.Chesta, r.Breakdown.Naisargika, r.Breakdown.Drik,
			r.Rupas, r.RequiredRupas, r.Rating)
	}
}

// WriteTransitReport writes the Gochara assessment.
func WriteTransitReport(w io.Writer, an *gochara.Analysis) {
	fmt.Fprintf(w, "Transits @ %s — %s (%.0f/100)\n",
		an.TransitTime.Format("2006-01-02 15:04"), an.Verdict, an.Score)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "%-9s %-12s %-6s %-12s %s\n", "Planet", "Sign", "House", "Effect", "Vedha")
	for _, t := range an.Transits {
		vedha := ""
		if t.Obstructed {
			vedha = "by " + t.ObstructedBy.String()
		}
		fmt.Fprintf(w, "%-9s %-12s %-6d %-12s %s\n",
			t.Planet, t.Sign, t.HouseFromMoon, t.Effect, vedha)
	}

	if len(an.Significant) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Upcoming windows:")
		for _, s := range an.Significant {
			fmt.Fprintf(w, "  %s from %s (%s in house %d, intensity %d/5)\n",
				s.Name, s.Date.Format("2006-01-02"), s.Planet, s.House, s.Intensity)
		}
	}
}

func endTime(t *time.Time) string {
	if t == nil {
		return "ends —"
	}
	return "ends " + t.Format("15:04")
}

func eventTime(t *time.Time) string {
	if t == nil {
		return "—    "
	}
	return t.Format("15:04")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 2 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
