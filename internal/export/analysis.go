package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-jyotish/internal/state"
	"github.com/litescript/ls-jyotish/internal/varga"
)

// AnalysisSnapshot bundles one full computation pass for export.
type AnalysisSnapshot struct {
	Chart       *ChartSnapshot   `json:"chart"`
	Navamsa     []NavamsaExport  `json:"navamsa,omitempty"`
	Panchanga   *PanchangaExport `json:"panchanga,omitempty"`
	Dasha       *DashaExport     `json:"dasha,omitempty"`
	Transit     *TransitExport   `json:"transit,omitempty"`
	Strengths   []StrengthExport `json:"strengths,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// NavamsaExport is a planet's D9 placement.
type NavamsaExport struct {
	Planet     string `json:"planet"`
	Sign       string `json:"sign"`
	House      int    `json:"house"`
	Vargottama bool   `json:"vargottama,omitempty"`
}

// PanchangaExport is the almanac block of the snapshot.
type PanchangaExport struct {
	Tithi        string  `json:"tithi"`
	Paksha       string  `json:"paksha"`
	Vara         string  `json:"vara"`
	Nakshatra    string  `json:"nakshatra"`
	Pada         int     `json:"pada"`
	Yoga         string  `json:"yoga"`
	Karana       string  `json:"karana"`
	Illumination float64 `json:"illumination"`
	Waxing       bool    `json:"waxing"`
}

// DashaExport summarizes the Vimshottari timeline.
type DashaExport struct {
	BirthLord    string         `json:"birth_lord"`
	BalanceYears float64        `json:"balance_years"`
	Current      []string       `json:"current,omitempty"`
	Mahadashas   []PeriodExport `json:"mahadashas"`
}

// PeriodExport is one dasha period.
type PeriodExport struct {
	Planet string    `json:"planet"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Years  float64   `json:"years"`
}

// TransitExport is the Gochara assessment block.
type TransitExport struct {
	Score    float64               `json:"score"`
	Verdict  string                `json:"verdict"`
	Transits []TransitPlanetExport `json:"transits"`
	Windows  []WindowExport        `json:"windows,omitempty"`
}

// TransitPlanetExport is one transiting planet.
type TransitPlanetExport struct {
	Planet       string `json:"planet"`
	Sign         string `json:"sign"`
	House        int    `json:"house_from_moon"`
	Effect       string `json:"effect"`
	ObstructedBy string `json:"obstructed_by,omitempty"`
}

// WindowExport is an upcoming classical transit window.
type WindowExport struct {
	Name      string    `json:"name"`
	Planet    string    `json:"planet"`
	Date      time.Time `json:"date"`
	House     int       `json:"house"`
	Intensity int       `json:"intensity"`
}

// StrengthExport is one planet's Shadbala summary.
type StrengthExport struct {
	Planet   string  `json:"planet"`
	Rupas    float64 `json:"rupas"`
	Required float64 `json:"required_rupas"`
	Rating   string  `json:"rating"`
	IsStrong bool    `json:"is_strong"`
}

// ExportAnalysis converts a full computation pass to its snapshot form.
// Absent analyses are left out rather than zeroed.
func ExportAnalysis(data *state.Data) *AnalysisSnapshot {
	snap := &AnalysisSnapshot{
		Chart:       ExportChart(data.Natal),
		GeneratedAt: time.Now().UTC(),
	}

	if d9 := data.Vargas[varga.D9]; d9 != nil {
		for _, p := range d9.Positions {
			snap.Navamsa = append(snap.Navamsa, NavamsaExport{
				Planet:     p.Planet.String(),
				Sign:       p.Sign.String(),
				House:      p.House,
				Vargottama: p.Vargottama,
			})
		}
	}

	if p := data.Panchanga; p != nil {
		snap.Panchanga = &PanchangaExport{
			Tithi:        p.Tithi.Name,
			Paksha:       p.Tithi.Paksha,
			Vara:         p.Vara.Name,
			Nakshatra:    p.Nakshatra.Name,
			Pada:         p.Nakshatra.Pada,
			Yoga:         p.Yoga.Name,
			Karana:       p.Karana.Name,
			Illumination: p.Phase.Illumination,
			Waxing:       p.Phase.Waxing,
		}
	}

	if sys := data.Dasha; sys != nil {
		d := &DashaExport{
			BirthLord:    sys.BirthLord.String(),
			BalanceYears: sys.BalanceYears,
		}
		for _, p := range sys.At(time.Now()) {
			d.Current = append(d.Current, p.Planet.String())
		}
		for _, p := range sys.Periods {
			d.Mahadashas = append(d.Mahadashas, PeriodExport{
				Planet: p.Planet.String(),
				Start:  p.Start,
				End:    p.End,
				Years:  p.Years,
			})
		}
		snap.Dasha = d
	}

	if an := data.Transit; an != nil {
		t := &TransitExport{
			Score:   an.Score,
			Verdict: an.Verdict.String(),
		}
		for _, tr := range an.Transits {
			e := TransitPlanetExport{
				Planet: tr.Planet.String(),
				Sign:   tr.Sign.String(),
				House:  tr.HouseFromMoon,
				Effect: tr.Effect.String(),
			}
			if tr.Obstructed {
				e.ObstructedBy = tr.ObstructedBy.String()
			}
			t.Transits = append(t.Transits, e)
		}
		for _, w := range an.Significant {
			t.Windows = append(t.Windows, WindowExport{
				Name:      w.Name,
				Planet:    w.Planet.String(),
				Date:      w.Date,
				House:     w.House,
				Intensity: w.Intensity,
			})
		}
		snap.Transit = t
	}

	for _, r := range data.Strengths {
		snap.Strengths = append(snap.Strengths, StrengthExport{
			Planet:   r.Planet.String(),
			Rupas:    r.Rupas,
			Required: r.RequiredRupas,
			Rating:   r.Rating.String(),
			IsStrong: r.IsStrong,
		})
	}

	return snap
}

// WriteJSON writes the snapshot as indented JSON.
func (s *AnalysisSnapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
