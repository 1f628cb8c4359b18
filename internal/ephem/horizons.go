package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-jyotish/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second

	// positionCacheTTL bounds how long a cached position stays valid.
	positionCacheTTL = 10 * time.Minute

	// speedStepDays is the finite-difference step used to derive the
	// longitude rate from two sampled positions.
	speedStepDays = 1.0 / 24.0
)

// Horizons target commands for the bodies served over HTTP. Rahu and Ketu
// have no Horizons target; the mean node is computed locally.
var horizonsCommands = map[Body]string{
	BodySun:     "10",
	BodyMoon:    "301",
	BodyMercury: "199",
	BodyVenus:   "299",
	BodyMars:    "499",
	BodyJupiter: "599",
	BodySaturn:  "699",
}

// HorizonsProvider queries JPL Horizons for geocentric ecliptic positions.
type HorizonsProvider struct {
	client *http.Client

	mu    sync.RWMutex
	cache map[posCacheKey]cachedPosition
}

type posCacheKey struct {
	body Body
	jd   int64 // Julian Day quantized to minutes
}

type cachedPosition struct {
	pos       RawPosition
	fetchedAt time.Time
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider() *HorizonsProvider {
	return &HorizonsProvider{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		cache: make(map[posCacheKey]cachedPosition),
	}
}

// WithTimeout overrides the default HTTP request timeout. Non-positive
// durations are ignored.
func (p *HorizonsProvider) WithTimeout(d time.Duration) *HorizonsProvider {
	if d > 0 {
		p.client.Timeout = d
	}
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// Available implements Provider.
func (p *HorizonsProvider) Available(body Body) bool {
	if body == BodyRahu || body == BodyKetu {
		return true
	}
	_, ok := horizonsCommands[body]
	return ok
}

// PositionAt implements Provider. The longitude rate is derived by finite
// difference over two sampled rows one hour apart.
func (p *HorizonsProvider) PositionAt(ctx context.Context, jd float64, body Body) (RawPosition, error) {
	if body == BodyRahu || body == BodyKetu {
		return meanNodePosition(jd, body), nil
	}

	cmd, ok := horizonsCommands[body]
	if !ok {
		return RawPosition{}, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}

	key := posCacheKey{body: body, jd: int64(jd * 1440)}
	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < positionCacheTTL {
		return cached.pos, nil
	}

	pos, err := p.queryPosition(ctx, cmd, jd)
	if err != nil {
		return RawPosition{}, fmt.Errorf("%w: %s: %v", ErrPositionUnavailable, body, err)
	}

	p.mu.Lock()
	p.cache[key] = cachedPosition{pos: pos, fetchedAt: time.Now()}
	p.mu.Unlock()

	return pos, nil
}

// queryPosition requests an observer ephemeris with ecliptic lon/lat
// (quantity 31) and range (quantity 20) for two rows an hour apart.
func (p *HorizonsProvider) queryPosition(ctx context.Context, cmd string, jd float64) (RawPosition, error) {
	start := astro.TimeFromJulianDay(jd)
	stop := astro.TimeFromJulianDay(jd + speedStepDays)

	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", cmd))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'500@399'") // geocentric
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(start)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(stop)))
	params.Set("STEP_SIZE", "'60 m'")
	params.Set("QUANTITIES", "'31,20'") // ObsEcLon/ObsEcLat, delta

	reqURL := HorizonsAPIURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return RawPosition{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return RawPosition{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return RawPosition{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawPosition{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseHorizonsPosition(body)
}

// horizonsResponse represents the JSON API response envelope.
type horizonsResponse struct {
	Result string `json:"result"`
}

// parseHorizonsPosition extracts lon/lat/delta rows from the $$SOE block and
// derives the rate from the first two rows.
func parseHorizonsPosition(body []byte) (RawPosition, error) {
	var hr horizonsResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return RawPosition{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	soe := strings.Index(hr.Result, "$$SOE")
	eoe := strings.Index(hr.Result, "$$EOE")
	if soe == -1 || eoe == -1 || eoe < soe {
		return RawPosition{}, fmt.Errorf("no ephemeris block in response")
	}

	type row struct {
		lon, lat, delta float64
	}
	var rows []row

	for _, line := range strings.Split(hr.Result[soe+5:eoe], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Rows carry: date, [flags], ObsEcLon, ObsEcLat, delta, deldot.
		// Collect the numeric fields after the date columns.
		fields := strings.Fields(line)
		var nums []float64
		for i := 2; i < len(fields); i++ {
			if v, err := strconv.ParseFloat(fields[i], 64); err == nil {
				nums = append(nums, v)
			}
		}
		if len(nums) < 3 {
			continue
		}
		rows = append(rows, row{lon: nums[0], lat: nums[1], delta: nums[2]})
	}

	if len(rows) == 0 {
		return RawPosition{}, fmt.Errorf("no data rows in ephemeris block")
	}

	pos := RawPosition{
		LonDeg:     astro.NormalizeDegree(rows[0].lon),
		LatDeg:     rows[0].lat,
		DistanceAU: rows[0].delta,
	}

	if len(rows) >= 2 {
		dLon := astro.SignedSeparation(rows[0].lon, rows[1].lon)
		pos.SpeedDegPerDay = dLon / speedStepDays
	}

	return pos, nil
}

// meanNodePosition computes the mean lunar node longitude (Meeus ch. 47).
// The node regresses, so its rate is always negative.
func meanNodePosition(jd float64, body Body) RawPosition {
	T := (jd - astro.J2000) / 36525.0

	omega := 125.0445479 -
		1934.1362891*T +
		0.0020754*T*T +
		T*T*T/467441.0 -
		T*T*T*T/60616000.0

	lon := astro.NormalizeDegree(omega)
	if body == BodyKetu {
		lon = astro.NormalizeDegree(lon + 180)
	}

	// d(omega)/dt in degrees per day; the polynomial terms beyond the
	// linear one are negligible at this precision.
	speed := (-1934.1362891 + 2*0.0020754*T) / 36525.0

	return RawPosition{
		LonDeg:         lon,
		LatDeg:         0,
		DistanceAU:     0, // nodes are geometric points
		SpeedDegPerDay: speed,
	}
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
