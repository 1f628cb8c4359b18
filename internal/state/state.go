// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/dasha"
	"github.com/litescript/ls-jyotish/internal/gochara"
	"github.com/litescript/ls-jyotish/internal/panchanga"
	"github.com/litescript/ls-jyotish/internal/strength"
	"github.com/litescript/ls-jyotish/internal/varga"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventSignIngress   EventType = "SIGN_INGRESS"
	EventRetroStation  EventType = "RETRO_STATION"
	EventDirectStation EventType = "DIRECT_STATION"
	EventTithiChange   EventType = "TITHI_CHANGE"
	EventNewWindow     EventType = "TRANSIT_WINDOW"
)

// Event represents a detected change between two computations.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Planet    string    `json:"planet,omitempty"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Data bundles one complete computation pass over a natal chart.
type Data struct {
	Natal     *chart.VedicChart
	Vargas    map[varga.Division]*varga.DivisionalChart
	Panchanga *panchanga.Panchanga
	Dasha     *dasha.System
	Strengths []strength.Result
	Transit   *gochara.Analysis
	Timestamp time.Time
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *Data
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Previous transit facts for event detection
	prevSigns   map[chart.Planet]chart.Sign
	prevRetro   map[chart.Planet]bool
	prevTithi   int
	prevWindows map[string]bool
	hadTransit  bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		prevSigns:       make(map[chart.Planet]chart.Sign),
		prevRetro:       make(map[chart.Planet]bool),
		prevTithi:       -1,
		prevWindows:     make(map[string]bool),
	}
}

// Update atomically replaces the state with a new computation pass.
func (m *Manager) Update(data *Data, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if data == nil {
		return
	}

	m.detectEvents(data)
	m.current = data
}

// detectEvents compares new data with previous state and generates events.
func (m *Manager) detectEvents(data *Data) {
	now := time.Now()

	if data.Transit != nil && data.Transit.TransitChart != nil {
		newSigns := make(map[chart.Planet]chart.Sign)
		newRetro := make(map[chart.Planet]bool)
		for _, p := range data.Transit.TransitChart.Positions {
			newSigns[p.Planet] = p.Sign
			newRetro[p.Planet] = p.Retrograde

			if old, seen := m.prevSigns[p.Planet]; seen && old != p.Sign {
				m.addEvent(Event{
					Type:      EventSignIngress,
					Timestamp: now,
					Planet:    p.Planet.String(),
					OldValue:  old.String(),
					NewValue:  p.Sign.String(),
				})
			}
			if old, seen := m.prevRetro[p.Planet]; seen && old != p.Retrograde {
				typ := EventDirectStation
				if p.Retrograde {
					typ = EventRetroStation
				}
				m.addEvent(Event{
					Type:      typ,
					Timestamp: now,
					Planet:    p.Planet.String(),
				})
			}
		}
		m.prevSigns = newSigns
		m.prevRetro = newRetro

		windows := make(map[string]bool)
		for _, w := range data.Transit.Significant {
			windows[w.Name] = true
			if m.hadTransit && !m.prevWindows[w.Name] {
				m.addEvent(Event{
					Type:      EventNewWindow,
					Timestamp: now,
					Planet:    w.Planet.String(),
					Detail:    w.Name,
				})
			}
		}
		m.prevWindows = windows
		m.hadTransit = true
	}

	if data.Panchanga != nil {
		if m.prevTithi >= 0 && m.prevTithi != data.Panchanga.Tithi.Index {
			m.addEvent(Event{
				Type:      EventTithiChange,
				Timestamp: now,
				NewValue:  data.Panchanga.Tithi.Name,
			})
		}
		m.prevTithi = data.Panchanga.Tithi.Index
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Data            *Data
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Data:            m.current,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true if at least one computation has completed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
