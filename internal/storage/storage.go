// Package storage persists birth charts in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/litescript/ls-jyotish/internal/chart"
)

// ErrNotFound is returned when a chart id does not exist.
var ErrNotFound = errors.New("chart not found")

const schema = `
CREATE TABLE IF NOT EXISTS charts (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	birth_time  TEXT NOT NULL,
	timezone    TEXT NOT NULL,
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	chart_json  BLOB NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_charts_name ON charts(name);
`

// ChartRecord is a stored chart row. Timestamps are kept as RFC 3339
// text so the rows stay portable across SQLite drivers.
type ChartRecord struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	BirthTime string  `db:"birth_time"`
	Timezone  string  `db:"timezone"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Location  string  `db:"location"`
	ChartJSON []byte  `db:"chart_json"`
	CreatedAt string  `db:"created_at"`
}

// Store wraps the chart database.
type Store struct {
	db  *sqlx.DB
	log *slog.Logger
}

// Open connects to (and if needed creates) the database at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open chart db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init chart db schema: %w", err)
	}
	log.Debug("chart store opened", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChart stores a calculated chart and returns its new id.
func (s *Store) SaveChart(ctx context.Context, c *chart.VedicChart) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}

	rec := ChartRecord{
		ID:        uuid.NewString(),
		Name:      c.Birth.Name,
		BirthTime: c.Birth.DateTime.Format(time.RFC3339),
		Timezone:  c.Birth.Timezone,
		Latitude:  c.Birth.Latitude,
		Longitude: c.Birth.Longitude,
		Location:  c.Birth.Location,
		ChartJSON: payload,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	const q = `INSERT INTO charts
		(id, name, birth_time, timezone, latitude, longitude, location, chart_json, created_at)
		VALUES (:id, :name, :birth_time, :timezone, :latitude, :longitude, :location, :chart_json, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, q, rec); err != nil {
		return "", fmt.Errorf("insert chart: %w", err)
	}
	s.log.Info("chart saved", "id", rec.ID, "name", rec.Name)
	return rec.ID, nil
}

// ListCharts returns all stored charts, newest first, without payloads.
func (s *Store) ListCharts(ctx context.Context) ([]ChartRecord, error) {
	var recs []ChartRecord
	const q = `SELECT id, name, birth_time, timezone, latitude, longitude, location, '' AS chart_json, created_at
		FROM charts ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &recs, q); err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	return recs, nil
}

// GetChart loads a stored chart by id.
func (s *Store) GetChart(ctx context.Context, id string) (*chart.VedicChart, error) {
	var rec ChartRecord
	const q = `SELECT * FROM charts WHERE id = ?`
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load chart %s: %w", id, err)
	}

	var c chart.VedicChart
	if err := json.Unmarshal(rec.ChartJSON, &c); err != nil {
		return nil, fmt.Errorf("decode chart %s: %w", id, err)
	}
	return &c, nil
}

// DeleteChart removes a stored chart by id.
func (s *Store) DeleteChart(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chart %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chart %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("chart deleted", "id", id)
	return nil
}
