package ephem

import (
	"fmt"
	"os"
	"path/filepath"
)

// markerFile is written once into the data directory so later runs can
// detect a completed setup.
const markerFile = ".ls-jyotish"

// Setup prepares the auxiliary data directory used for cached ephemeris
// responses. It is idempotent and safe to call on every process start.
// I/O failures are returned to the caller, who may retry or continue in a
// degraded (uncached) mode; they are never silently swallowed.
func Setup(dataDir string) error {
	if dataDir == "" {
		return fmt.Errorf("ephemeris setup: data directory not configured")
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("ephemeris setup: create %s: %w", dataDir, err)
	}

	marker := filepath.Join(dataDir, markerFile)
	if _, err := os.Stat(marker); err == nil {
		return nil // already initialized
	}

	if err := os.WriteFile(marker, []byte("ephemeris data directory\n"), 0o644); err != nil {
		return fmt.Errorf("ephemeris setup: write marker: %w", err)
	}

	return nil
}
