// Package config loads runtime configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/litescript/ls-jyotish/internal/logging"
)

// envPrefix namespaces every variable: JYOTISH_PROVIDER, JYOTISH_LOG_LEVEL, ...
const envPrefix = "JYOTISH"

// Config is the full runtime configuration. Calculators receive these
// choices as explicit parameters; nothing reads the environment after
// load time.
type Config struct {
	// Provider selects the ephemeris backend: horizons or static.
	Provider string `envconfig:"PROVIDER" default:"horizons"`
	// Ayanamsa selects the sidereal offset model.
	Ayanamsa string `envconfig:"AYANAMSA" default:"lahiri"`
	// HouseSystem selects the cusp algorithm: placidus, equal, whole-sign.
	HouseSystem string `envconfig:"HOUSE_SYSTEM" default:"placidus"`
	// DataDir holds provider auxiliary files and the chart database.
	DataDir string `envconfig:"DATA_DIR"`
	// DBFile overrides the chart database location inside DataDir.
	DBFile string `envconfig:"DB_FILE" default:"charts.db"`
	// HTTPTimeout bounds every remote ephemeris request.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	Log logging.Config `envconfig:"LOG"`
}

// FromEnv reads configuration, consulting a local .env file when
// present. A missing .env is not an error.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".ls-jyotish")
	}

	return cfg, nil
}

// DBPath is the resolved chart database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}
