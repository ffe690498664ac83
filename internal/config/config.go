package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/nudge/internal/ambient"
)

// Config is read from NUDGE_* environment variables. Command-line flags
// override individual fields after loading.
type Config struct {
	DBPath       string        `env:"NUDGE_DB"`
	RedisURL     string        `env:"NUDGE_REDIS_URL"`
	TickInterval time.Duration `env:"NUDGE_TICK_INTERVAL" envDefault:"15s"`
	Debug        bool          `env:"NUDGE_DEBUG" envDefault:"false"`
	MetricsAddr  string        `env:"NUDGE_METRICS_ADDR"`

	// Latitude/longitude used by the static locator. Both must be set.
	Lat string `env:"NUDGE_LAT"`
	Lon string `env:"NUDGE_LON"`

	Ambient AmbientConfig
}

// AmbientConfig tunes the simulated signal probabilities.
type AmbientConfig struct {
	IdleProbability     float64 `env:"NUDGE_IDLE_PROBABILITY" envDefault:"0.4"`
	WaitingProbability  float64 `env:"NUDGE_WAITING_PROBABILITY" envDefault:"0.3"`
	LocationProbability float64 `env:"NUDGE_LOCATION_PROBABILITY" envDefault:"0.2"`
}

// Load reads an optional .env file from dotenvPath (ignored if missing) and
// then parses the environment.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("NUDGE_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	for name, p := range map[string]float64{
		"NUDGE_IDLE_PROBABILITY":     c.Ambient.IdleProbability,
		"NUDGE_WAITING_PROBABILITY":  c.Ambient.WaitingProbability,
		"NUDGE_LOCATION_PROBABILITY": c.Ambient.LocationProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	if (c.Lat == "") != (c.Lon == "") {
		return errors.New("NUDGE_LAT and NUDGE_LON must be set together")
	}
	if _, err := c.parseCoordinates(); err != nil {
		return err
	}
	return nil
}

// Coordinates returns the configured position, or nil when unset.
func (c *Config) Coordinates() *ambient.Coordinates {
	coords, _ := c.parseCoordinates()
	return coords
}

func (c *Config) parseCoordinates() (*ambient.Coordinates, error) {
	if c.Lat == "" || c.Lon == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("NUDGE_LAT must be a latitude in [-90, 90], got %q", c.Lat)
	}
	lon, err := strconv.ParseFloat(c.Lon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("NUDGE_LON must be a longitude in [-180, 180], got %q", c.Lon)
	}
	return &ambient.Coordinates{Lat: lat, Lon: lon}, nil
}

// AmbientBuilderConfig converts to the context builder's config.
func (c *Config) AmbientBuilderConfig() ambient.Config {
	return ambient.Config{
		IdleProbability:     c.Ambient.IdleProbability,
		WaitingProbability:  c.Ambient.WaitingProbability,
		LocationProbability: c.Ambient.LocationProbability,
	}
}
