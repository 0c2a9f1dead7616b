// Package config loads server settings from defaults, an optional .env file
// and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/satriahrh/inventario/internal/locale"
)

// Config holds runtime settings for the inventory server
type Config struct {
	Port     string
	BaseURL  string
	Env      string
	Timezone string
	// Location is the organisational area shown on the dashboard header
	Location string
	// Site is the physical site shown on the asset form header
	Site string
	// Operator is recorded as CreatedBy when a form does not name one
	Operator string
	SeedDemo bool
}

// LoadDefaults populates Config with development defaults
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.BaseURL = "http://localhost:8080"
	c.Env = "production"
	c.Timezone = locale.DefaultTimezone
	c.Location = "Área de Transformación Digital & TI"
	c.Site = "Argentina, Córdoba Capital"
	c.Operator = "sistema"
	c.SeedDemo = false
}

// Load builds a Config from defaults, then the .env files (missing files are
// ignored), then environment variables
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	setFromEnv(&cfg.Port, "PORT")
	setFromEnv(&cfg.BaseURL, "INVENTORY_BASE_URL")
	setFromEnv(&cfg.Env, "APP_ENV")
	setFromEnv(&cfg.Timezone, "INVENTORY_TIMEZONE")
	setFromEnv(&cfg.Location, "INVENTORY_LOCATION")
	setFromEnv(&cfg.Site, "INVENTORY_SITE")
	setFromEnv(&cfg.Operator, "INVENTORY_OPERATOR")

	if v := os.Getenv("INVENTORY_SEED_DEMO"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INVENTORY_SEED_DEMO %q: %w", v, err)
		}
		cfg.SeedDemo = seed
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs with development logging
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
