// Package config loads and validates cutcond configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Data sources.
	CatalogPath string // insert catalogue, JSON or YAML
	MachinePath string // machine speed/power/torque curve, JSON

	// Global machine envelope, used outside the sampled curve.
	MaxPower  float64 // kW
	MaxTorque float64 // Nm

	// Advisory thresholds.
	PowerWarning    float64 // fraction of local power
	TorqueWarning   float64 // fraction of local torque
	EngagementRatio float64 // fraction of D

	// Operational settings.
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
	Workers   int    // batch evaluation concurrency
}

// Load reads an optional .env file, then configuration from environment
// variables with defaults.
func Load() (Config, error) {
	// Load .env file if present (non-fatal).
	_ = godotenv.Load()

	cfg := Config{
		CatalogPath:     envStr("CUTCOND_CATALOG", "conditions_coupe_sandvik.json"),
		MachinePath:     envStr("CUTCOND_MACHINE", "machine_capacities.json"),
		MaxPower:        envFloat("CUTCOND_MAX_POWER", 14.9),
		MaxTorque:       envFloat("CUTCOND_MAX_TORQUE", 95.0),
		PowerWarning:    envFloat("CUTCOND_POWER_WARNING", 0.8),
		TorqueWarning:   envFloat("CUTCOND_TORQUE_WARNING", 0.8),
		EngagementRatio: envFloat("CUTCOND_ENGAGEMENT_RATIO", 0.7),
		LogLevel:        envStr("CUTCOND_LOG_LEVEL", "info"),
		LogFormat:       envStr("CUTCOND_LOG_FORMAT", "text"),
		Workers:         envInt("CUTCOND_WORKERS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if !(c.MaxPower > 0) {
		return fmt.Errorf("config: CUTCOND_MAX_POWER must be positive")
	}
	if !(c.MaxTorque > 0) {
		return fmt.Errorf("config: CUTCOND_MAX_TORQUE must be positive")
	}
	for name, v := range map[string]float64{
		"CUTCOND_POWER_WARNING":    c.PowerWarning,
		"CUTCOND_TORQUE_WARNING":   c.TorqueWarning,
		"CUTCOND_ENGAGEMENT_RATIO": c.EngagementRatio,
	} {
		if !(v > 0 && v <= 1) {
			return fmt.Errorf("config: %s must be in (0,1], got %g", name, v)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: CUTCOND_WORKERS must be >= 1")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: CUTCOND_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
