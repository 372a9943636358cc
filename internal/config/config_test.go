package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"CUTCOND_CATALOG", "CUTCOND_MACHINE", "CUTCOND_MAX_POWER", "CUTCOND_MAX_TORQUE",
	"CUTCOND_POWER_WARNING", "CUTCOND_TORQUE_WARNING", "CUTCOND_ENGAGEMENT_RATIO",
	"CUTCOND_LOG_LEVEL", "CUTCOND_LOG_FORMAT", "CUTCOND_WORKERS",
}

// isolate clears the environment and runs from an empty directory so no .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "conditions_coupe_sandvik.json", cfg.CatalogPath)
	assert.Equal(t, "machine_capacities.json", cfg.MachinePath)
	assert.Equal(t, 14.9, cfg.MaxPower)
	assert.Equal(t, 95.0, cfg.MaxTorque)
	assert.Equal(t, 0.8, cfg.PowerWarning)
	assert.Equal(t, 0.8, cfg.TorqueWarning)
	assert.Equal(t, 0.7, cfg.EngagementRatio)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CUTCOND_MAX_POWER", "10.5")
	t.Setenv("CUTCOND_WORKERS", "8")
	t.Setenv("CUTCOND_LOG_FORMAT", "json")
	t.Setenv("CUTCOND_MAX_TORQUE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10.5, cfg.MaxPower)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 95.0, cfg.MaxTorque, "unparsable value falls back to default")
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	// godotenv does not override variables that are already set, even empty ones
	require.NoError(t, os.Unsetenv("CUTCOND_MACHINE"))
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("CUTCOND_MACHINE=curve.json\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CUTCOND_MACHINE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "curve.json", cfg.MachinePath)
}

func TestValidate(t *testing.T) {
	base := Config{MaxPower: 14.9, MaxTorque: 95, PowerWarning: 0.8, TorqueWarning: 0.8, EngagementRatio: 0.7, LogFormat: "text", Workers: 1}
	require.NoError(t, base.Validate())

	cases := map[string]func(*Config){
		"max power":  func(c *Config) { c.MaxPower = 0 },
		"max torque": func(c *Config) { c.MaxTorque = -1 },
		"warning":    func(c *Config) { c.PowerWarning = 1.5 },
		"ratio":      func(c *Config) { c.EngagementRatio = 0 },
		"workers":    func(c *Config) { c.Workers = 0 },
		"log format": func(c *Config) { c.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
