package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes to dir for the duration of the test, like t.Chdir
// (which requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestInitializeConfigDefaults(t *testing.T) {
	// Run from an empty directory so no stray config file is picked up.
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "EUR", cfg.Output.Currency)
}

func TestInitializeConfigFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HBCONV_LOG_LEVEL", "debug")
	t.Setenv("HBCONV_OUTPUT_CURRENCY", "CHF")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "CHF", cfg.Output.Currency)
}

func TestInitializeConfigRejectsBadCurrency(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HBCONV_OUTPUT_CURRENCY", "euros")

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Output.Currency = "EUR"
	assert.NoError(t, validateConfig(&cfg))

	cfg.Log.Level = "loud"
	assert.Error(t, validateConfig(&cfg))

	cfg.Log.Level = "info"
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(&cfg))
}

func TestConfigureLogging(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(&cfg)
	assert.Equal(t, "debug", logger.Level.String())
}
