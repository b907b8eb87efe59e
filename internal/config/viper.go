package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Output struct {
		// Currency is the currency the HomeBank file is configured
		// for. Records in any other currency trigger a warning on
		// write, since the output format cannot carry a currency.
		Currency string `mapstructure:"currency"`
	} `mapstructure:"output"`
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// InitializeConfig loads configuration with the usual precedence:
// defaults, then an optional config file, then HBCONV_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.hbconv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HBCONV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A missing config file is fine; a broken one is not.
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.currency", "EUR")
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log.level '%s' is not a valid level", cfg.Log.Level)
	}

	format := strings.ToLower(cfg.Log.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", cfg.Log.Format)
	}

	if !currencyRe.MatchString(cfg.Output.Currency) {
		return fmt.Errorf("output.currency '%s' is not a three-letter currency code", cfg.Output.Currency)
	}

	return nil
}
