// Package config loads the ledger's settings through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
	KeyCurrency  = "display.currency"
)

// Defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultCurrency  = "Rs."
)

// Config holds the resolved settings for a session.
type Config struct {
	LogLevel  string
	LogFormat string
	Currency  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyCurrency, DefaultCurrency)
}

// Load reads the settings from v and validates them.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		Currency:  v.GetString(KeyCurrency),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings and returns an error describing every problem.
func (c Config) Validate() error {
	var problems []string

	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
