// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable the configuration reads.
const EnvPrefix = "EXPENSE"

// Config represents the complete application configuration
type Config struct {
	Server struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		Password       string `mapstructure:"password" yaml:"-"` // Never serialize the password
	} `mapstructure:"server" yaml:"server"`

	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Display struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
		DateLayout     string `mapstructure:"date_layout" yaml:"date_layout"`
	} `mapstructure:"display" yaml:"display"`

	Presets struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"presets" yaml:"presets"`
}

// Timeout returns the request timeout as a duration. Zero means no timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// flagKeys maps command-line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"server":        "server.base_url",
	"timeout":       "server.timeout_seconds",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"log-file":      "log.file",
	"csv-delimiter": "csv.delimiter",
	"currency":      "display.currency_symbol",
	"presets-file":  "presets.file",
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then the config file, then EXPENSE_* environment variables, then flags.
// configFile overrides the search path when set; flags may be nil.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-view")
		v.AddConfigPath(".expense-view")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The password has a short alias since it usually lives in .env
	if err := v.BindEnv("server.password", EnvPrefix+"_SERVER_PASSWORD", EnvPrefix+"_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_PASSWORD environment variable: %w", EnvPrefix, err)
	}

	// 6. Flags win over everything else, but only when set explicitly
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 7. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.timeout_seconds", 0)
	v.SetDefault("server.password", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Display defaults
	v.SetDefault("display.currency_symbol", "$")
	v.SetDefault("display.date_layout", "2006-01-02")

	// Presets defaults
	v.SetDefault("presets.file", "presets.yaml")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate server
	base, err := url.Parse(config.Server.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("server.base_url must be an http(s) URL, got: %q", config.Server.BaseURL)
	}

	if config.Server.TimeoutSeconds < 0 || config.Server.TimeoutSeconds > 600 {
		return fmt.Errorf("server.timeout_seconds must be between 0 (none) and 600, got: %d", config.Server.TimeoutSeconds)
	}

	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Presets.File == "" {
		return fmt.Errorf("presets.file cannot be empty")
	}

	return nil
}
