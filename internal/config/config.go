// Package config loads the service configuration from a TOML file,
// with secrets taken from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Weather  WeatherConfig  `toml:"weather"`
	Advisory AdvisoryConfig `toml:"advisory"`
	Scanner  ScannerConfig  `toml:"scanner"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// WeatherConfig represents the weather provider configuration. The API
// key comes from the OPENWEATHER_API_KEY environment variable, never
// from the file.
type WeatherConfig struct {
	APIBaseURL            string `toml:"api_base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	MaxRetries            int    `toml:"max_retries"`
	CacheExpiryMinutes    int    `toml:"cache_expiry_minutes"`
	APIKey                string `toml:"-"`
}

// AdvisoryConfig represents the generative provider configuration. The
// API key comes from the OPENAI_API_KEY environment variable.
type AdvisoryConfig struct {
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	APIKey         string  `toml:"-"`
}

// ScannerConfig represents the conflict scanner configuration
type ScannerConfig struct {
	WindowDays int `toml:"window_days"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Weather: WeatherConfig{
			APIBaseURL:            "https://api.openweathermap.org/data/2.5",
			RequestTimeoutSeconds: 10,
			MaxRetries:            2,
			CacheExpiryMinutes:    15,
		},
		Advisory: AdvisoryConfig{
			Model:          "gpt-4o",
			Temperature:    0.7,
			MaxTokens:      1024,
			TimeoutSeconds: 30,
		},
		Scanner: ScannerConfig{
			WindowDays: 7,
		},
	}
}

// Load reads the configuration file at path, applying defaults for
// anything unset and secrets from the environment. A missing file is
// not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.Advisory.APIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Weather.APIBaseURL == "" {
		return fmt.Errorf("weather api_base_url must not be empty")
	}
	if c.Scanner.WindowDays < 1 || c.Scanner.WindowDays > 7 {
		return fmt.Errorf("scanner window_days must be in [1,7], got %d", c.Scanner.WindowDays)
	}
	if c.Advisory.Temperature < 0 || c.Advisory.Temperature > 2 {
		return fmt.Errorf("advisory temperature must be in [0,2], got %f", c.Advisory.Temperature)
	}
	return nil
}

// WeatherTimeout returns the weather request timeout as a duration
func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.Weather.RequestTimeoutSeconds) * time.Second
}

// WeatherCacheExpiry returns the forecast cache expiry as a duration
func (c *Config) WeatherCacheExpiry() time.Duration {
	return time.Duration(c.Weather.CacheExpiryMinutes) * time.Minute
}

// AdvisoryTimeout returns the advisory request timeout as a duration
func (c *Config) AdvisoryTimeout() time.Duration {
	return time.Duration(c.Advisory.TimeoutSeconds) * time.Second
}
