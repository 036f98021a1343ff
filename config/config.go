// Package config provides configuration for keyword search runs
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/researchaccelerator-hub/tuberay/model/youtube"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "TUBERAY"

// Config holds everything a search run and its presentation need
type Config struct {
	// Provider access
	APIKey         string        `yaml:"api_key" json:"-" mapstructure:"api_key"`                               // YouTube Data API key
	Endpoint       string        `yaml:"endpoint" json:"endpoint,omitempty" mapstructure:"endpoint"`            // API base URL override, empty for the public endpoint
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout" mapstructure:"request_timeout"` // Timeout for a single API request
	SearchTimeout  time.Duration `yaml:"search_timeout" json:"search_timeout" mapstructure:"search_timeout"`    // Deadline for a whole search run

	// Search defaults
	MaxResults int    `yaml:"max_results" json:"max_results" mapstructure:"max_results"` // Number of videos to collect
	Period     string `yaml:"period" json:"period" mapstructure:"period"`                // all, hour, today, week, month, year
	Region     string `yaml:"region" json:"region" mapstructure:"region"`                // ISO 3166-1 alpha-2 country code, empty for none

	// Presentation
	Language string `yaml:"language" json:"language" mapstructure:"language"`    // BCP 47 tag used for text collation
	Output   string `yaml:"output" json:"output" mapstructure:"output"`          // "table" or "json"
	LogLevel string `yaml:"log_level" json:"log_level" mapstructure:"log_level"` // zerolog level name
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout: 30 * time.Second,
		SearchTimeout:  60 * time.Second,
		MaxResults:     10,
		Period:         string(youtube.PeriodAll),
		Region:         "KR",
		Language:       "ko",
		Output:         "table",
		LogLevel:       "info",
	}
}

// SetDefaults registers the defaults of DefaultConfig with v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("search_timeout", d.SearchTimeout)
	v.SetDefault("max_results", d.MaxResults)
	v.SetDefault("period", d.Period)
	v.SetDefault("region", d.Region)
	v.SetDefault("language", d.Language)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
}

// Load builds a Config from v. Layers, lowest first: defaults, the optional config
// file at configFile, a .env file in the working directory, TUBERAY_* environment
// variables, and any flags already bound to v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The key is commonly exported under the provider's name
	if err := v.BindEnv("api_key", EnvPrefix+"_API_KEY", "YOUTUBE_API_KEY", "VITE_YOUTUBE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key environment: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. A missing API key is not an
// error here; it surfaces as a credential failure on the first search.
func (c *Config) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.SearchTimeout <= 0 {
		return fmt.Errorf("search_timeout must be positive")
	}

	if !youtube.IsValidPeriod(c.Period) {
		return fmt.Errorf("invalid period '%s', must be one of: all, hour, today, week, month, year", c.Period)
	}

	region, err := youtube.NormalizeRegion(c.Region)
	if err != nil {
		return err
	}
	c.Region = region

	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output '%s', must be one of: table, json", c.Output)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}

	return nil
}

// HasAPIKey reports whether an API key was configured
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SearchRequest builds a search request for keyword from the configured defaults
func (c *Config) SearchRequest(keyword string) youtube.SearchRequest {
	return youtube.SearchRequest{
		Keyword:    keyword,
		MaxResults: c.MaxResults,
		Period:     youtube.ParsePeriod(c.Period),
		Region:     c.Region,
	}
}
