// Package config provides configuration management for the crawler,
// converter and summarizer tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL     = errors.New("crawler.base_url is required")
	ErrMissingOutputDir   = errors.New("crawler.output_dir is required")
	ErrInvalidFetchDelay  = errors.New("crawler.fetch_delay_ms must be non-negative")
	ErrInvalidTimeout     = errors.New("crawler.timeout_sec must be at least 1")
	ErrInvalidLogLevel    = errors.New("crawler.logging.level must be one of: debug, info, warn, error")
	ErrMissingModel       = errors.New("summarize.model is required")
	ErrMissingAPIBaseURL  = errors.New("summarize.api_base_url is required")
	ErrInvalidTemperature = errors.New("summarize.temperature must be between 0 and 2")
	ErrInvalidPricing     = errors.New("summarize.pricing rates must be non-negative")
)

// Config is the complete tool configuration.
type Config struct {
	Crawler   CrawlerConfig   `yaml:"crawler"`
	Summarize SummarizeConfig `yaml:"summarize"`
}

// CrawlerConfig contains fetch and output settings shared by the
// edition, article and converter stages.
type CrawlerConfig struct {
	BaseURL      string        `yaml:"base_url"`
	OutputDir    string        `yaml:"output_dir"`
	FetchDelayMs int           `yaml:"fetch_delay_ms"`
	TimeoutSec   int           `yaml:"timeout_sec"`
	Logging      LoggingConfig `yaml:"logging"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SummarizeConfig contains settings for the AI summarization stage.
// The API key itself is never stored here; it comes from the
// DEEPSEEK_API_KEY environment variable.
type SummarizeConfig struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Mock        bool          `yaml:"mock"`
	Pricing     PricingConfig `yaml:"pricing"`
}

// PricingConfig holds the per-1000-token USD rates used for cost
// estimation.
type PricingConfig struct {
	InputPer1K  float64 `yaml:"input_per_1k_usd"`
	OutputPer1K float64 `yaml:"output_per_1k_usd"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Crawler: CrawlerConfig{
			BaseURL:      "http://paper.people.com.cn/rmrb/pc/layout",
			OutputDir:    "output",
			FetchDelayMs: 500,
			TimeoutSec:   10,
			Logging:      LoggingConfig{Level: "info"},
		},
		Summarize: SummarizeConfig{
			APIBaseURL:  "https://api.deepseek.com",
			Model:       "deepseek-chat",
			Temperature: 0.3,
			Pricing: PricingConfig{
				InputPer1K:  0.0005,
				OutputPer1K: 0.0025,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file, filling omitted
// fields with defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Crawler.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Crawler.OutputDir == "" {
		return ErrMissingOutputDir
	}

	if c.Crawler.FetchDelayMs < 0 {
		return ErrInvalidFetchDelay
	}

	if c.Crawler.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Crawler.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Summarize.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}

	if c.Summarize.Model == "" {
		return ErrMissingModel
	}

	if c.Summarize.Temperature < 0 || c.Summarize.Temperature > 2 {
		return ErrInvalidTemperature
	}

	if c.Summarize.Pricing.InputPer1K < 0 || c.Summarize.Pricing.OutputPer1K < 0 {
		return ErrInvalidPricing
	}

	return nil
}

// FetchDelay returns the politeness delay inserted between consecutive
// section fetches.
func (c *CrawlerConfig) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

// Timeout returns the HTTP client timeout.
func (c *CrawlerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{BaseURL: %s, OutputDir: %s, Model: %s}",
		c.Crawler.BaseURL, c.Crawler.OutputDir, c.Summarize.Model)
}
