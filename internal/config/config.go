// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL         string `yaml:"base_url"`
		Range           string `yaml:"range"`
		Interval        string `yaml:"interval"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"data_source"`
	News struct {
		BaseURL    string `yaml:"base_url"`
		MaxResults int    `yaml:"max_results"`
		DayFilter  *bool  `yaml:"day_filter"`
	} `yaml:"news"`
	AI struct {
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		Temperature float64 `yaml:"temperature"`
		APIKey      string  `yaml:"api_key"`
	} `yaml:"ai"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	Proxy                 string `yaml:"proxy"`
	LogLevel              string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKSCOPE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_RANGE"); v != "" {
		cfg.DataSource.Range = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.CacheTTLMinutes = n
		}
	}
	if v := os.Getenv("NEWS_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.News.MaxResults = n
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "1y"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "1wk"
	}
	if cfg.DataSource.CacheTTLMinutes == 0 {
		cfg.DataSource.CacheTTLMinutes = 5
	}
	if cfg.News.MaxResults == 0 {
		cfg.News.MaxResults = 5
	}
	if cfg.News.DayFilter == nil {
		dayFilter := true
		cfg.News.DayFilter = &dayFilter
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "mixtral-8x7b-32768"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.3
	}
	if cfg.RequestTimeoutSeconds == 0 {
		cfg.RequestTimeoutSeconds = 30
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required: set GROQ_API_KEY or ai.api_key in the config file")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	if c.DataSource.CacheTTLMinutes < 0 {
		return fmt.Errorf("data_source.cache_ttl_minutes must not be negative")
	}
	return nil
}

// CacheTTL returns the series cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.DataSource.CacheTTLMinutes) * time.Minute
}

// RequestTimeout returns the per-request collaborator deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// NewsDayFilter reports whether news searches restrict to the last day.
func (c *Config) NewsDayFilter() bool {
	return c.News.DayFilter == nil || *c.News.DayFilter
}
