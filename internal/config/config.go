package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config настройки сервера и клиента
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	IPLookup  IPLookupConfig  `yaml:"ip_lookup"`
	Client    ClientConfig    `yaml:"client"`
	Listing   ListingConfig   `yaml:"listing"`
	Inventory InventoryConfig `yaml:"inventory"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Seed            bool          `yaml:"seed"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type IPLookupConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ClientConfig struct {
	UserAgent string `yaml:"user_agent"`
}

type ListingConfig struct {
	PageSize       int           `yaml:"page_size"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
}

type InventoryConfig struct {
	LowStockThreshold int64 `yaml:"low_stock_threshold"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Addr: ":3000", ShutdownTimeout: 5 * time.Second, Seed: true},
		API:       APIConfig{BaseURL: "http://localhost:3000/api", Timeout: 10 * time.Second},
		IPLookup:  IPLookupConfig{URL: "https://api.ipify.org?format=json", Timeout: 3 * time.Second},
		Client:    ClientConfig{UserAgent: "techmart-builder/1.0"},
		Listing:   ListingConfig{PageSize: 10, SearchDebounce: 400 * time.Millisecond},
		Inventory: InventoryConfig{LowStockThreshold: 10},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path (optional) over the defaults and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("IP_LOOKUP_URL"); v != "" {
		cfg.IPLookup.URL = v
	}
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.Listing.PageSize <= 0 {
		return fmt.Errorf("config: listing.page_size must be positive")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("config: rate_limit values must not be negative")
	}
	return nil
}
