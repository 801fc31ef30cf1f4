package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PaperSize describes a physical page size in inches, as expected by
// Chrome's printToPDF.
type PaperSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PostgresConfig holds connection settings for the API token store.
// Host may also be a full postgres:// DSN, in which case the other
// fields are ignored.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Config is the full service configuration, loaded once at startup.
type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Prefork bool   `yaml:"prefork"`
	} `yaml:"server"`

	PDF struct {
		ChromePath      string               `yaml:"chrome_path"`
		ChromeNoSandbox bool                 `yaml:"chrome_no_sandbox"`
		ChromePoolSize  int                  `yaml:"chrome_pool_size"`
		UserDataDir     string               `yaml:"user_data_dir"`
		TimeoutSecs     int                  `yaml:"timeout_secs"`
		DefaultPaper    string               `yaml:"default_paper"`
		PaperSizes      map[string]PaperSize `yaml:"paper_sizes"`
	} `yaml:"pdf"`

	Redis struct {
		Host        string `yaml:"host"`
		RateLimitDB int    `yaml:"rate_limit_db"`
		StatsDB     int    `yaml:"stats_db"`
	} `yaml:"redis"`

	Logger struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
		Level      string `yaml:"level"`
	} `yaml:"logger"`

	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`

	Limits struct {
		MaxBodyBytes int `yaml:"max_body_bytes"`
		MaxPDFBytes  int `yaml:"max_pdf_bytes"`
	} `yaml:"limits"`

	Auth struct {
		Postgres PostgresConfig `yaml:"postgres"`
	} `yaml:"auth"`
}

// RateLimiterConfig holds the shared limiter window. The interval is
// written as a Go duration string in yaml ("30s", "1m", "1h").
type RateLimiterConfig struct {
	Interval          time.Duration
	UserLimit         int
	EnableUserLimiter bool
}

func (r *RateLimiterConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Interval          string `yaml:"interval"`
		UserLimit         int    `yaml:"user_limit"`
		EnableUserLimiter bool   `yaml:"enable_user_limiter"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("rate_limiter.interval: %w", err)
		}
		r.Interval = d
	}
	r.UserLimit = raw.UserLimit
	r.EnableUserLimiter = raw.EnableUserLimiter
	return nil
}

// AppConfig is the process-wide configuration set by LoadConfig.
var AppConfig Config

// LoadConfig reads config.yaml (or CONFIG_PATH) and fills in defaults for
// anything not set. A missing config file is not an error; the defaults
// are enough to run locally.
func LoadConfig() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic("invalid config file " + path + ": " + err.Error())
		}
	}

	applyDefaults(&cfg)
	AppConfig = cfg
	return cfg
}

// GetConfig returns the configuration loaded by LoadConfig.
func GetConfig() Config {
	return AppConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.PDF.TimeoutSecs <= 0 {
		cfg.PDF.TimeoutSecs = 30
	}
	if cfg.PDF.DefaultPaper == "" {
		cfg.PDF.DefaultPaper = "A4"
	}
	if cfg.PDF.PaperSizes == nil {
		cfg.PDF.PaperSizes = map[string]PaperSize{
			"A4":     {Width: 8.27, Height: 11.69},
			"A5":     {Width: 5.83, Height: 8.27},
			"LETTER": {Width: 8.5, Height: 11},
		}
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost:6379"
	}
	if cfg.Logger.File == "" {
		cfg.Logger.File = "logs/exampdf.log"
	}
	if cfg.Logger.MaxSizeMB <= 0 {
		cfg.Logger.MaxSizeMB = 10
	}
	if cfg.Logger.MaxBackups <= 0 {
		cfg.Logger.MaxBackups = 3
	}
	if cfg.Logger.MaxAgeDays <= 0 {
		cfg.Logger.MaxAgeDays = 14
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.RateLimiter.Interval <= 0 {
		cfg.RateLimiter.Interval = time.Minute
	}
	if cfg.Limits.MaxBodyBytes <= 0 {
		cfg.Limits.MaxBodyBytes = 2 << 20 // 2 MiB of JSON is a very large paper
	}
	if cfg.Limits.MaxPDFBytes <= 0 {
		cfg.Limits.MaxPDFBytes = 20 << 20
	}
}
