// Package config loads server settings from the environment.
//
// Sources, lowest precedence first: built-in defaults, a .env file, the
// process environment, and (when configured) an AWS Secrets Manager secret
// whose JSON keys are exported as environment variables before anything
// else is read.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/trailhead/internal/logging"
	"github.com/spf13/viper"
)

const (
	DefaultPort     = 3000
	DefaultBaseURL  = "https://developer.nps.gov/api/v1"
	DefaultTimeout  = 30 * time.Second
	DefaultCacheTTL = 5 * time.Minute
	DefaultLogLevel = "info"
)

// Config is read once at startup and is read-only afterwards.
type Config struct {
	APIKey    string        `mapstructure:"nps_api_key"`
	BaseURL   string        `mapstructure:"nps_base_url"`
	Timeout   time.Duration `mapstructure:"nps_timeout"`
	Port      int           `mapstructure:"port"`
	RedisURL  string        `mapstructure:"redis_url"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
}

// Options control where settings come from.
type Options struct {
	// EnvFile is the .env path; ENV_FILE_PATH overrides it.
	EnvFile string
	// SkipEnvFiles disables .env and secret loading. Used in tests.
	SkipEnvFiles bool
	Logger       *slog.Logger
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if !opts.SkipEnvFiles {
		LoadEnv(logger, opts.EnvFile)
	}

	v := viper.New()
	v.SetDefault("nps_api_key", "")
	v.SetDefault("nps_base_url", DefaultBaseURL)
	v.SetDefault("nps_timeout", DefaultTimeout)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", string(logging.FormatText))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Port)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("NPS_BASE_URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid NPS_TIMEOUT %s: must be positive", c.Timeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid CACHE_TTL %s: must not be negative", c.CacheTTL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Warnings lists problems that do not stop the server.
func (c *Config) Warnings() []string {
	var w []string
	if c.APIKey == "" {
		w = append(w, "NPS_API_KEY is not set; upstream requests will be rejected by the NPS API")
	}
	return w
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
