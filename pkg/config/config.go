package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/user/threat-log-analyzer/pkg/utils"
)

const (
	FeedModeBrowser = "browser"
	FeedModeHTTP    = "http"
)

// Config holds the application configuration.
type Config struct {
	LogFilePath string `mapstructure:"LOG_FILE_PATH"`
	OutputDir   string `mapstructure:"OUTPUT_DIR"`

	ThreatFeedURL   string `mapstructure:"THREAT_FEED_URL"`
	ThreatFeedMode  string `mapstructure:"THREAT_FEED_MODE"`
	PageLoadTimeout int    `mapstructure:"PAGE_LOAD_TIMEOUT"` // in seconds, 0 waits indefinitely

	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogEncoding string `mapstructure:"LOG_ENCODING"`
	AppLogFile  string `mapstructure:"APP_LOG_FILE"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	FlaggedTTLHours int    `mapstructure:"FLAGGED_TTL_HOURS"`

	MetricsTextfile string `mapstructure:"METRICS_TEXTFILE"`

	ServerPort     string `mapstructure:"SERVER_PORT"`
	ThreatSeedFile string `mapstructure:"THREAT_SEED_FILE"`
}

// Load reads configuration from a .env file and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The .env file is optional, environment variables alone are enough.
	_ = v.ReadInConfig()

	v.SetDefault("LOG_FILE_PATH", "server_logs.txt")
	v.SetDefault("OUTPUT_DIR", "Son_Qovluq")
	v.SetDefault("THREAT_FEED_URL", "http://127.0.0.1:8000/")
	v.SetDefault("THREAT_FEED_MODE", FeedModeBrowser)
	v.SetDefault("PAGE_LOAD_TIMEOUT", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "console")
	v.SetDefault("APP_LOG_FILE", "")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FLAGGED_TTL_HOURS", 48)
	v.SetDefault("METRICS_TEXTFILE", "")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("THREAT_SEED_FILE", "threat_seed.json")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ThreatFeedMode = strings.ToLower(strings.TrimSpace(cfg.ThreatFeedMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.ThreatFeedMode {
	case FeedModeBrowser, FeedModeHTTP:
	default:
		return fmt.Errorf("invalid THREAT_FEED_MODE %q: want %q or %q", c.ThreatFeedMode, FeedModeBrowser, FeedModeHTTP)
	}
	if err := utils.ValidateFeedURL(c.ThreatFeedURL); err != nil {
		return fmt.Errorf("invalid THREAT_FEED_URL: %w", err)
	}
	if c.PageLoadTimeout < 0 {
		return fmt.Errorf("invalid PAGE_LOAD_TIMEOUT %d: must not be negative", c.PageLoadTimeout)
	}
	return nil
}

// PageLoadTimeoutDuration returns the page load timeout, zero meaning none.
func (c *Config) PageLoadTimeoutDuration() time.Duration {
	return time.Duration(c.PageLoadTimeout) * time.Second
}

// FlaggedTTL returns how long flagged addresses stay marked in Redis.
func (c *Config) FlaggedTTL() time.Duration {
	return time.Duration(c.FlaggedTTLHours) * time.Hour
}
