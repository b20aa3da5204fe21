// Package config loads moodmix settings from defaults, an optional YAML file,
// a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingCredentials is returned when the Spotify client id or secret is empty.
var ErrMissingCredentials = errors.New("config: spotify client id and secret are required")

// Config is the top-level service configuration.
type Config struct {
	Spotify SpotifyConfig `koanf:"spotify"`
	Breaker BreakerConfig `koanf:"breaker"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// SpotifyConfig holds the Web API credentials and transport settings.
type SpotifyConfig struct {
	ClientID       string        `koanf:"client_id"`
	ClientSecret   string        `koanf:"client_secret"`
	APIURL         string        `koanf:"api_url"`
	TokenURL       string        `koanf:"token_url"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"` // 1 = single attempt
	RetryBackoffMs int           `koanf:"retry_backoff_ms"`
	Market         string        `koanf:"market"`
}

// BreakerConfig controls the circuit breaker placed in front of the provider.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

type ServerConfig struct {
	Port        int      `koanf:"port"`
	Host        string   `koanf:"host"`
	CORSOrigins []string `koanf:"cors_origins"`
	StaticDir   string   `koanf:"static_dir"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Spotify.ClientID) == "" || strings.TrimSpace(c.Spotify.ClientSecret) == "" {
		return ErrMissingCredentials
	}
	if c.Spotify.MaxRetries < 1 {
		return fmt.Errorf("config: SPOTIFY_MAX_RETRIES must be at least 1, got %d", c.Spotify.MaxRetries)
	}
	if c.Spotify.Timeout <= 0 {
		return fmt.Errorf("config: SPOTIFY_TIMEOUT must be positive, got %s", c.Spotify.Timeout)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Breaker.Enabled && (c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1) {
		return fmt.Errorf("config: BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
