package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points config discovery at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDot, prevPaths := DotEnvFile, DefaultConfigPaths
	DotEnvFile = filepath.Join(dir, ".env")
	DefaultConfigPaths = []string{filepath.Join(dir, "config.yaml")}
	t.Cleanup(func() {
		DotEnvFile, DefaultConfigPaths = prevDot, prevPaths
	})
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Spotify.MaxRetries != 1 {
		t.Errorf("Spotify.MaxRetries = %d, want 1", cfg.Spotify.MaxRetries)
	}
	if cfg.Spotify.Timeout != 10*time.Second {
		t.Errorf("Spotify.Timeout = %v, want 10s", cfg.Spotify.Timeout)
	}
	if cfg.Spotify.APIURL != "https://api.spotify.com/v1" {
		t.Errorf("Spotify.APIURL = %q", cfg.Spotify.APIURL)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	isolate(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")

	_, err := Load()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	setCredentials(t)
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("SPOTIFY_TIMEOUT", "3s")
	t.Setenv("SPOTIFY_MAX_RETRIES", "3")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spotify.ClientID != "id" || cfg.Spotify.ClientSecret != "secret" {
		t.Errorf("credentials not loaded: %+v", cfg.Spotify)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr = %q, want 127.0.0.1:8080", cfg.Server.Addr())
	}
	if cfg.Spotify.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Spotify.Timeout)
	}
	if cfg.Spotify.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Spotify.MaxRetries)
	}
	if cfg.Breaker.Enabled {
		t.Errorf("Breaker.Enabled = true, want false")
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	// t.Setenv registers restoration; godotenv never overrides set variables.
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	os.Unsetenv("SPOTIFY_CLIENT_ID")
	os.Unsetenv("SPOTIFY_CLIENT_SECRET")

	content := "SPOTIFY_CLIENT_ID=from-dotenv\nSPOTIFY_CLIENT_SECRET=shh\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spotify.ClientID != "from-dotenv" {
		t.Errorf("ClientID = %q, want from-dotenv", cfg.Spotify.ClientID)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	setCredentials(t)

	path := filepath.Join(dir, "custom.yaml")
	yml := "server:\n  port: 9000\n  static_dir: ./public\nlogging:\n  format: console\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.StaticDir != "./public" {
		t.Errorf("StaticDir = %q, want ./public", cfg.Server.StaticDir)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero retries", func(c *Config) { c.Spotify.MaxRetries = 0 }, true},
		{"bad ratio", func(c *Config) { c.Breaker.FailureRatio = 1.5 }, true},
		{"ratio ignored when disabled", func(c *Config) {
			c.Breaker.Enabled = false
			c.Breaker.FailureRatio = 0
		}, false},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Spotify.ClientID = "id"
			cfg.Spotify.ClientSecret = "secret"
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
