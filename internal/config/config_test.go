package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the minimum environment for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SOURCE_PATH", "/data/export.csv")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Source.Delimiter != "," {
		t.Errorf("Source.Delimiter = %q, want %q", cfg.Source.Delimiter, ",")
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate = {%v, %d}, want {true, 100}", cfg.Rate.Enabled, cfg.Rate.RequestsPerMinute)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = {%q, %q}, want {info, text}", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SOURCE_DELIMITER", "\t")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Source.DelimiterRune() != '\t' {
		t.Errorf("DelimiterRune() = %q, want tab", cfg.Source.DelimiterRune())
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if cfg.Rate.Enabled {
		t.Error("Rate.Enabled = true, want false")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SOURCE_PATH", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded without SOURCE_PATH")
	}
	if !strings.Contains(err.Error(), "SOURCE_PATH") {
		t.Errorf("error %q does not mention SOURCE_PATH", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantPart string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"non-numeric port", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"bad duration", map[string]string{"CACHE_TTL": "soon"}, "CACHE_TTL"},
		{"zero ttl", map[string]string{"CACHE_TTL": "0s"}, "CACHE_TTL"},
		{"multi-char delimiter", map[string]string{"SOURCE_DELIMITER": ";;"}, "SOURCE_DELIMITER"},
		{"bad reference time", map[string]string{"SOURCE_REFERENCE_TIME": "yesterday"}, "SOURCE_REFERENCE_TIME"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"zero rate while enabled", map[string]string{"RATE_LIMIT_REQUESTS_PER_MINUTE": "0"}, "RATE_LIMIT_REQUESTS_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %s", err, tt.wantPart)
			}
		})
	}
}

func TestSourceConfig_ReferenceClock(t *testing.T) {
	src := SourceConfig{ReferenceTime: "2025-07-15T12:00:00Z"}
	got := src.ReferenceClock()()
	want := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ReferenceClock()() = %v, want %v", got, want)
	}

	// Unset reference time falls back to the wall clock.
	src = SourceConfig{}
	before := time.Now()
	now := src.ReferenceClock()()
	if now.Before(before) {
		t.Errorf("wall-clock ReferenceClock returned %v, before %v", now, before)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"", 8080, ":8080"},
		{"localhost", 3000, "localhost:3000"},
		{"", 0, ":0"},
	}

	for _, tt := range tests {
		c := ServerConfig{Host: tt.host, Port: tt.port}
		if got := c.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfig_String_MentionsSections(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := cfg.String()
	for _, part := range []string{"Server", "Source", "Cache", "Rate", "Logging"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() missing %s section: %s", part, s)
		}
	}
}
