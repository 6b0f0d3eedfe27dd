// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolateConfig runs the test in an empty directory with no config file
// and clears every mapped environment variable.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/curio.duckdb" {
		t.Errorf("Database.Path = %q, want /data/curio.duckdb", cfg.Database.Path)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("Recommend.DefaultLimit = %d, want 10", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.MaxLimit != 50 {
		t.Errorf("Recommend.MaxLimit = %d, want 50", cfg.Recommend.MaxLimit)
	}
	if cfg.Recommend.OverFetchFactor != 3 {
		t.Errorf("Recommend.OverFetchFactor = %d, want 3", cfg.Recommend.OverFetchFactor)
	}
	if cfg.Recommend.DiversityWarmup != 3 || cfg.Recommend.DiversityRelaxedTail != 2 {
		t.Errorf("diversity = (%d, %d), want (3, 2)", cfg.Recommend.DiversityWarmup, cfg.Recommend.DiversityRelaxedTail)
	}
	if !cfg.Breaker.Enabled {
		t.Error("Breaker.Enabled should be true by default")
	}
	if cfg.Catalog.Enabled {
		t.Error("Catalog.Enabled should be false by default")
	}
	if cfg.Catalog.Topic != "catalog.events" {
		t.Errorf("Catalog.Topic = %q, want catalog.events", cfg.Catalog.Topic)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"DUCKDB_PATH", "database.path"},
		{"CATALOG_SEED_FILE", "database.seed_file"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_MAX_LIMIT", "recommend.max_limit"},
		{"RECOMMEND_OVER_FETCH_FACTOR", "recommend.over_fetch_factor"},
		{"BREAKER_FAILURE_THRESHOLD", "breaker.failure_threshold"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"NATS_URL", "catalog.url"},
		{"NATS_EMBEDDED", "catalog.embedded_server"},
		{"CATALOG_DEDUPE_PATH", "catalog.dedupe_path"},
		{"log_format", "logging.format"},

		// Unmapped variables are ignored
		{"HOME", ""},
		{"PATH", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile tests config file discovery
func TestFindConfigFile(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		isolateConfig(t)
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("config.yaml in working directory", func(t *testing.T) {
		isolateConfig(t)
		if err := os.WriteFile("config.yaml", []byte("server: {}"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		isolateConfig(t)
		custom := writeConfig(t, "server: {}")
		t.Setenv(ConfigPathEnvVar, custom)
		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		isolateConfig(t)
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_MAX_LIMIT", "25")
	t.Setenv("RECOMMEND_REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.MaxLimit != 25 {
		t.Errorf("Recommend.MaxLimit = %d, want 25", cfg.Recommend.MaxLimit)
	}
	if cfg.Recommend.RequestTimeout != 3*time.Second {
		t.Errorf("Recommend.RequestTimeout = %v, want 3s", cfg.Recommend.RequestTimeout)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Untouched values keep their defaults
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("Recommend.DefaultLimit = %d, want 10", cfg.Recommend.DefaultLimit)
	}
}

// TestLoadWithKoanfConfigFile tests loading from a YAML config file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, `
server:
  port: 7070
database:
  path: /tmp/test.duckdb
  seed_file: /tmp/catalog.yaml
recommend:
  over_fetch_factor: 4
security:
  cors_origins:
    - https://learn.example.com
catalog:
  enabled: true
  url: nats://nats.internal:4222
  dedupe_path: /tmp/dedupe
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/test.duckdb", cfg.Database.Path)
	}
	if cfg.Database.SeedFile != "/tmp/catalog.yaml" {
		t.Errorf("Database.SeedFile = %q, want /tmp/catalog.yaml", cfg.Database.SeedFile)
	}
	if cfg.Recommend.OverFetchFactor != 4 {
		t.Errorf("Recommend.OverFetchFactor = %d, want 4", cfg.Recommend.OverFetchFactor)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://learn.example.com"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if !cfg.Catalog.Enabled || cfg.Catalog.URL != "nats://nats.internal:4222" {
		t.Errorf("Catalog = %+v, want enabled with nats.internal URL", cfg.Catalog)
	}
}

// TestLoadWithKoanfEnvOverridesFile verifies ENV > File precedence
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, `
server:
  port: 7070
logging:
  level: warn
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DUCKDB_PATH", "/custom/db.duckdb")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
	if cfg.Database.Path != "/custom/db.duckdb" {
		t.Errorf("Database.Path = %q, want /custom/db.duckdb", cfg.Database.Path)
	}
}

// TestLoadFromFile covers the explicit path used by the CLI
func TestLoadFromFile(t *testing.T) {
	isolateConfig(t)

	t.Run("explicit file", func(t *testing.T) {
		path := writeConfig(t, "recommend:\n  default_limit: 5\n")
		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.Recommend.DefaultLimit != 5 {
			t.Errorf("Recommend.DefaultLimit = %d, want 5", cfg.Recommend.DefaultLimit)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("LoadFromFile() with missing file should fail")
		}
	})

	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadFromFile("")
		if err != nil {
			t.Fatalf("LoadFromFile(\"\") error = %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
		}
	})
}

// TestLoadWithKoanfValidation verifies that invalid values fail the load
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid port",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "default above max",
			env:     map[string]string{"RECOMMEND_DEFAULT_LIMIT": "80"},
			wantErr: "RECOMMEND_DEFAULT_LIMIT",
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "wildcard CORS in production",
			env:     map[string]string{"ENVIRONMENT": "production"},
			wantErr: "CORS_ORIGINS",
		},
		{
			name:    "catalog with bad NATS URL",
			env:     map[string]string{"CATALOG_ENABLED": "true", "NATS_URL": "http://nats:4222"},
			wantErr: "NATS_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
