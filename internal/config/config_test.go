// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "prod" },
			wantErr: "ENVIRONMENT",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "  " },
			wantErr: "DUCKDB_PATH",
		},
		{
			name:    "zero query timeout",
			mutate:  func(c *Config) { c.Database.QueryTimeout = 0 },
			wantErr: "DUCKDB_QUERY_TIMEOUT",
		},
		{
			name:    "max limit too large",
			mutate:  func(c *Config) { c.Recommend.MaxLimit = 1000 },
			wantErr: "RECOMMEND_MAX_LIMIT",
		},
		{
			name:    "zero over-fetch factor",
			mutate:  func(c *Config) { c.Recommend.OverFetchFactor = 0 },
			wantErr: "RECOMMEND_OVER_FETCH_FACTOR",
		},
		{
			name:    "negative diversity warmup",
			mutate:  func(c *Config) { c.Recommend.DiversityWarmup = -1 },
			wantErr: "RECOMMEND_DIVERSITY_WARMUP",
		},
		{
			name:   "zero request timeout disables deadline",
			mutate: func(c *Config) { c.Recommend.RequestTimeout = 0 },
		},
		{
			name:    "breaker without threshold",
			mutate:  func(c *Config) { c.Breaker.FailureThreshold = 0 },
			wantErr: "BREAKER_FAILURE_THRESHOLD",
		},
		{
			name: "disabled breaker skips validation",
			mutate: func(c *Config) {
				c.Breaker.Enabled = false
				c.Breaker.FailureThreshold = 0
			},
		},
		{
			name:    "rate limit window too small",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = time.Millisecond },
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name: "disabled rate limit skips bounds",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{
			name: "production with explicit origins",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.CORSOrigins = []string{"https://learn.example.com"}
			},
		},
		{
			name:    "catalog without topic",
			mutate:  func(c *Config) { c.Catalog.Enabled = true; c.Catalog.Topic = "" },
			wantErr: "CATALOG_TOPIC",
		},
		{
			name: "embedded catalog ignores URL",
			mutate: func(c *Config) {
				c.Catalog.Enabled = true
				c.Catalog.EmbeddedServer = true
				c.Catalog.URL = ""
			},
		},
		{
			name: "embedded catalog needs store dir",
			mutate: func(c *Config) {
				c.Catalog.Enabled = true
				c.Catalog.EmbeddedServer = true
				c.Catalog.StoreDir = ""
			},
			wantErr: "NATS_STORE_DIR",
		},
		{
			name:    "catalog ack wait too short",
			mutate:  func(c *Config) { c.Catalog.Enabled = true; c.Catalog.AckWait = 10 * time.Millisecond },
			wantErr: "CATALOG_ACK_WAIT",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNATSURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"nats://127.0.0.1:4222", false},
		{"tls://nats.example.com:4222", false},
		{"wss://nats.example.com", false},
		{"http://nats:4222", true},
		{"nats://", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if err := validateNATSURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("validateNATSURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard default should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://learn.example.com"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}
