// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stickynote/internal/platform/config"
)

var testSecret = strings.Repeat("s", config.MinSecretLength)

/*
TestLoad_Defaults verifies the defaults applied on top of the required keys.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost/notes")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_Rejects covers configurations that must fail at startup.
*/
func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing_secret", map[string]string{"STORAGE_DRIVER": "memory"}},
		{"short_secret", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET": "short"}},
		{"postgres_without_dsn", map[string]string{"JWT_SECRET": testSecret}},
		{"unknown_driver", map[string]string{"JWT_SECRET": testSecret, "STORAGE_DRIVER": "sqlite"}},
		{"zero_rate_limit", map[string]string{"JWT_SECRET": testSecret, "STORAGE_DRIVER": "memory", "RATE_LIMIT_MAX": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("STORAGE_DRIVER", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_MemoryDriver verifies that the in-memory backend needs no DSN.
*/
func TestLoad_MemoryDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

/*
TestLoad_Environment verifies the environment helpers follow ENVIRONMENT.
*/
func TestLoad_Environment(t *testing.T) {
	tests := []struct {
		environment     string
		wantDevelopment bool
		wantProduction  bool
	}{
		{"development", true, false},
		{"staging", false, false},
		{"production", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("STORAGE_DRIVER", "memory")
			t.Setenv("ENVIRONMENT", tt.environment)

			cfg, err := config.Load()
			require.NoError(t, err)

			assert.Equal(t, tt.wantDevelopment, cfg.IsDevelopment())
			assert.Equal(t, tt.wantProduction, cfg.IsProduction())
		})
	}
}
