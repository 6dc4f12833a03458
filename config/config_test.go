package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":   "postgres://league@localhost/league?sslmode=disable",
		"JWT_SECRET_KEY": "secret",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromEnv(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxMatchesPerDate)
	assert.Equal(t, 2, cfg.MaxMatchesPerPlayerPerDate)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["SERVER_PORT"] = "9000"
	env["LOG_LEVEL"] = "debug"
	env["SCHEDULE_MAX_MATCHES_PER_DATE"] = "4"
	env["SCHEDULE_MAX_MATCHES_PER_PLAYER_PER_DATE"] = "1"
	env["CORS_ALLOWED_ORIGINS"] = "https://league.example, https://admin.league.example ,"
	env["R2_ACCOUNT_ID"] = "acc"
	env["R2_ACCESS_KEY_ID"] = "key"
	env["R2_SECRET_ACCESS_KEY"] = "secret"
	env["R2_BUCKET_NAME"] = "draws"
	env["R2_PUBLIC_BASE_URL"] = "https://cdn.league.example"

	cfg, err := fromEnv(envOf(env))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 4, cfg.MaxMatchesPerDate)
	assert.Equal(t, 1, cfg.MaxMatchesPerPlayerPerDate)
	assert.Equal(t, []string{"https://league.example", "https://admin.league.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.ArchiveEnabled())
}

func TestFromEnvRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing database url", func(e map[string]string) { delete(e, "DATABASE_URL") }},
		{"missing jwt secret", func(e map[string]string) { delete(e, "JWT_SECRET_KEY") }},
		{"port not a number", func(e map[string]string) { e["SERVER_PORT"] = "http" }},
		{"port out of range", func(e map[string]string) { e["SERVER_PORT"] = "70000" }},
		{"unknown log level", func(e map[string]string) { e["LOG_LEVEL"] = "loud" }},
		{"zero per date", func(e map[string]string) { e["SCHEDULE_MAX_MATCHES_PER_DATE"] = "0" }},
		{"partial r2", func(e map[string]string) { e["R2_BUCKET_NAME"] = "draws" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)
			_, err := fromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
