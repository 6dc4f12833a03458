package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the league server reads from the environment.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     slog.Level

	MaxMatchesPerDate          int
	MaxMatchesPerPlayerPerDate int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	CORSAllowedOrigins []string
}

// ArchiveEnabled reports whether object storage is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != ""
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	perDate, err := intVar(getenv, "SCHEDULE_MAX_MATCHES_PER_DATE", 8)
	if err != nil {
		return nil, err
	}
	perPlayer, err := intVar(getenv, "SCHEDULE_MAX_MATCHES_PER_PLAYER_PER_DATE", 2)
	if err != nil {
		return nil, err
	}
	if perDate < 1 || perPlayer < 1 {
		return nil, fmt.Errorf("schedule limits must be at least 1, got %d per date and %d per player", perDate, perPlayer)
	}

	cfg := &Config{
		DatabaseURL:                dbURL,
		JWTSecretKey:               jwtKey,
		ServerPort:                 port,
		LogLevel:                   level,
		MaxMatchesPerDate:          perDate,
		MaxMatchesPerPlayerPerDate: perPlayer,
		R2AccountID:                getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:              getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:          getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:               getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:            getenv("R2_PUBLIC_BASE_URL"),
		CORSAllowedOrigins:         splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	r2 := []string{cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName, cfg.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return nil, fmt.Errorf("R2 storage is partially configured: set all R2_* variables or none")
	}

	return cfg, nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
