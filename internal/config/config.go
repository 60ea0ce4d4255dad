package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaultpass/passgen/internal/crypto"
)

const defaultJWTSecret = "dev-secret-change-in-production"

var ErrDefaultSecretInProduction = errors.New("JWT_SECRET must be set in production environment")

// CLIConfig holds the only settings the interactive generator reads.
type CLIConfig struct {
	Entropy  string
	LogLevel slog.Level
}

// Config holds settings for the API server.
type Config struct {
	CLIConfig

	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	APIKeyHash     string
	APIClient      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadDotEnv loads .env from the working directory if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
}

// LoadCLI reads PASSGEN_ENTROPY and LOG_LEVEL and nothing else, so server
// settings in the environment never affect the interactive generator.
func LoadCLI(defaultLevel slog.Level) (CLIConfig, error) {
	cfg := CLIConfig{
		Entropy:  normalizeEntropy(os.Getenv("PASSGEN_ENTROPY")),
		LogLevel: defaultLevel,
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return CLIConfig{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
		}
	}

	if _, err := crypto.NewSource(cfg.Entropy); err != nil {
		return CLIConfig{}, fmt.Errorf("PASSGEN_ENTROPY %q: %w", cfg.Entropy, err)
	}

	return cfg, nil
}

// Load reads the API server configuration from the environment. defaultLevel
// is used when LOG_LEVEL is unset.
func Load(defaultLevel slog.Level) (Config, error) {
	cli, err := LoadCLI(defaultLevel)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		CLIConfig:   cli,
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		APIKeyHash:  os.Getenv("API_KEY_HASH"),
		APIClient:   getEnv("API_CLIENT", "default"),
	}

	if cfg.JWTExpiry, err = time.ParseDuration(getEnv("JWT_EXPIRY", "24h")); err != nil {
		return Config{}, fmt.Errorf("parsing JWT_EXPIRY: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("parsing RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10")); err != nil {
		return Config{}, fmt.Errorf("parsing RATE_LIMIT_BURST: %w", err)
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, ErrDefaultSecretInProduction
	}

	return cfg, nil
}

// SetupLogger installs a text slog handler on stderr at level.
func SetupLogger(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// normalizeEntropy trims and lowercases a source name; empty selects the LCG.
func normalizeEntropy(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return crypto.EntropyLCG
	}
	return name
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
