package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func NewKoanf(log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	// Load from .env file if available (for local development)
	err := k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		// .env file not found is OK in Docker (env vars from docker-compose)
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// Environment variables override .env file values if both exist
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	return k
}

func String(config *koanf.Koanf, key string, fallback string) string {
	value := strings.TrimSpace(config.String(key))
	if value == "" {
		return fallback
	}
	return value
}

func Int64(config *koanf.Koanf, key string, fallback int64) int64 {
	if !config.Exists(key) {
		return fallback
	}
	value := config.Int64(key)
	if value <= 0 {
		return fallback
	}
	return value
}

func Duration(config *koanf.Koanf, key string, fallback time.Duration) time.Duration {
	if !config.Exists(key) {
		return fallback
	}
	value := config.Duration(key)
	if value <= 0 {
		return fallback
	}
	return value
}

// List splits a comma separated value, dropping empty items.
func List(config *koanf.Koanf, key string, fallback []string) []string {
	raw := config.String(key)
	values := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			values = append(values, item)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
