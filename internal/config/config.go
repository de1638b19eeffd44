package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              int
	DatabaseURL       string
	RedisURL          string
	NatsURL           string
	NatsToken         string
	LogLevel          string
	OllamaURL         string
	Model             string
	APIToken          string
	PatternCacheTTL   time.Duration
	ModelWaitAttempts int
}

// Load reads configuration from the environment. Empty DATABASE_URL,
// REDIS_URL and NATS_URL disable the corresponding backend.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	return Config{
		Port:              envInt(v, "LETTERFORGE_PORT", 8760),
		DatabaseURL:       envStr(v, "DATABASE_URL", ""),
		RedisURL:          envStr(v, "REDIS_URL", ""),
		NatsURL:           envStr(v, "NATS_URL", ""),
		NatsToken:         envStr(v, "NATS_TOKEN", ""),
		LogLevel:          envStr(v, "LOG_LEVEL", "info"),
		OllamaURL:         envStr(v, "OLLAMA_URL", "http://localhost:11434"),
		Model:             envStr(v, "LETTERFORGE_MODEL", "gemma3"),
		APIToken:          envStr(v, "LETTERFORGE_API_TOKEN", ""),
		PatternCacheTTL:   envDuration(v, "PATTERN_CACHE_TTL", 10*time.Minute),
		ModelWaitAttempts: envInt(v, "MODEL_WAIT_ATTEMPTS", 10),
	}
}

func envStr(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func envInt(v *viper.Viper, key string, fallback int) int {
	if n, err := strconv.Atoi(v.GetString(key)); err == nil {
		return n
	}
	return fallback
}

func envDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(v.GetString(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}
