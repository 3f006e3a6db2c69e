package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel  string
	LogFormat string

	// CryptoKey is either a 64-char hex string (raw 32-byte key) or a
	// passphrase that gets stretched into a key. CryptoIV is a 24-char
	// hex string (12-byte nonce). Both are required; there is no default.
	CryptoKey string
	CryptoIV  string

	APIBaseURL string
	APITimeout time.Duration

	TokenSecret string
	TokenTTL    time.Duration

	// RedisURL selects the Redis store backend when non-empty. Otherwise
	// session state is kept in a local file at StateFile.
	RedisURL    string
	StorePrefix string
	StateFile   string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
// The encryption key and IV have no defaults: a missing value is a fatal
// configuration error reported at startup, never discovered at runtime.
func Load() (*Config, error) {
	_ = godotenv.Load() // Ignore error — .env is optional

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "pretty"),
		CryptoKey:   os.Getenv("CRYPTO_KEY"),
		CryptoIV:    os.Getenv("CRYPTO_IV"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),
		APITimeout:  time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 15)) * time.Second,
		TokenSecret: getEnv("TOKEN_SECRET", "change-this-to-a-secure-random-string"),
		TokenTTL:    time.Duration(getEnvInt("TOKEN_TTL_HOURS", 4)) * time.Hour,
		RedisURL:    getEnv("REDIS_URL", ""),
		StorePrefix: getEnv("STORE_PREFIX", "examsim:"),
		StateFile:   getEnv("STATE_FILE", "./examsim_state.json"),
	}

	if cfg.CryptoKey == "" {
		return nil, fmt.Errorf("CRYPTO_KEY is required")
	}
	if cfg.CryptoIV == "" {
		return nil, fmt.Errorf("CRYPTO_IV is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
