package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	BackendBaseURL  string
	PayPalBaseURL   string
	PayPalClientID  string
	PayPalSecret    string
	USDRate         int64
	CartDir         string
	DBConnString    string
	DBMaxConns      int32
	RedisAddr       string
	WishlistTTL     time.Duration
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
// DB_DSN and REDIS_ADDR are optional: when empty the gateway keeps carts in
// local files and the wishlist cache in memory.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8081"),
		BackendBaseURL:  envOrDefault("BACKEND_BASE_URL", "http://localhost:8080"),
		PayPalBaseURL:   envOrDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:  envOrDefault("PAYPAL_CLIENT_ID", ""),
		PayPalSecret:    envOrDefault("PAYPAL_SECRET", ""),
		USDRate:         envInt64("USD_RATE", 25000),
		CartDir:         envOrDefault("CART_DIR", "./data/carts"),
		DBConnString:    envOrDefault("DB_DSN", ""),
		DBMaxConns:      int32(envInt64("DB_MAX_CONNS", 8)),
		RedisAddr:       envOrDefault("REDIS_ADDR", ""),
		WishlistTTL:     envDuration("WISHLIST_TTL_SECONDS", 5*time.Minute),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
