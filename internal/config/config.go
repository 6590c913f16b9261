package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	// StoreDriver selects postgres or the in-process memory store.
	StoreDriver string
	JWTSecret   string
	TokenTTL    time.Duration

	RedisAddr      string
	LoginRateLimit int

	KafkaBrokers  []string
	ActivityTopic string
	ServiceName   string
}

func Load() Config {
	cfg := Config{
		HTTPAddr:       ":" + getenv("APP_PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StoreDriver:    os.Getenv("STORE_DRIVER"),
		JWTSecret:      getenv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
		TokenTTL:       getduration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		LoginRateLimit: getint("LOGIN_RATE_LIMIT", 5),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		ActivityTopic:  getenv("ACTIVITY_TOPIC", "inventory.activity"),
		ServiceName:    getenv("SERVICE_NAME", "kuber-inventory"),
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverPostgres
		if cfg.DatabaseURL == "" {
			cfg.StoreDriver = DriverMemory
		}
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil && d > 0 {
		return d
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
