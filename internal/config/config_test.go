package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")

	cfg := Load()
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/kuber?sslmode=disable")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("LOGIN_RATE_LIMIT", "notanumber")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestExplicitDriverWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kuber")
	t.Setenv("STORE_DRIVER", DriverMemory)
	assert.Equal(t, DriverMemory, Load().StoreDriver)
}
