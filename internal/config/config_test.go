package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDatabaseURLPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OFFERS_DATABASE_URL", "")
	assert.Equal(t, "offers.db", Load().DatabaseURL)

	t.Setenv("OFFERS_DATABASE_URL", "postgres://svc@db/offers")
	assert.Equal(t, "postgres://svc@db/offers", Load().DatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://main@db/market")
	assert.Equal(t, "postgres://main@db/market", Load().DatabaseURL)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 120, cfg.RatePerMin)

	t.Setenv("RATE_LIMIT_PER_MIN", "0")
	assert.Equal(t, 0, Load().RatePerMin)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://svc:xxxxx@db:5432/offers", Redact("postgres://svc:s3cret@db:5432/offers"))
	assert.Equal(t, "offers.db", Redact("offers.db"))
	assert.Equal(t, "postgres://svc@db/offers", Redact("postgres://svc@db/offers"))
}
