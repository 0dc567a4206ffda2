package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("COINS_PER_UNIT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(10), cfg.CoinsPerUnit)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "MongoDB")
	t.Setenv("COINS_PER_UNIT", "25")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CLIENT_URL", "https://app.example/")
	t.Setenv("IDENTITY_SHARED_SECRET", "idp-secret")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb", cfg.DBDriver)
	assert.Equal(t, int64(25), cfg.CoinsPerUnit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://app.example", cfg.ClientURL)
	assert.Equal(t, "idp-secret", cfg.IdentitySecret)
}

func TestLoad_InvalidCoinsPerUnitFallsBack(t *testing.T) {
	t.Setenv("COINS_PER_UNIT", "-3")
	assert.Equal(t, int64(10), Load().CoinsPerUnit)
}
