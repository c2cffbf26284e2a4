package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "3500", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "technotes", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.UsernameCacheTTL)
	assert.Empty(t, cfg.JWTSecret)
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "8080",
		"ENV":                "production",
		"JWT_SECRET":         "s3cret",
		"ACCESS_TOKEN_TTL":   "1h",
		"BCRYPT_COST":        "12",
		"STORE":              "memory",
		"MONGO_DB":           "notes_test",
		"REDIS_DB":           "2",
		"USERNAME_CACHE_TTL": "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "notes_test", cfg.Mongo.Database)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.UsernameCacheTTL)
}

func TestProcess_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":  {"STORE": "postgres"},
		"bad duration":   {"ACCESS_TOKEN_TTL": "soon"},
		"bad bcryptcost": {"BCRYPT_COST": "ten"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Process(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
