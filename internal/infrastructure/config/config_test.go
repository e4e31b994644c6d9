package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Ranking.Workers)
	assert.False(t, cfg.RecipeAPI.Enabled)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "recipe-ranker", cfg.App.Name)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RANKING_WORKERS", "3")
	t.Setenv("RECIPE_API_KEY", "secret-key-123456")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 3, cfg.Ranking.Workers)
	assert.Equal(t, "secret-key-123456", cfg.RecipeAPI.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"CACHE_BACKEND": "memcached"}},
		{"zero workers", map[string]string{"RANKING_WORKERS": "0"}},
		{"recipe api without url", map[string]string{"RECIPE_API_ENABLED": "true"}},
		{"zero port", map[string]string{"APP_SERVER_PORT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
