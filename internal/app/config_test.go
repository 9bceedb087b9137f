package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solivera/gatekeeper/internal/app"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("APP_REQUEST_TIMEOUT", "45s")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.AppAddr)
	require.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "45s", cfg.AppRequestTimeout.String())
	require.True(t, cfg.IsProduction())
}

func TestIsProduction(t *testing.T) {
	require.False(t, (&app.Config{AppEnv: "development"}).IsProduction())
	require.True(t, (&app.Config{AppEnv: "production"}).IsProduction())

	var nilCfg *app.Config
	require.False(t, nilCfg.IsProduction())
}
