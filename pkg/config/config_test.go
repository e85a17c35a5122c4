package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, time.Duration(0), cfg.Storage.Latency())
	assert.Equal(t, 30*time.Second, cfg.Notify.DispatchInterval())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
	assert.Equal(t, int64(1), cfg.Storage.NodeID)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("STORAGE_LATENCY_MS", "250")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PASSWORD", "p@ss/word")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Latency())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%2Fword")
	assert.Equal(t, cfg.DB.DSN(), cfg.DB.ConnectionString())
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "redis")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("APP_ENV", "production")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("STORAGE_LATENCY_MS", "-5")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DatabaseURLWins(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@db:5432/x", Host: "localhost"}
	assert.Equal(t, "postgres://u:p@db:5432/x", c.ConnectionString())
}
