package config_test

import (
	"testing"
	"time"

	"github.com/jhoicas/navbahor-erp/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Ombor", cfg.Documents.WarehouseName)
	assert.Equal(t, "Klaster", cfg.Documents.ShipperName)
	assert.Equal(t, "123456", cfg.Documents.FarmerDefaultPassword)
	assert.Equal(t, "Navbahor", cfg.Documents.FarmerDefaultAddress)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PASSWORD", "p@ss/word")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%2Fword")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}
