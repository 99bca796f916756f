package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 168*time.Hour, cfg.TrashRetention)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
	assert.Equal(t, 50, cfg.PrintHistoryLimit)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("TRASH_RETENTION", "24h")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.TrashRetention)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_PostgresNeedsURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DatabaseURL")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("IS_PRODUCTION", "true")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_CORSOrigins(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "CORSOrigins")
}
