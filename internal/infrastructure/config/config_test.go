package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "qreats-inventory", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "qreats", cfg.Database.DBName)
		assert.Equal(t, "serializable", cfg.Database.IsolationLevel)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.Redis.StockTTL)
		assert.Equal(t, "qreats.inventory", cfg.Kafka.Topic)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "qreats-inventory", cfg.Profiling.ApplicationName)
		assert.Empty(t, cfg.Auth.JWTSecret)
		assert.False(t, cfg.Audit.Enabled)
		assert.Equal(t, time.Hour, cfg.Audit.Interval)
		assert.Equal(t, 4, cfg.Audit.Concurrency)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		t.Setenv("QREATS_APP_PORT", "9090")
		t.Setenv("QREATS_DATABASE_HOST", "db.internal")
		t.Setenv("QREATS_DATABASE_PASSWORD", "secret")
		t.Setenv("QREATS_DATABASE_ISOLATION_LEVEL", "repeatable_read")
		t.Setenv("QREATS_KAFKA_TOPIC", "custom.inventory")
		t.Setenv("QREATS_REDIS_ENABLED", "true")
		t.Setenv("QREATS_AUDIT_ENABLED", "true")
		t.Setenv("QREATS_AUDIT_INTERVAL", "15m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "repeatable_read", cfg.Database.IsolationLevel)
		assert.Equal(t, "custom.inventory", cfg.Kafka.Topic)
		assert.True(t, cfg.Redis.Enabled)
		assert.True(t, cfg.Audit.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.Audit.Interval)
	})

	t.Run("rejects unknown isolation level", func(t *testing.T) {
		t.Setenv("QREATS_DATABASE_ISOLATION_LEVEL", "chaos")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "isolation_level")
	})

	t.Run("production requires database password", func(t *testing.T) {
		t.Setenv("QREATS_APP_ENV", "production")
		t.Setenv("QREATS_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("idle connections cannot exceed open connections", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Auth.JWTSecret = "short"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.jwt_secret")

		cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.validate())
	})

	t.Run("span profiles need the profiler", func(t *testing.T) {
		cfg := base()
		cfg.Profiling.SpanProfiles = true
		assert.Error(t, cfg.validate())
		cfg.Profiling.Enabled = true
		assert.NoError(t, cfg.validate())
	})

	t.Run("audit needs a positive concurrency", func(t *testing.T) {
		cfg := base()
		cfg.Audit.Enabled = true
		cfg.Audit.Concurrency = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pass@word#123",
		DBName:   "qreats",
		SSLMode:  "disable",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "pass%40word%23123")
	assert.Contains(t, dsn, "localhost:5432/qreats")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
