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

		assert.Equal(t, "fintrack-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "fintrack", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 50, cfg.Finance.PageSize)
		assert.Equal(t, 200, cfg.Finance.MaxPageSize)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, []string{"Content-Type", "Authorization", "X-Request-ID"}, cfg.HTTP.CORSAllowHeaders)
		assert.False(t, cfg.Email.Enabled)
	})

	t.Run("parses durations and lists from the environment", func(t *testing.T) {
		t.Setenv("FINTRACK_JWT_ACCESS_TOKEN_EXPIRATION", "5m")
		t.Setenv("FINTRACK_DATABASE_CONN_MAX_IDLE_TIME", "90s")
		t.Setenv("FINTRACK_HTTP_CORS_ALLOW_ORIGINS", "https://app.fintrack.io,http://localhost:5173")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 90*time.Second, cfg.Database.ConnMaxIdleTime)
		assert.Equal(t, []string{"https://app.fintrack.io", "http://localhost:5173"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		t.Setenv("FINTRACK_LOG_FORMAT", "xml")
		t.Setenv("FINTRACK_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format must be one of [json console]")
		assert.Contains(t, err.Error(), "telemetry.sampling_ratio")
	})

	t.Run("loads values from environment variables with FINTRACK prefix", func(t *testing.T) {
		t.Setenv("FINTRACK_APP_NAME", "test-app")
		t.Setenv("FINTRACK_APP_PORT", "9000")
		t.Setenv("FINTRACK_DATABASE_DRIVER", "sqlite")
		t.Setenv("FINTRACK_DATABASE_PATH", "/tmp/test.db")
		t.Setenv("FINTRACK_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("FINTRACK_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("FINTRACK_FINANCE_PAGE_SIZE", "20")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 20, cfg.Finance.PageSize)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("FINTRACK_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("FINTRACK_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("FINTRACK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("page size cannot exceed max page size", func(t *testing.T) {
		t.Setenv("FINTRACK_FINANCE_PAGE_SIZE", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "finance.page_size")
	})

	t.Run("enabled email requires a host", func(t *testing.T) {
		t.Setenv("FINTRACK_EMAIL_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email.host is required")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		t.Setenv("FINTRACK_APP_ENV", "production")
		t.Setenv("FINTRACK_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("FINTRACK_DATABASE_PASSWORD", "secure-password")
		t.Setenv("FINTRACK_DATABASE_SSLMODE", "require")
		t.Setenv("FINTRACK_SWAGGER_ENABLED", "false")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable'")
	})

	t.Run("sqlite skips postgres checks", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_DATABASE_DRIVER", "sqlite")
		t.Setenv("FINTRACK_DATABASE_PASSWORD", "")

		_, err := Load()
		require.NoError(t, err)
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("fails if swagger enabled without protection in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint must be disabled")
	})

	t.Run("passes with swagger enabled and require_auth in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("FINTRACK_SWAGGER_ENABLED", "true")
		t.Setenv("FINTRACK_SWAGGER_REQUIRE_AUTH", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.RequireAuth)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "fintrack", SSLMode: "disable"}
		assert.Equal(t, "postgres://u:p@localhost:5432/fintrack?sslmode=disable", cfg.DSN())
	})

	t.Run("brackets IPv6 hosts", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "::1", Port: 5432, User: "u", DBName: "db", SSLMode: "require"}
		assert.Contains(t, cfg.DSN(), "@[::1]:5432/db")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
