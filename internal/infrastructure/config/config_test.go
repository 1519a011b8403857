package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"STOCKFLOW_APP_NAME":                       os.Getenv("STOCKFLOW_APP_NAME"),
		"STOCKFLOW_APP_ENV":                        os.Getenv("STOCKFLOW_APP_ENV"),
		"STOCKFLOW_APP_PORT":                       os.Getenv("STOCKFLOW_APP_PORT"),
		"STOCKFLOW_DATABASE_HOST":                  os.Getenv("STOCKFLOW_DATABASE_HOST"),
		"STOCKFLOW_DATABASE_PORT":                  os.Getenv("STOCKFLOW_DATABASE_PORT"),
		"STOCKFLOW_DATABASE_USER":                  os.Getenv("STOCKFLOW_DATABASE_USER"),
		"STOCKFLOW_DATABASE_PASSWORD":              os.Getenv("STOCKFLOW_DATABASE_PASSWORD"),
		"STOCKFLOW_DATABASE_DBNAME":                os.Getenv("STOCKFLOW_DATABASE_DBNAME"),
		"STOCKFLOW_DATABASE_SSLMODE":               os.Getenv("STOCKFLOW_DATABASE_SSLMODE"),
		"STOCKFLOW_DATABASE_MAX_OPEN_CONNS":        os.Getenv("STOCKFLOW_DATABASE_MAX_OPEN_CONNS"),
		"STOCKFLOW_DATABASE_MAX_IDLE_CONNS":        os.Getenv("STOCKFLOW_DATABASE_MAX_IDLE_CONNS"),
		"STOCKFLOW_STOCK_MAIN_STOCK_LOCATION_PATH": os.Getenv("STOCKFLOW_STOCK_MAIN_STOCK_LOCATION_PATH"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stockflow-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "stockflow", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "WH/Stock", cfg.Stock.MainStockLocationPath)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_APP_NAME", "test-app")
		os.Setenv("STOCKFLOW_APP_PORT", "9000")
		os.Setenv("STOCKFLOW_DATABASE_HOST", "testdb.local")
		os.Setenv("STOCKFLOW_DATABASE_PORT", "5433")
		os.Setenv("STOCKFLOW_STOCK_MAIN_STOCK_LOCATION_PATH", "WH/Central")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "WH/Central", cfg.Stock.MainStockLocationPath)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STOCKFLOW_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("blank main stock path is rejected", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_STOCK_MAIN_STOCK_LOCATION_PATH", "   ")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "main_stock_location_path")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"STOCKFLOW_APP_ENV":           os.Getenv("STOCKFLOW_APP_ENV"),
		"STOCKFLOW_DATABASE_PASSWORD": os.Getenv("STOCKFLOW_DATABASE_PASSWORD"),
		"STOCKFLOW_DATABASE_SSLMODE":  os.Getenv("STOCKFLOW_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_APP_ENV", "production")
		os.Setenv("STOCKFLOW_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_APP_ENV", "production")
		os.Setenv("STOCKFLOW_DATABASE_PASSWORD", "secure-password")
		os.Setenv("STOCKFLOW_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKFLOW_APP_ENV", "production")
		os.Setenv("STOCKFLOW_DATABASE_PASSWORD", "secure-password")
		os.Setenv("STOCKFLOW_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
