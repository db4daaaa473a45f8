package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SHOPSYNC_APP_NAME":               os.Getenv("SHOPSYNC_APP_NAME"),
		"SHOPSYNC_APP_ENV":                os.Getenv("SHOPSYNC_APP_ENV"),
		"SHOPSYNC_APP_PORT":               os.Getenv("SHOPSYNC_APP_PORT"),
		"SHOPSYNC_DATABASE_DRIVER":        os.Getenv("SHOPSYNC_DATABASE_DRIVER"),
		"SHOPSYNC_DATABASE_HOST":          os.Getenv("SHOPSYNC_DATABASE_HOST"),
		"SHOPSYNC_DATABASE_PASSWORD":      os.Getenv("SHOPSYNC_DATABASE_PASSWORD"),
		"SHOPSYNC_DATABASE_SSLMODE":       os.Getenv("SHOPSYNC_DATABASE_SSLMODE"),
		"SHOPSYNC_SHOPIFY_STORE_URL":      os.Getenv("SHOPSYNC_SHOPIFY_STORE_URL"),
		"SHOPSYNC_SHOPIFY_ACCESS_TOKEN":   os.Getenv("SHOPSYNC_SHOPIFY_ACCESS_TOKEN"),
		"SHOPSYNC_SHOPIFY_PAGE_SIZE":      os.Getenv("SHOPSYNC_SHOPIFY_PAGE_SIZE"),
		"SHOPSYNC_SYNC_ENABLED":           os.Getenv("SHOPSYNC_SYNC_ENABLED"),
		"SHOPSYNC_SYNC_ORDERS_INTERVAL":   os.Getenv("SHOPSYNC_SYNC_ORDERS_INTERVAL"),
		"SHOPSYNC_SYNC_DAILY_FULL_HOUR":   os.Getenv("SHOPSYNC_SYNC_DAILY_FULL_HOUR"),
		"SHOPSYNC_SYNC_STRICT_TRACKING":   os.Getenv("SHOPSYNC_SYNC_STRICT_TRACKING"),
		"SHOPSYNC_SHOPIFY_WEBHOOK_SECRET": os.Getenv("SHOPSYNC_SHOPIFY_WEBHOOK_SECRET"),
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

		assert.Equal(t, "shopsync-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shopsync", cfg.Database.DBName)
		assert.Equal(t, "2023-10", cfg.Shopify.APIVersion)
		assert.Equal(t, 250, cfg.Shopify.PageSize)
		assert.Equal(t, 30*time.Second, cfg.Shopify.Timeout)
		assert.True(t, cfg.Sync.Enabled)
		assert.Equal(t, 2*time.Hour, cfg.Sync.ProductsInterval)
		assert.Equal(t, 15*time.Minute, cfg.Sync.OrdersInterval)
		assert.Equal(t, 2, cfg.Sync.DailyFullHour)
		assert.True(t, cfg.Sync.StrictTracking)
	})

	t.Run("loads values from environment variables with SHOPSYNC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_APP_PORT", "9000")
		os.Setenv("SHOPSYNC_DATABASE_DRIVER", "sqlite")
		os.Setenv("SHOPSYNC_SHOPIFY_STORE_URL", "test-store.myshopify.com")
		os.Setenv("SHOPSYNC_SHOPIFY_ACCESS_TOKEN", "shpat_test")
		os.Setenv("SHOPSYNC_SHOPIFY_PAGE_SIZE", "100")
		os.Setenv("SHOPSYNC_SYNC_ORDERS_INTERVAL", "5m")
		os.Setenv("SHOPSYNC_SYNC_ENABLED", "false")
		os.Setenv("SHOPSYNC_SYNC_STRICT_TRACKING", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "test-store.myshopify.com", cfg.Shopify.StoreURL)
		assert.Equal(t, "shpat_test", cfg.Shopify.AccessToken)
		assert.Equal(t, 100, cfg.Shopify.PageSize)
		assert.Equal(t, 5*time.Minute, cfg.Sync.OrdersInterval)
		assert.False(t, cfg.Sync.Enabled)
		assert.False(t, cfg.Sync.StrictTracking)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_DATABASE_DRIVER", "mysql")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects page size over remote maximum", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_SHOPIFY_PAGE_SIZE", "500")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range daily full hour", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_SYNC_DAILY_FULL_HOUR", "24")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires shopify credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_APP_ENV", "production")
		os.Setenv("SHOPSYNC_DATABASE_PASSWORD", "secret")
		os.Setenv("SHOPSYNC_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopify.store_url")
	})

	t.Run("production requires ssl for postgres", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPSYNC_APP_ENV", "production")
		os.Setenv("SHOPSYNC_SHOPIFY_STORE_URL", "test-store.myshopify.com")
		os.Setenv("SHOPSYNC_SHOPIFY_ACCESS_TOKEN", "shpat_test")
		os.Setenv("SHOPSYNC_SHOPIFY_WEBHOOK_SECRET", "whsec")
		os.Setenv("SHOPSYNC_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("encodes special characters", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user@with",
			Password: "p@ss:word/special",
			DBName:   "shopsync",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "sslmode=disable")
		assert.NotContains(t, dsn, "p@ss:word/special")
	})

	t.Run("standard values", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			User:     "sync",
			Password: "pw",
			DBName:   "shopsync",
			SSLMode:  "require",
		}

		assert.Equal(t, "postgres://sync:pw@db.internal:5433/shopsync?sslmode=require", cfg.DSN())
	})
}
