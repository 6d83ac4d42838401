package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CLUB_APP_NAME":          os.Getenv("CLUB_APP_NAME"),
		"CLUB_APP_ENV":           os.Getenv("CLUB_APP_ENV"),
		"CLUB_APP_PORT":          os.Getenv("CLUB_APP_PORT"),
		"CLUB_DATABASE_HOST":     os.Getenv("CLUB_DATABASE_HOST"),
		"CLUB_DATABASE_PORT":     os.Getenv("CLUB_DATABASE_PORT"),
		"CLUB_DATABASE_USER":     os.Getenv("CLUB_DATABASE_USER"),
		"CLUB_DATABASE_PASSWORD": os.Getenv("CLUB_DATABASE_PASSWORD"),
		"CLUB_DATABASE_DBNAME":   os.Getenv("CLUB_DATABASE_DBNAME"),
		"CLUB_DATABASE_SSLMODE":  os.Getenv("CLUB_DATABASE_SSLMODE"),
		"CLUB_JWT_SECRET":        os.Getenv("CLUB_JWT_SECRET"),
		"CLUB_CONTENT_ROOT":      os.Getenv("CLUB_CONTENT_ROOT"),
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

		assert.Equal(t, "greenclub-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "greenclub", cfg.Database.DBName)
		assert.Equal(t, "./data/content", cfg.Content.Root)
		assert.Equal(t, int64(1<<20), cfg.Content.MaxUploadSize)
	})

	t.Run("loads values from environment variables with CLUB prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CLUB_APP_NAME", "test-app")
		os.Setenv("CLUB_APP_PORT", "9000")
		os.Setenv("CLUB_DATABASE_HOST", "testdb.local")
		os.Setenv("CLUB_DATABASE_PORT", "5433")
		os.Setenv("CLUB_DATABASE_PASSWORD", "testpass")
		os.Setenv("CLUB_CONTENT_ROOT", "/var/lib/club/content")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "/var/lib/club/content", cfg.Content.Root)
	})

	t.Run("production requires a strong JWT secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("CLUB_APP_ENV", "production")
		os.Setenv("CLUB_DATABASE_PASSWORD", "testpass")
		os.Setenv("CLUB_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)

		os.Setenv("CLUB_JWT_SECRET", "short")
		_, err = Load()
		assert.Error(t, err)

		os.Setenv("CLUB_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		_, err = Load()
		assert.NoError(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	t.Run("escapes special characters", func(t *testing.T) {
		d := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "club",
			Password: "p@ss:word/",
			DBName:   "greenclub",
			SSLMode:  "disable",
		}

		dsn := d.DSN()

		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "sslmode=disable")
		assert.NotContains(t, dsn, "p@ss:word/")
	})
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
