package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads YAML file", func(t *testing.T) {
		// Given: a config file selecting the HTTP front end over redis
		path := writeConfig(t, `
log-level: debug
mode: http
http-port: "8081"
ai:
  disabled: true
  mark: X
  delay: 1s
storage:
  driver: redis
redis:
  host: cache
  port: "6380"
  session-ttl: 10m
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: every field is taken from the file
		require.NoError(t, err)
		require.Equal(t, &Config{
			LogLevel: "debug",
			Mode:     ModeHTTP,
			HTTPPort: "8081",
			AI:       AI{Disabled: true, Mark: "X", Delay: time.Second},
			Storage:  Storage{Driver: StorageRedis},
			Redis:    Redis{Host: "cache", Port: "6380", SessionTTL: 10 * time.Minute},
		}, conf)
		require.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		require.Equal(t, "info", conf.LogLevel)
		require.Equal(t, ModeTerminal, conf.Mode)
		require.Equal(t, StorageMemory, conf.Storage.Driver)
		require.True(t, conf.AI.Enabled())
		require.Equal(t, "O", conf.AI.Mark)
		require.Equal(t, 500*time.Millisecond, conf.AI.Delay)
		require.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("MODE", ModeHTTP)
		t.Setenv("AI_DELAY", "2s")

		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		require.Equal(t, ModeHTTP, conf.Mode)
		require.Equal(t, 2*time.Second, conf.AI.Delay)
	})

	t.Run("Rejects unknown values", func(t *testing.T) {
		for _, body := range []string{
			"mode: gui\n",
			"storage:\n  driver: sqlite\n",
			"ai:\n  mark: Z\n",
		} {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err, body)
		}
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := writeConfig(t, "mode: [")

		require.Panics(t, func() { MustLoad(path) })
	})
}
