package config_test

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-tournament/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("reads required and optional values", func(t *testing.T) {
		cfg, err := config.FromEnv(lookupFrom(map[string]string{
			"DB_NAME":          "padel.db",
			"PORT":             "8080",
			"SLACK_BOT_TOKEN":  "xoxb-1",
			"SLACK_CHANNEL_ID": "C1",
			"GCP_PROJECT":      "padel-prod",
			"DIGEST_INTERVAL":  "1h",
			"ALLOWED_ORIGINS":  "http://localhost:5173, https://padel.example.com,",
		}))
		require.NoError(t, err)
		assert.Equal(t, "padel.db", cfg.DBName)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "xoxb-1", cfg.Slack.Token)
		assert.Equal(t, "C1", cfg.Slack.ChannelID)
		assert.Equal(t, "padel-prod", cfg.ProjectID)
		assert.Equal(t, time.Hour, cfg.DigestInterval)
		assert.Equal(t, []string{"http://localhost:5173", "https://padel.example.com"}, cfg.AllowedOrigins)
		assert.Empty(t, cfg.Turso.PrimaryURL)
	})

	t.Run("missing required values", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{"PORT": "8080"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_NAME")
	})

	t.Run("invalid digest interval", func(t *testing.T) {
		_, err := config.FromEnv(lookupFrom(map[string]string{
			"DB_NAME":         "padel.db",
			"PORT":            "8080",
			"DIGEST_INTERVAL": "every hour",
		}))
		require.Error(t, err)
	})
}
