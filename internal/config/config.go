package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	required := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key string) string {
		value, _ := lookup(key)
		return value
	}

	cfg := Config{
		DBName: required("DB_NAME"),
		Port:   required("PORT"),
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN"),
			ChannelID:     optional("SLACK_CHANNEL_ID"),
			SigningSecret: optional("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL"),
			AuthToken:  optional("TURSO_AUTH_TOKEN"),
		},
		Playtomic: PlaytomicConfig{
			TenantID: optional("PLAYTOMIC_TENANT_ID"),
		},
		ProjectID: optional("GCP_PROJECT"),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if raw := optional("DIGEST_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DIGEST_INTERVAL %q: %w", raw, err)
		}
		cfg.DigestInterval = interval
	}
	if raw := optional("ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg, nil
}
