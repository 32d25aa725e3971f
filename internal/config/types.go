package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	Slack          SlackConfig
	Turso          TursoConfig
	Playtomic      PlaytomicConfig
	ProjectID      string
	DigestInterval time.Duration
	AllowedOrigins []string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PlaytomicConfig struct {
	TenantID string
}
