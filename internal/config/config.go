// Package config loads runtime settings from the environment with sane
// defaults for local use.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every external endpoint and credential the wizard needs.
type Config struct {
	APIBaseURL string
	CEPBaseURL string

	DraftDBPath string
	DraftName   string

	ResendAPIKey string
	EmailFrom    string

	HTTPTimeout time.Duration
}

// Load reads CLUBDESK_* environment variables, layered over an optional
// clubdesk.yaml in the working directory. Environment wins.
// POST: Every field holds the env value, the file value, or its default
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("CLUBDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("clubdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// A missing config file is the normal case.
	_ = v.ReadInConfig()

	v.SetDefault("api-base-url", "http://localhost:8080")
	v.SetDefault("cep-base-url", "https://viacep.com.br")
	v.SetDefault("draft-db-path", "clubdesk.db")
	v.SetDefault("draft-name", "intake_wizard_draft")
	v.SetDefault("resend-api-key", "")
	v.SetDefault("email-from", "Clube <no-reply@clube.example>")
	v.SetDefault("http-timeout", "15s")

	return Config{
		APIBaseURL:   v.GetString("api-base-url"),
		CEPBaseURL:   v.GetString("cep-base-url"),
		DraftDBPath:  v.GetString("draft-db-path"),
		DraftName:    v.GetString("draft-name"),
		ResendAPIKey: v.GetString("resend-api-key"),
		EmailFrom:    v.GetString("email-from"),
		HTTPTimeout:  v.GetDuration("http-timeout"),
	}
}
