package config

import (
	"fmt"
	"strings"

	"github.com/nexdevs/sentinel/internal/domain/model"
)

// Validate checks the config for errors.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if cfg.Server.MetricsPort < 0 || cfg.Server.MetricsPort > 65535 {
		errs = append(errs, "server.metricsPort must be between 0 and 65535")
	}

	if cfg.Monitor.MaxEvents <= 0 {
		errs = append(errs, "monitor.maxEvents must be positive")
	}
	if cfg.Monitor.Window <= 0 {
		errs = append(errs, "monitor.window must be positive")
	}
	for name, threshold := range cfg.Monitor.Thresholds {
		if !model.EventType(name).IsValid() {
			errs = append(errs, fmt.Sprintf("monitor.thresholds: unknown event type %q", name))
		}
		if threshold < 1 {
			errs = append(errs, fmt.Sprintf("monitor.thresholds.%s must be at least 1", name))
		}
	}

	if cfg.Email.Enabled {
		if cfg.Email.From == "" {
			errs = append(errs, "email.from is required when email is enabled")
		}
		if cfg.Email.To == "" {
			errs = append(errs, "email.to is required when email is enabled")
		}
		if cfg.Email.Primary.Host == "" {
			errs = append(errs, "email.primary.host is required when email is enabled")
		}
	}

	if cfg.Slack.Enabled {
		if cfg.Slack.BotToken == "" {
			errs = append(errs, "slack.botToken is required when slack is enabled")
		}
		if cfg.Slack.Channel == "" {
			errs = append(errs, "slack.channel is required when slack is enabled")
		}
	}

	if cfg.NATS.Enabled && cfg.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}

	if cfg.Redelivery.MaxAttempts < 1 {
		errs = append(errs, "redelivery.maxAttempts must be at least 1")
	}

	if cfg.Database.SQLite.Path == "" {
		errs = append(errs, "database.sqlite.path is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn, or error (got %q)", cfg.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
