package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Monitor    MonitorConfig    `yaml:"monitor"`
	Email      EmailConfig      `yaml:"email"`
	Slack      SlackConfig      `yaml:"slack"`
	NATS       NATSConfig       `yaml:"nats"`
	Redelivery RedeliveryConfig `yaml:"redelivery"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port               int           `yaml:"port"`
	ReadTimeout        time.Duration `yaml:"readTimeout"`
	WriteTimeout       time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdownTimeout"`
	MetricsPort        int           `yaml:"metricsPort"`
	AdminToken         string        `yaml:"adminToken"`
	RateLimitPerMinute int           `yaml:"rateLimitPerMinute"`
	TrustProxyHeaders  bool          `yaml:"trustProxyHeaders"`
}

type MonitorConfig struct {
	MaxEvents    int            `yaml:"maxEvents"`
	Window       time.Duration  `yaml:"window"`
	AlertTimeout time.Duration  `yaml:"alertTimeout"`
	Thresholds   map[string]int `yaml:"thresholds"`
}

type EmailConfig struct {
	Enabled  bool       `yaml:"enabled"`
	From     string     `yaml:"from"`
	To       string     `yaml:"to"`
	Primary  SMTPConfig `yaml:"primary"`
	Fallback SMTPConfig `yaml:"fallback"`
}

type SMTPConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	StartTLS bool          `yaml:"startTLS"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SlackConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"botToken"`
	Channel  string `yaml:"channel"`
}

type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

type RedeliveryConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BatchSize   int           `yaml:"batchSize"`
	SendTimeout time.Duration `yaml:"sendTimeout"`
}

type HeuristicsConfig struct {
	TemplateCacheSize int `yaml:"templateCacheSize"`
}

type DatabaseConfig struct {
	SQLite SQLiteConfig `yaml:"sqlite"`
}

type SQLiteConfig struct {
	Path              string `yaml:"path"`
	MaxOpenConns      int    `yaml:"maxOpenConns"`
	PragmaJournalMode string `yaml:"pragmaJournalMode"`
	PragmaBusyTimeout int    `yaml:"pragmaBusyTimeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads a YAML config file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			MetricsPort:        9090,
			RateLimitPerMinute: 120,
		},
		Monitor: MonitorConfig{
			MaxEvents:    1000,
			Window:       30 * time.Minute,
			AlertTimeout: 10 * time.Second,
			Thresholds: map[string]int{
				"failed_login":           3,
				"unauthorized_access":    1,
				"suspicious_activity":    2,
				"rate_limit_exceeded":    5,
				"ip_blocked":             1,
				"session_hijack_attempt": 1,
			},
		},
		Email: EmailConfig{
			From:    "alerts@nexdevs.example",
			To:      "security@nexdevs.example",
			Primary: SMTPConfig{Port: 587, StartTLS: true, Timeout: 15 * time.Second},
		},
		Slack: SlackConfig{
			Channel: "#security-alerts",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Redelivery: RedeliveryConfig{
			Interval:    5 * time.Minute,
			MaxAttempts: 5,
			BatchSize:   20,
			SendTimeout: 15 * time.Second,
		},
		Heuristics: HeuristicsConfig{
			TemplateCacheSize: 256,
		},
		Database: DatabaseConfig{
			SQLite: SQLiteConfig{
				Path:              "/data/sentinel.db",
				MaxOpenConns:      1,
				PragmaJournalMode: "wal",
				PragmaBusyTimeout: 5000,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}
