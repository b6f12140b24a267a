package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the intake tool configuration, read from an optional YAML file
// with environment variable overrides on top.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Messaging MessagingConfig `yaml:"messaging"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout, defaulting to 15s.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MessagingConfig configures the devserver's event publisher. An empty URL
// disables publishing.
type MessagingConfig struct {
	RabbitMQURL string `yaml:"rabbitmq_url"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 15,
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// path is empty or the file does not exist, then applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("INTAKE_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("INTAKE_BACKEND_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Backend.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("INTAKE_TELEMETRY_ENABLED"); v == "true" || v == "1" {
		cfg.Telemetry.Enabled = true
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.Messaging.RabbitMQURL = v
	}
}
