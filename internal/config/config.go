package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither config.yaml nor the environment sets a value.
const (
	DefaultPort       = "4280"
	DefaultBackendURL = "http://127.0.0.1:8000"
	DefaultModel      = "claude-sonnet-4-20250514"
	DefaultDataDir    = "data"
)

// Config is the companion's runtime configuration, loaded from YAML with
// environment overrides.
type Config struct {
	Port            string `yaml:"port"`
	BackendURL      string `yaml:"backendURL"`
	AnthropicAPIKey string `yaml:"anthropicAPIKey"`
	AnthropicModel  string `yaml:"anthropicModel"`
	DataDir         string `yaml:"dataDir"`
	DBPath          string `yaml:"dbPath"`
	SecretKey       string `yaml:"secretKey"`
}

// Load reads the configuration. A missing file is fine; environment
// variables and defaults still apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.SecretKey == "" {
		return cfg, errors.New("config: secretKey is required (set in config.yaml or SANCTUARY_SECRET_KEY)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SANCTUARY_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SANCTUARY_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("SANCTUARY_MODEL"); v != "" {
		cfg.AnthropicModel = v
	}
	if v := os.Getenv("SANCTUARY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SANCTUARY_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SANCTUARY_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.AnthropicModel == "" {
		cfg.AnthropicModel = DefaultModel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = cfg.DataDir + "/sanctuary.db"
	}
}
