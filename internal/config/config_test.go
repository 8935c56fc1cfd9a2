package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesFileEnvAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: \"5000\"\nsecretKey: from-file\nbackendURL: http://backend:8000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SANCTUARY_PORT", "6000")
	t.Setenv("SANCTUARY_SECRET_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "6000" {
		t.Errorf("env should override file, port = %q", cfg.Port)
	}
	if cfg.SecretKey != "from-file" {
		t.Errorf("secretKey = %q", cfg.SecretKey)
	}
	if cfg.BackendURL != "http://backend:8000" {
		t.Errorf("backendURL = %q", cfg.BackendURL)
	}
	if cfg.AnthropicAPIKey != "sk-env" {
		t.Errorf("api key = %q", cfg.AnthropicAPIKey)
	}
	if cfg.AnthropicModel != DefaultModel {
		t.Errorf("model default missing, got %q", cfg.AnthropicModel)
	}
	if cfg.DBPath != "data/sanctuary.db" {
		t.Errorf("dbPath default = %q", cfg.DBPath)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("SANCTUARY_SECRET_KEY", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SecretKey != "from-env" || cfg.Port != DefaultPort {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("SANCTUARY_SECRET_KEY", "")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error when secretKey is unset")
	}
}
