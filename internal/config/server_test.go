package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "PORT", "AI_PROVIDER", "AI_MODEL", "AI_BASE_URL", "ENVIRONMENT", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8081")

	cfg, err := LoadServer(t.TempDir())
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.APIKey != "secret" || cfg.Addr() != ":8081" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Provider != "googleai" || cfg.IsProduction() {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := LoadServer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
}

func TestLoadServerDotEnv(t *testing.T) {
	clearServerEnv(t)
	dir := t.TempDir()
	content := "GEMINI_API_KEY=from-file\nENVIRONMENT=production\nPORT=4000\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "5000")

	cfg, err := LoadServer(dir)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.APIKey != "from-file" || !cfg.IsProduction() {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Port != "5000" {
		t.Errorf("env should override .env, Port = %q", cfg.Port)
	}
}

func TestLoadServerMissingCredential(t *testing.T) {
	clearServerEnv(t)
	_, err := LoadServer(t.TempDir())
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("err = %v, want ErrMissingCredential", err)
	}
}
