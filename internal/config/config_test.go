package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
wiki:
  base_url: https://wiki.example.org
  timeout: 5s
  retry_count: 4
cache:
  path: /tmp/at-test.db
language: Russian
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Wiki.BaseURL != "https://wiki.example.org" || cfg.Wiki.Timeout != 5*time.Second || cfg.Wiki.RetryCount != 4 {
		t.Fatalf("unexpected wiki config %+v", cfg.Wiki)
	}
	if cfg.Wiki.UserAgent == "" {
		t.Fatal("expected default user agent to survive")
	}
	if cfg.Cache.Path != "/tmp/at-test.db" || cfg.Language != "Russian" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.Level())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("language: German\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARCHTRANSLATOR_LANGUAGE", "Spanish")
	t.Setenv("ARCHTRANSLATOR_WIKI_URL", "http://localhost:8080")
	t.Setenv("ARCHTRANSLATOR_CACHE", "/tmp/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "Spanish" || cfg.Wiki.BaseURL != "http://localhost:8080" || cfg.Cache.Path != "/tmp/env.db" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_UnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("language: Klingon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, i18n.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Cache.Path == "" {
		t.Fatal("expected a default cache path")
	}
	if cfg.Level() != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.Level())
	}
}
