// Package config provides ArchTranslator CLI configuration management.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	appconfig "github.com/RobinCoderZhao/archtranslator/pkg/config"
	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
	"github.com/RobinCoderZhao/archtranslator/pkg/storage"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

// FileName is the config file looked up in the working and home directories.
const FileName = ".archtranslator.yaml"

// Config is the main configuration for the ArchTranslator CLI.
type Config struct {
	Wiki     wiki.Config    `yaml:"wiki"`
	Cache    storage.Config `yaml:"cache"`
	Language string         `yaml:"language" env:"ARCHTRANSLATOR_LANGUAGE"` // registry key, e.g. "Russian"
	LogLevel string         `yaml:"log_level" env:"ARCHTRANSLATOR_LOG_LEVEL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	cachePath := filepath.Join(os.TempDir(), "archtranslator", "cache.db")
	if dir, err := os.UserCacheDir(); err == nil {
		cachePath = filepath.Join(dir, "archtranslator", "cache.db")
	}
	return Config{
		Wiki:     wiki.DefaultConfig(),
		Cache:    storage.Config{Path: cachePath},
		Language: "English",
		LogLevel: "info",
	}
}

// Load loads configuration from path, or from the project and home config
// files when path is empty.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := appconfig.Load(path, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if _, err := os.Stat(FileName); err == nil {
		if err := appconfig.Load(FileName, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	globalPath := FileName
	if home, err := os.UserHomeDir(); err == nil {
		globalPath = filepath.Join(home, FileName)
	}
	if err := appconfig.LoadOrDefault(globalPath, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configured language exists.
func (c Config) Validate() error {
	if _, err := i18n.Get(c.Language); err != nil {
		return fmt.Errorf("config language: %w", err)
	}
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
