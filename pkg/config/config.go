// Package config loads the runner configuration with env > file > default precedence.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the environment variable prefix used by the CLI.
const DefaultEnvPrefix = "APIRUNNER"

// Config is read once at startup and never mutated afterwards.
type Config struct {
	BaseURL string        `koanf:"base_url"`
	Log     LoggingConfig `koanf:"log"`
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns the values used when neither file nor env sets them.
func DefaultConfig() Config {
	return Config{
		Log: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports configuration that cannot drive a run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("config: base_url is required")
	}
	return nil
}

// Loader hydrates Config from defaults, YAML files and the environment.
type Loader struct {
	envPrefix string
	files     []string
}

// NewLoader prepares a Loader. An empty envPrefix disables env overrides.
func NewLoader(envPrefix string, files ...string) *Loader {
	return &Loader{
		envPrefix: envPrefix,
		files:     files,
	}
}

// Load assembles the effective configuration. Files are applied in order and
// environment variables (APIRUNNER_BASE_URL, APIRUNNER_LOG__LEVEL) win over them.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	defaults := DefaultConfig()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"log.level":  defaults.Log.Level,
		"log.format": defaults.Log.Format,
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	for _, path := range l.files {
		if path == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		default:
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: file %s not found", path)
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if l.envPrefix != "" {
		prefix := l.envPrefix + "_"
		transform := func(s string) string {
			// Double underscores signal nesting (APIRUNNER_LOG__LEVEL -> log.level);
			// single underscores stay part of the key (APIRUNNER_BASE_URL -> base_url).
			key := strings.TrimPrefix(s, prefix)
			return strings.ToLower(strings.ReplaceAll(key, "__", "."))
		}
		if err := k.Load(env.Provider(prefix, ".", transform), nil); err != nil {
			return Config{}, fmt.Errorf("config: load env: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
