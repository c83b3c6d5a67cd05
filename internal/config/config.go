// Package config loads client configuration from an optional YAML file and
// JOBDETECTOR_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/benlang/jobdetector/internal/session"
)

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
	Jobs    JobsConfig    `koanf:"jobs"`
	Admin   AdminConfig   `koanf:"admin"`
	Log     LogConfig     `koanf:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout string `koanf:"timeout"`
	Proxy   string `koanf:"proxy"`
}

// SessionConfig holds session persistence settings.
type SessionConfig struct {
	TokenPath string `koanf:"token_path"`
}

// JobsConfig holds job listing settings.
type JobsConfig struct {
	PageLimit int `koanf:"page_limit"`
}

// AdminConfig holds admin view settings.
type AdminConfig struct {
	FeedbackLimit int `koanf:"feedback_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
}

// envPrefix is stripped from environment variables; the remainder maps onto
// config keys with single underscores as separators kept intact, e.g.
// JOBDETECTOR_API__BASE_URL -> api.base_url.
const envPrefix = "JOBDETECTOR_"

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Session: SessionConfig{TokenPath: session.DefaultPath()},
		Jobs:    JobsConfig{PageLimit: 50},
		Admin:   AdminConfig{FeedbackLimit: 10},
		Log:     LogConfig{Level: "warn"},
	}
}

// Load builds the configuration. path may be empty, in which case only the
// default file location is tried; a missing file is not an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	cfg := defaults()

	candidates := []string{path}
	if path == "" {
		candidates = defaultFilePaths()
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			if path != "" {
				return Config{}, fmt.Errorf("config file %s: %w", candidate, err)
			}
			continue
		}
		if err := k.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", candidate, err)
		}
		break
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	// Unmarshal merges over the defaults: keys absent from file and env
	// keep their default values.
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validateTimeout(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envToKey maps JOBDETECTOR_API__BASE_URL to api.base_url: double
// underscores separate sections, single underscores stay inside key names.
func envToKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	return strings.ReplaceAll(name, "__", ".")
}

// Timeout parses the configured request timeout.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func (c Config) validateTimeout() error {
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return nil
}

func defaultFilePaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, dir+"/jobdetector/config.yaml")
	}
	paths = append(paths, "config.yaml")
	return paths
}
