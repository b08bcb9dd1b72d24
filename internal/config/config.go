// Package config loads invctl settings from ~/.invctl/config.yaml, .env
// files and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inventory-app/gqlclient"
)

const (
	EnvEndpoint = "INVCTL_ENDPOINT"
	EnvTimeout  = "INVCTL_TIMEOUT"
	EnvLogLevel = "LOG_LEVEL"
)

const defaultEndpoint = "http://localhost:8080" + gqlclient.DefaultPath

type Config struct {
	Endpoint string            `yaml:"endpoint"`
	Headers  map[string]string `yaml:"headers,omitempty"`
	Timeout  time.Duration     `yaml:"timeout,omitempty"`
	LogLevel string            `yaml:"log_level,omitempty"`
	LogJSON  bool              `yaml:"log_json,omitempty"`
}

func Default() Config {
	return Config{
		Endpoint: defaultEndpoint,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".invctl", "config.yaml"), nil
}

// Load reads the config file at path, or at Path() when path is empty. A
// missing file yields the defaults. Fields left out of the file keep their
// default values.
func Load(path string) (Config, string, error) {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return Config{}, "", err
		}
	}
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, path, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, path, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, path, nil
}

func Save(cfg Config, path string) error {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Set assigns a single setting by its file key. Header keys are written as
// "header.<Name>"; an empty value removes the header.
func Set(cfg *Config, key, value string) error {
	if name, ok := strings.CutPrefix(key, "header."); ok {
		if name == "" {
			return fmt.Errorf("config: empty header name")
		}
		if value == "" {
			delete(cfg.Headers, name)
			return nil
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[name] = value
		return nil
	}
	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: timeout: %w", err)
		}
		cfg.Timeout = d
	case "log_level":
		cfg.LogLevel = value
	case "log_json":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: log_json: %w", err)
		}
		cfg.LogJSON = b
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

// LoadEnv loads .env files from the working directory and ~/.invctl into
// the process environment. Variables already set are left alone.
func LoadEnv(logger logrus.FieldLogger) {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".invctl", ".env"))
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		if logger != nil {
			logger.Debugf("Loaded env file %s", file)
		}
	}
}

// ApplyEnv overrides cfg with values from the environment.
func ApplyEnv(cfg Config) Config {
	cfg.Endpoint = GetEnv(EnvEndpoint, cfg.Endpoint)
	cfg.Timeout = GetEnvDuration(EnvTimeout, cfg.Timeout)
	cfg.LogLevel = GetEnv(EnvLogLevel, cfg.LogLevel)
	return cfg
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration parses a duration such as "15s". Unparseable values are
// ignored.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
