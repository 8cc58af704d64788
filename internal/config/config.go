package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config file is given.
const DefaultPath = "bookfind.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	ServiceURL     string `yaml:"serviceURL"`
	LogLevel       string `yaml:"logLevel"`
	RequestTimeout string `yaml:"requestTimeout"`
	SessionFile    string `yaml:"sessionFile"`
	RedisAddr      string `yaml:"redisAddr"`
	RedisPassword  string `yaml:"redisPassword"`
}

// Load reads config from path. A missing file at the default path is not an
// error; env overrides and defaults still apply so the CLI runs unconfigured.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// fall through to env + defaults
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("BOOKFIND_SERVICE_URL"); v != "" {
		cfg.ServiceURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFIND_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFIND_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout = strings.TrimSpace(v)
	}
	if v := os.Getenv("BOOKFIND_SESSION_FILE"); v != "" {
		cfg.SessionFile = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}

	if cfg.ServiceURL == "" {
		cfg.ServiceURL = "http://localhost:5000/api"
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if !strings.HasPrefix(cfg.ServiceURL, "http://") && !strings.HasPrefix(cfg.ServiceURL, "https://") {
		return errors.New("config: serviceURL must be an http(s) URL")
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("config: invalid requestTimeout: %w", err)
		}
	}
	return nil
}

// ParseRequestTimeout parses the optional request timeout duration string.
func ParseRequestTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid requestTimeout duration: %w", err)
	}
	return dur, nil
}
