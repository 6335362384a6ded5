package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything logscope needs to reach the analysis service.
type Config struct {
	ServiceURL     string        `validate:"required,url|hostname_port"`
	RequestTimeout time.Duration `validate:"gte=0"`
	LogFile        string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
}

const (
	defaultConfigPath = "~/.config/logscope/config.toml"
	defaultLogFile    = "~/.local/state/logscope/logscope.log"
	defaultLogLevel   = "info"

	// DefaultServiceURL is the analysis endpoint used when nothing else is configured.
	DefaultServiceURL = "http://localhost:8080/log/analyze"

	envServiceURL = "LOGSCOPE_SERVICE_URL"
	envLogLevel   = "LOGSCOPE_LOG_LEVEL"
)

var validate = validator.New()

// Load locates and parses the logscope config, falling back to defaults when missing.
// A .env file in the working directory and LOGSCOPE_* variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceURL: DefaultServiceURL,
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   defaultLogLevel,
	}

	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(resolved string) error {
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServiceURL     string `toml:"service_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.ServiceURL); v != "" {
		c.ServiceURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		c.RequestTimeout = timeout
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c *Config) applyEnv() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv(envServiceURL)); v != "" {
		c.ServiceURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
