// Package config resolves runtime settings: built-in defaults, then an
// optional YAML file, then environment variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvBaseURL  = "BASE_API_URL"
	EnvTimeout  = "MWU_TIMEOUT"
	EnvFrontend = "MWU_FRONTEND"
	EnvLogFile  = "MWU_LOG_FILE"
	EnvLogLevel = "MWU_LOG_LEVEL"
	EnvConfig   = "MWU_CONFIG"
)

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTimeout  = 15 * time.Second
	DefaultFrontend = "screen"
	DefaultLogLevel = "info"
)

// Config holds the settings of the admin client.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Frontend string        `yaml:"frontend"`
	LogFile  string        `yaml:"log_file"`
	LogLevel string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Frontend: DefaultFrontend,
		LogLevel: DefaultLogLevel,
	}
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Load resolves the configuration from args (without the program name) and
// the process environment.
func Load(args []string) (Config, error) {
	return LoadWith(args, os.LookupEnv)
}

// LoadWith is Load with an explicit environment.
func LoadWith(args []string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	fs := flag.NewFlagSet("mwu-admin", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "YAML configuration file")
		baseURL    = fs.String("base-url", "", "finance API base URL")
		timeout    = fs.Duration("timeout", 0, "per-request timeout")
		frontend   = fs.String("frontend", "", "frontend: screen or prompt")
		logFile    = fs.String("log-file", "", "write logs to this file")
		logLevel   = fs.String("log-level", "", "log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()

	path := *configPath
	if path == "" {
		path, _ = lookup(EnvConfig)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(lookup); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-url":
			cfg.BaseURL = *baseURL
		case "timeout":
			cfg.Timeout = *timeout
		case "frontend":
			cfg.Frontend = *frontend
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if file.BaseURL != "" {
		c.BaseURL = file.BaseURL
	}
	if file.Timeout != 0 {
		c.Timeout = file.Timeout
	}
	if file.Frontend != "" {
		c.Frontend = file.Frontend
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	return nil
}

func (c *Config) mergeEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvFrontend); ok && v != "" {
		c.Frontend = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.LogFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) normalise() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Frontend = strings.ToLower(strings.TrimSpace(c.Frontend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate requires an absolute http(s) base URL and a positive timeout.
func (c Config) Validate() error {
	var errs []error
	parsed, err := url.Parse(c.BaseURL)
	switch {
	case c.BaseURL == "":
		errs = append(errs, errors.New("base URL is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("base URL: %w", err))
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		errs = append(errs, fmt.Errorf("base URL %q must use http or https", c.BaseURL))
	case parsed.Host == "":
		errs = append(errs, fmt.Errorf("base URL %q has no host", c.BaseURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Frontend == "" {
		errs = append(errs, errors.New("frontend is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
