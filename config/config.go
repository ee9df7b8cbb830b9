// Package config loads the optional evmctl configuration file, which
// maps endpoint aliases to provider URLs and carries default settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root structure of the YAML configuration file.
type Config struct {
	Endpoints map[string]string `yaml:"endpoints"` // alias -> provider URL
	Defaults  Defaults          `yaml:"defaults"`
}

// Defaults holds settings applied when the matching flag is not given.
type Defaults struct {
	Timeout Duration `yaml:"timeout"` // per-request timeout, e.g. "30s"
}

// Duration wraps time.Duration so it can be written as "30s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultPath returns the config file location used when --config is
// not given: ~/.evmctl.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".evmctl.yaml")
}

// Load reads and parses a YAML configuration file, expanding ${VAR}
// environment references in its content. A missing file is not an
// error; it yields an empty config.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for alias, endpoint := range c.Endpoints {
		if err := checkURL(endpoint); err != nil {
			return fmt.Errorf("endpoint %s: %w", alias, err)
		}
	}
	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("defaults.timeout must be >= 0")
	}
	return nil
}

// Resolve maps an endpoint argument to a provider URL. A known alias
// resolves through the endpoints table; anything else must itself be
// an HTTP(S) URL.
func (c *Config) Resolve(endpoint string) (string, error) {
	if resolved, ok := c.Endpoints[endpoint]; ok {
		return resolved, nil
	}
	if err := checkURL(endpoint); err != nil {
		return "", err
	}
	return endpoint, nil
}

func checkURL(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint url %q (expected http or https)", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint url %q (missing host)", endpoint)
	}
	return nil
}
