// Package config loads blockifyctl's YAML configuration file, expanding
// ${VAR}/${VAR:default} tokens and applying defaults the same way the
// rest of the ecosystem's miner/agent daemons do.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is blockifyctl's on-disk configuration.
type Config struct {
	LogLevel string `yaml:"logLevel"` // debug | info | warn | error

	Chain struct {
		Backend string `yaml:"backend"` // "memory" | "sqlite"
		Path    string `yaml:"path"`    // sqlite file path, ignored for memory
	} `yaml:"chain"`

	Keys struct {
		PrivateKeyPath string `yaml:"privateKeyPath"`
	} `yaml:"keys"`

	Metrics struct {
		Enable bool   `yaml:"enable"`
		Listen string `yaml:"listen"`
	} `yaml:"metrics"`
}

// Load reads path, expands environment tokens, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.LogLevel = expandEnvDefault(cfg.LogLevel)
	cfg.Chain.Backend = expandEnvDefault(cfg.Chain.Backend)
	cfg.Chain.Path = expandEnvDefault(cfg.Chain.Path)
	cfg.Keys.PrivateKeyPath = expandEnvDefault(cfg.Keys.PrivateKeyPath)
	cfg.Metrics.Listen = expandEnvDefault(cfg.Metrics.Listen)

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Chain.Backend == "" {
		c.Chain.Backend = "memory"
	}
	if c.Chain.Path == "" {
		c.Chain.Path = "blockify.db"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9090"
	}
}

func validate(c *Config) error {
	switch c.Chain.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: chain.backend must be \"memory\" or \"sqlite\", got %q", c.Chain.Backend)
	}
	if c.Chain.Backend == "sqlite" && c.Chain.Path == "" {
		return errors.New("config: chain.path is required for the sqlite backend")
	}
	return nil
}

var envRe = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnvDefault replaces ${VAR} with os.Getenv("VAR") and
// ${VAR:default} with the env value, or default when VAR is unset.
func expandEnvDefault(s string) string {
	if s == "" {
		return s
	}
	return envRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := envRe.FindStringSubmatch(m)
		if len(parts) != 3 {
			return m
		}
		name, def := parts[1], parts[2]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return def
	})
}
