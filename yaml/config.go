// Package yaml loads the optional inlink configuration file.
package yaml

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/inlink"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config home.
const AppName = "inlink"

// ConfigFile is the file name looked up in the config directory.
const ConfigFile = "config.yaml"

// Config holds settings read from the configuration file.
// Nil fields were not set and leave the built-in default in place.
type Config struct {
	UserAgents  []string       `yaml:"user_agents,omitempty"`
	MinDelay    *time.Duration `yaml:"min_delay,omitempty"`
	MaxDelay    *time.Duration `yaml:"max_delay,omitempty"`
	Timeout     *time.Duration `yaml:"timeout,omitempty"`
	Concurrency *int           `yaml:"concurrency,omitempty"`
	Retries     *int           `yaml:"retries,omitempty"`
}

// DefaultPath returns the config file location under the XDG config home.
// On Linux: ~/.config/inlink/config.yaml
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// Load reads the configuration file at path.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot
// be parsed or holds unknown keys. An empty file yields an empty Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, inlink.Errorf(inlink.ENOTFOUND, "config file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, inlink.Errorf(inlink.EINVALID, "parsing config file %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative values.
func (c *Config) Validate() error {
	switch {
	case c.MinDelay != nil && *c.MinDelay < 0:
		return inlink.Errorf(inlink.EINVALID, "min_delay must be non-negative")
	case c.MaxDelay != nil && *c.MaxDelay < 0:
		return inlink.Errorf(inlink.EINVALID, "max_delay must be non-negative")
	case c.Timeout != nil && *c.Timeout <= 0:
		return inlink.Errorf(inlink.EINVALID, "timeout must be positive")
	case c.Concurrency != nil && *c.Concurrency < 1:
		return inlink.Errorf(inlink.EINVALID, "concurrency must be at least 1")
	case c.Retries != nil && *c.Retries < 0:
		return inlink.Errorf(inlink.EINVALID, "retries must be non-negative")
	}
	for _, ua := range c.UserAgents {
		if ua == "" {
			return inlink.Errorf(inlink.EINVALID, "user_agents must not contain empty entries")
		}
	}
	return nil
}

// Politeness overlays the file's identity and delay settings on base.
func (c *Config) Politeness(base inlink.Politeness) inlink.Politeness {
	if len(c.UserAgents) > 0 {
		base.UserAgents = append([]string(nil), c.UserAgents...)
	}
	if c.MinDelay != nil {
		base.MinDelay = *c.MinDelay
	}
	if c.MaxDelay != nil {
		base.MaxDelay = *c.MaxDelay
	}
	return base
}
