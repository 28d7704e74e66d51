// Package config provides the configuration of the ledgercodec tool.
package config

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"github.com/xrplkit/ledger-codec/pkg/log"
)

const maxWorkers = 1024

type Config struct {
	// Definitions is a path to a definitions.json file. Empty selects the embedded table.
	Definitions string `yaml:"definitions"`
	LogLevel    string `yaml:"logLevel"`
	// LogJSON switches log output from console to JSON lines.
	LogJSON bool `yaml:"logJSON"`
	// Strict rejects unknown field names during encode.
	Strict  bool `yaml:"strict"`
	Workers int  `yaml:"workers"`
}

// Load reads a YAML config file. Missing values are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.InsertDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.InsertDefault()
	return cfg
}

func (c *Config) InsertDefault() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// Merge overrides c with the values set in config.
func (c *Config) Merge(config *Config) {
	if config == nil {
		return
	}
	if config.Definitions != "" {
		c.Definitions = config.Definitions
	}
	if config.LogLevel != "" {
		c.LogLevel = config.LogLevel
	}
	if config.LogJSON {
		c.LogJSON = true
	}
	if config.Strict {
		c.Strict = true
	}
	if config.Workers != 0 {
		c.Workers = config.Workers
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(log.Levels, c.LogLevel) {
		return errors.Newf("invalid log level %q, expected one of %v", c.LogLevel, log.Levels)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return errors.Newf("invalid workers %d, expected 1 to %d", c.Workers, maxWorkers)
	}
	if c.Definitions != "" {
		if _, err := os.Stat(c.Definitions); err != nil {
			return errors.Wrapf(err, "definitions %s", c.Definitions)
		}
	}
	return nil
}
