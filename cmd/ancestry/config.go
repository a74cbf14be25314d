package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/ancestry/dialect"
)

// Config holds the settings of the command. Values are read from an
// optional YAML file and overridden by flags.
//
//	dialect: postgres
//	dsn: postgres://localhost/garage?sslmode=disable
//	schema_name: public
//	debug: true
//	slow_threshold: 250ms
type Config struct {
	Dialect       string        `yaml:"dialect"`
	DSN           string        `yaml:"dsn"`
	SchemaName    string        `yaml:"schema_name"`
	Schema        string        `yaml:"schema"`
	Debug         bool          `yaml:"debug"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

func defaultConfig() *Config {
	return &Config{
		Dialect:       dialect.SQLite,
		SlowThreshold: 100 * time.Millisecond,
	}
}

// loadConfig reads the config file at path over the defaults. An empty path
// returns the defaults. The result is validated by the caller once flags
// have been applied.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Dialect {
	case dialect.SQLite, dialect.Postgres, dialect.MySQL:
	default:
		return fmt.Errorf("unsupported dialect %q", c.Dialect)
	}
	if c.Schema == "" && c.DSN == "" {
		return fmt.Errorf("either a schema file or a dsn is required")
	}
	return nil
}
