package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "protocompat.yaml"

// Config holds the settings shared by the CLI commands, the HTTP server and the MCP server.
type Config struct {
	Rounds    int         `yaml:"rounds" json:"rounds" validate:"gte=0"`
	Output    string      `yaml:"output" json:"output"`
	LogLevel  string      `yaml:"log_level" json:"log_level" validate:"oneof=none error warn warning info debug"`
	Workers   int         `yaml:"workers" json:"workers" validate:"gte=0"`
	Weighting string      `yaml:"weighting" json:"weighting" validate:"oneof=degree matching"`
	Format    string      `yaml:"format" json:"format" validate:"oneof=text markdown"`
	Banner    bool        `yaml:"banner" json:"banner"`
	Store     StoreConfig `yaml:"store" json:"store"`
	Serve     ServeConfig `yaml:"serve" json:"serve"`
}

// StoreConfig selects where finished runs are persisted.
type StoreConfig struct {
	Driver   string `yaml:"driver" json:"driver" validate:"oneof=none memory file badger redis"`
	Path     string `yaml:"path" json:"path"`
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"` // Go duration, e.g. "24h"
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `yaml:"addr" json:"addr" validate:"required"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Rounds:    1,
		Output:    "result.txt",
		LogLevel:  "none",
		Workers:   1,
		Weighting: "degree",
		Format:    "text",
		Banner:    true,
		Store: StoreConfig{
			Driver: "none",
			Path:   filepath.Join(".protocompat", "runs"),
			Addr:   "localhost:6379",
		},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// Load reads a YAML or JSON config file over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Store.TTLDuration(); err != nil {
		return err
	}
	return nil
}

// TTLDuration parses TTL; an empty TTL means no expiration.
func (s StoreConfig) TTLDuration() (time.Duration, error) {
	if s.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid store ttl %q: %w", s.TTL, err)
	}
	return d, nil
}
