// Package config loads the service configuration for the HTTP server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the flowkit HTTP service.
type ServerConfig struct {
	Version int `yaml:"version"`

	Listen struct {
		Addr string `yaml:"addr"`
	} `yaml:"listen"`

	// Flows selects the flow document store: "memory" or "file".
	Flows struct {
		Backend string `yaml:"backend"`
		Dir     string `yaml:"dir"`
	} `yaml:"flows"`

	// Sessions selects the intake session store: "memory" or "redis".
	Sessions struct {
		Backend  string        `yaml:"backend"`
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"sessions"`

	Engine struct {
		LoopLimit int `yaml:"loop_limit"`
	} `yaml:"engine"`
}

// Addr returns the configured listen address, defaulting to ":8080".
func (c *ServerConfig) Addr() string {
	if c.Listen.Addr == "" {
		return ":8080"
	}
	return c.Listen.Addr
}

// FlowBackend returns the flow store backend, defaulting to "memory".
func (c *ServerConfig) FlowBackend() string {
	if c.Flows.Backend == "" {
		return "memory"
	}
	return c.Flows.Backend
}

// SessionBackend returns the session store backend, defaulting to "memory".
func (c *ServerConfig) SessionBackend() string {
	if c.Sessions.Backend == "" {
		return "memory"
	}
	return c.Sessions.Backend
}

// LoopLimit returns the configured per-node visit bound, or 0 when unset
// (the engine then applies its own default).
func (c *ServerConfig) LoopLimit() int {
	return c.Engine.LoopLimit
}

// Default returns the zero configuration with defaults applied via accessors.
func Default() *ServerConfig {
	return &ServerConfig{Version: 1}
}

// Load reads and parses a YAML server configuration file.
func Load(path string) (*ServerConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}

	return &cfg, nil
}
