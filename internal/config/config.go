package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

type Server struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

type Game struct {
	Duration     time.Duration `yaml:"duration"`
	PlayInterval time.Duration `yaml:"playInterval"`
	ResetDelay   time.Duration `yaml:"resetDelay"`
	ShopSize     int           `yaml:"shopSize"`
}

type History struct {
	Path string `yaml:"path"`
}

type NATS struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

type Consul struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	ServiceName string `yaml:"serviceName"`
	Address     string `yaml:"address"`
}

// Config armazena todas as configurações da aplicação.
type Config struct {
	Server  Server  `yaml:"server"`
	Game    Game    `yaml:"game"`
	History History `yaml:"history"`
	NATS    NATS    `yaml:"nats"`
	Consul  Consul  `yaml:"consul"`
}

// Process loads the defaults, overlays each file in order, then applies the
// environment. Later files win over earlier ones; the environment wins over
// all files.
func Process(paths []string) (*Config, error) {
	return process(paths, os.LookupEnv)
}

func process(paths []string, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(DEFAULT, &cfg); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DECKRUSH_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DECKRUSH_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("ORIGIN_ALLOWLIST"); ok && v != "" {
		c.Server.AllowOrigins = strings.Split(v, ",")
	}
	if v, ok := lookup("DECKRUSH_DB"); ok {
		c.History.Path = v
	}
	if v, ok := lookup("NATS_URL"); ok {
		c.NATS.URL = v
	}
	if v, ok := lookup("CONSUL_HTTP_ADDR"); ok && v != "" {
		c.Consul.Addr = v
		c.Consul.Enabled = true
	}
	return nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Game.Duration < time.Second {
		return fmt.Errorf("game duration must be at least 1s, got %s", c.Game.Duration)
	}
	if c.Game.PlayInterval <= 0 {
		return fmt.Errorf("play interval must be positive, got %s", c.Game.PlayInterval)
	}
	if c.Game.ResetDelay <= 0 {
		return fmt.Errorf("reset delay must be positive, got %s", c.Game.ResetDelay)
	}
	if c.Game.ShopSize <= 0 {
		return fmt.Errorf("shop size must be positive, got %d", c.Game.ShopSize)
	}
	if c.Consul.Enabled && c.Consul.Addr == "" {
		return fmt.Errorf("consul is enabled but has no address")
	}
	return nil
}
