package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
	"github.com/tripathik9559/railops/core/schedule/history"
	"github.com/tripathik9559/railops/infra/mqtt"
)

// StationConfig seeds the train store. Empty lists fall back to the demo
// station layout.
type StationConfig struct {
	Trains    []model.Train `json:"trains"`
	Platforms []int         `json:"platforms"`
}

// APIConfig defines the HTTP listener settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Config aggregates all service settings.
type Config struct {
	Station  StationConfig      `json:"station"`
	Schedule schedule.Params    `json:"schedule"`
	History  history.Config     `json:"history"`
	Metrics  coremetrics.Config `json:"metrics"`
	MQTT     mqtt.Config        `json:"mqtt"`
	API      APIConfig          `json:"api"`
}

// Load reads the configuration file (yaml or json by extension) and applies
// environment overrides of the form RAILOPS_SECTION__KEY.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("RAILOPS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "railops_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Schedule.SetDefaults()
	cfg.History.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.History.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
