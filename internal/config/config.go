// Package config loads the small YAML configuration shared by cmd/server
// and cmd/bench.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/textloom/seqcrdt/internal/util"
)

type Config struct {
	Node      NodeConfig `yaml:"node"`
	LogLevel  string     `yaml:"log_level"`
	Algorithm string     `yaml:"algorithm"`
}

type NodeConfig struct {
	ID          string `yaml:"id"`
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Node:      NodeConfig{ID: "node-1", BindAddress: "0.0.0.0", Port: 8080},
		LogLevel:  "info",
		Algorithm: "yjsMod",
	}
}

// Read loads a YAML config file, falling back to Default for any field the
// file omits.
func Read(path string) (*Config, error) {
	defaults := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, err
	}

	loaded.Node.ID = util.Choose(loaded.Node.ID != "", loaded.Node.ID, defaults.Node.ID)
	loaded.Node.BindAddress = util.Choose(loaded.Node.BindAddress != "", loaded.Node.BindAddress, defaults.Node.BindAddress)
	loaded.Node.Port = util.Choose(loaded.Node.Port != 0, loaded.Node.Port, defaults.Node.Port)
	loaded.LogLevel = util.Choose(loaded.LogLevel != "", loaded.LogLevel, defaults.LogLevel)
	loaded.Algorithm = util.Choose(loaded.Algorithm != "", loaded.Algorithm, defaults.Algorithm)

	return loaded, nil
}
