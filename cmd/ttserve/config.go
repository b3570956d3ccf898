package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/jzhengTT/ttserve/internal/registry"
)

// Config is the ttserve configuration file
// (~/.config/ttserve/config.yaml). Everything in it is optional.
type Config struct {
	// Python is the interpreter used to exec the vLLM server.
	Python string `yaml:"python"`
	// ServerModule overrides the vLLM entrypoint module.
	ServerModule string `yaml:"server_module"`
	// APIAddress is the listen address for the api command.
	APIAddress string `yaml:"api_address"`

	// Models are extra registrations appended after the builtin
	// Tenstorrent entries.
	Models []ModelConfig `yaml:"models"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type ModelConfig struct {
	Name      string `yaml:"name"`
	ClassPath string `yaml:"class_path"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ttserve", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or can't be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// registrationEntries merges the builtin table with config extras.
// Builtin entries come first and cannot be overridden; a config entry
// reusing a builtin name is dropped.
func registrationEntries(cfg Config) []registry.Entry {
	builtin := registry.Builtin()
	taken := make(map[string]bool, len(builtin))
	for _, e := range builtin {
		taken[e.Name] = true
	}

	entries := builtin
	for _, m := range cfg.Models {
		if taken[m.Name] {
			continue
		}
		entries = append(entries, registry.Entry{Name: m.Name, ClassPath: m.ClassPath})
	}
	return entries
}

// applyLoggingConfig fills logging settings from config when the
// corresponding flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyAPIConfig applies config defaults to the api command.
func applyAPIConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.APIAddress != "" && !c.IsSet("addr") {
		*addr = cfg.APIAddress
	}
}
