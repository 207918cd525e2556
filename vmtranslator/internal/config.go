package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type BootstrapMode string

const (
	// BootstrapAuto writes the bootstrap code when the program has a Sys module.
	BootstrapAuto   BootstrapMode = "auto"
	BootstrapAlways BootstrapMode = "always"
	BootstrapNever  BootstrapMode = "never"
)

// Config controls translation. It can be loaded from a yaml file:
//
//	bootstrap: auto
//	strict: true
//	comments: false
//	parallel: 4
//	log_level: info
//	log_format: text
type Config struct {
	Bootstrap BootstrapMode `yaml:"bootstrap"`
	// Strict makes lines that no operation recognizes an error instead of
	// skipping them.
	Strict bool `yaml:"strict"`
	// Comments prefixes every fragment with the vm line it was generated from.
	Comments bool `yaml:"comments"`
	// Parallel bounds the number of modules translated at once, 0 means no bound.
	Parallel  int    `yaml:"parallel"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func DefaultConfig() Config {
	return Config{
		Bootstrap: BootstrapAuto,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig reads a yaml config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (config Config) Validate() error {
	switch config.Bootstrap {
	case BootstrapAuto, BootstrapAlways, BootstrapNever:
	default:
		return fmt.Errorf("unknown bootstrap mode %q", config.Bootstrap)
	}
	if config.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative, got %d", config.Parallel)
	}
	if _, err := parseLogLevel(config.LogLevel); err != nil {
		return err
	}
	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.LogFormat)
	}
	return nil
}

func parseLogLevel(level string) (slog.Level, error) {
	var ret slog.Level
	if err := ret.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return ret, fmt.Errorf("unknown log level %q", level)
	}
	return ret, nil
}

// NewLogger builds the logger described by config, writing to w.
func NewLogger(w io.Writer, config Config) (*slog.Logger, error) {
	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch config.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(w, options)
	default:
		handler = slog.NewTextHandler(w, options)
	}
	return slog.New(handler), nil
}
