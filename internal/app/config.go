package app

import (
	"errors"
	"fmt"
	"strings"
)

// Output formats understood by the renderer.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
	OutputText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Target is a script directory, a script file or a compiled artifact.
	Target string
	// Compiled forces Target to be treated as a compiled artifact.
	Compiled       bool
	PackageSources []string

	// Environment overrides. Empty values keep the detected ones.
	Platform          string
	Architecture      string
	RuntimeIdentifier string
	TargetFramework   string
	GlobalPackages    string

	OutputFormat    string
	MetricsTextfile string
	LogFormat       string
	LogLevel        string
	WorkerCount     int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if strings.TrimSpace(cfg.Target) == "" {
		return nil, errors.New("Target is a required configuration field and cannot be empty")
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputYAML
	}
	switch cfg.OutputFormat {
	case OutputYAML, OutputJSON, OutputText:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be 'yaml', 'json' or 'text'", cfg.OutputFormat)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'trace', 'debug', 'info', 'warn' or 'error'", cfg.LogLevel)
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", cfg.WorkerCount)
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
