package app

import (
	"errors"
	"fmt"
)

// Output formats of the option report.
const (
	OutputJSON = "json"
	OutputText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	MarkupPaths   []string // html files or directories
	ConfigPaths   []string // hcl files
	ResourcePaths []string // hcl, json and yaml resource files

	// Prefix overrides the configured attribute prefix.
	Prefix string
	// Aspects are reported in addition to the configured ones.
	Aspects []string
	// Selector restricts mounting to the subtrees it matches.
	Selector string
	Output   string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.MarkupPaths) == 0 {
		return nil, errors.New("MarkupPaths is a required configuration field and cannot be empty")
	}

	switch cfg.Output {
	case "":
		cfg.Output = OutputJSON
	case OutputJSON, OutputText:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be '%s' or '%s'", cfg.Output, OutputJSON, OutputText)
	}

	return &cfg, nil
}
