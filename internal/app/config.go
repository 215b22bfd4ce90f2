package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   string   // task name, e.g. "validate" or "path"
	Args      []string // remaining positional arguments for the task
	ConfigDir string   // directory holding the yaml documents

	LogFormat string
	LogLevel  string
	Strict    bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "config"
	}

	return &cfg, nil
}
