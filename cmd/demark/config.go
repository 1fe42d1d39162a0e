package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig holds the optional YAML defaults file. Every field is optional;
// explicit command-line flags always win.
type fileConfig struct {
	// Threshold overrides the default detection threshold. A pointer so
	// an explicit 0 can be told apart from "not set".
	Threshold *float64 `yaml:"threshold"`

	// Workers sets the directory-mode pool size.
	Workers int `yaml:"workers"`

	// Annotate enables the detection-box debug output.
	Annotate bool `yaml:"annotate"`

	// BlurRadius tunes the detector's pre-gradient denoising.
	BlurRadius float64 `yaml:"blur_radius"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
