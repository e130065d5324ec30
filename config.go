// config.go - assembler configuration

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tunables of one assembly run.
type Config struct {
	// TextStart is the address of the first instruction. The default
	// of 0 makes symbol-table addresses plain byte offsets into the
	// instruction stream. Must be word-aligned.
	TextStart uint32 `yaml:"text_start"`
	// Color enables ANSI-colored diagnostics when stderr is a
	// terminal.
	Color bool `yaml:"color"`
	// EmitIntermediate also writes the post-expansion listing next to
	// the object file.
	EmitIntermediate bool `yaml:"emit_intermediate"`
}

func DefaultConfig() Config {
	return Config{TextStart: 0, Color: true}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.TextStart%4 != 0 {
		return cfg, fmt.Errorf("%s: text_start must be a multiple of 4", path)
	}
	return cfg, nil
}
