// config_test.go

/*
mipsasm — two-pass assembler for a MIPS subset
License: GPLv3 or later
*/

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TextStart != 0 {
		t.Errorf("TextStart = %d, want 0", cfg.TextStart)
	}
	if !cfg.Color {
		t.Error("Color should default to true")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mipsasm.yaml")
	data := "text_start: 64\ncolor: false\nemit_intermediate: true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TextStart != 64 {
		t.Errorf("TextStart = %d, want 64", cfg.TextStart)
	}
	if cfg.Color {
		t.Error("Color should be false")
	}
	if !cfg.EmitIntermediate {
		t.Error("EmitIntermediate should be true")
	}
}

func TestLoadConfigMisalignedTextStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mipsasm.yaml")
	if err := os.WriteFile(path, []byte("text_start: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("misaligned text_start should fail")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
}
