package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if cfg.RepeaterThreshold != 70 || cfg.RepeaterFactor != 0.5 {
		t.Errorf("Unexpected repeater defaults: %v / %v", cfg.RepeaterThreshold, cfg.RepeaterFactor)
	}
	if cfg.QECThreshold != 0.2 || cfg.QECFactor != 0.3 {
		t.Errorf("Unexpected QEC defaults: %v / %v", cfg.QECThreshold, cfg.QECFactor)
	}
	if cfg.BottleneckThreshold != 100 || cfg.MaxAttempts != 5 {
		t.Errorf("Unexpected routing defaults: %v / %v", cfg.BottleneckThreshold, cfg.MaxAttempts)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_OverridesOnlyGivenOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := "repeater_threshold: 50\nmax_attempts: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RepeaterThreshold != 50 || cfg.MaxAttempts != 3 {
		t.Errorf("Overrides not applied: %v / %v", cfg.RepeaterThreshold, cfg.MaxAttempts)
	}
	if cfg.QECFactor != 0.3 || cfg.BottleneckThreshold != 100 {
		t.Errorf("Untouched options drifted from defaults: %v / %v", cfg.QECFactor, cfg.BottleneckThreshold)
	}
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte("max_attempts: -1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected a validation error for a negative attempt budget")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
