package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Timing.DiscriminationTime != 10*time.Second {
		t.Errorf("discrimination_time = %v, want 10s", cfg.Timing.DiscriminationTime)
	}
	if cfg.Timing.FamiliarisationTime != 2*time.Second {
		t.Errorf("familiarisation_time = %v, want 2s", cfg.Timing.FamiliarisationTime)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
timing:
  discrimination_time: 15000000000
  familiarisation_time: 3000000000
store:
  path: /tmp/chrest-test
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Timing.DiscriminationTime != 15*time.Second {
		t.Errorf("discrimination_time = %v, want 15s", cfg.Timing.DiscriminationTime)
	}
	if cfg.Timing.FamiliarisationTime != 3*time.Second {
		t.Errorf("familiarisation_time = %v, want 3s", cfg.Timing.FamiliarisationTime)
	}
	if cfg.Store.Path != "/tmp/chrest-test" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: trace\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Logging.Level != "trace" {
		t.Errorf("log level = %q, want trace", cfg.Logging.Level)
	}
	if cfg.Timing.DiscriminationTime != 10*time.Second {
		t.Errorf("unset timing lost its default: %v", cfg.Timing.DiscriminationTime)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timing: [not, a, map]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Timing.DiscriminationTime = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("negative discrimination_time passed validation")
	}

	cfg = Default()
	cfg.Timing.FamiliarisationTime = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("negative familiarisation_time passed validation")
	}

	cfg = Default()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log level passed validation")
	}

	cfg = Default()
	cfg.Logging.Level = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty log level should be valid: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHREST_DISCRIMINATION_TIME", "5s")
	t.Setenv("CHREST_FAMILIARISATION_TIME", "500ms")
	t.Setenv("CHREST_STORE_PATH", "/tmp/chrest-env")
	t.Setenv("CHREST_LOG_LEVEL", "debug")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Timing.DiscriminationTime != 5*time.Second {
		t.Errorf("discrimination_time = %v, want 5s", cfg.Timing.DiscriminationTime)
	}
	if cfg.Timing.FamiliarisationTime != 500*time.Millisecond {
		t.Errorf("familiarisation_time = %v, want 500ms", cfg.Timing.FamiliarisationTime)
	}
	if cfg.Store.Path != "/tmp/chrest-env" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestEnvOverridesIgnoreInvalidDuration(t *testing.T) {
	t.Setenv("CHREST_DISCRIMINATION_TIME", "soon")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Timing.DiscriminationTime != 10*time.Second {
		t.Errorf("invalid duration replaced the default: %v", cfg.Timing.DiscriminationTime)
	}
}
