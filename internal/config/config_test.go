package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fund.FundSize != 25_000_000 {
		t.Errorf("expected default fundSize, got %v", cfg.Fund.FundSize)
	}
	if cfg.Run.NumSimulations != 5000 {
		t.Errorf("expected default numSimulations, got %v", cfg.Run.NumSimulations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("fund:\n  fund_size: 10000000\nrun:\n  num_simulations: 1000\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fund.FundSize != 10_000_000 {
		t.Errorf("expected overridden fundSize, got %v", cfg.Fund.FundSize)
	}
	if cfg.Run.NumSimulations != 1000 {
		t.Errorf("expected overridden numSimulations, got %v", cfg.Run.NumSimulations)
	}
	// fields not set in the file still get defaults
	if cfg.Fund.FundLife != 10 {
		t.Errorf("expected default fundLife, got %v", cfg.Fund.FundLife)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fund:\n  fund_size: 10000000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PMFSIM_FUND_SIZE", "5000000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fund.FundSize != 5_000_000 {
		t.Errorf("expected env override to win, got %v", cfg.Fund.FundSize)
	}
}

func TestValidate_RejectsBadFundLife(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Fund.FundLife = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for fundLife=0")
	}
}
