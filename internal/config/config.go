// Package config loads PMFSimulator's host-level configuration: the
// engine's FundParams plus run/schedule/store/notifier settings. The
// engine package itself never imports this — config is a host concern
// (spec §6.1).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"PMFSimulator/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Fund model.FundParams `yaml:"fund"`

	Run struct {
		NumSimulations int    `yaml:"num_simulations"`
		Seed           *int64 `yaml:"seed"`
	} `yaml:"run"`

	Schedule struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"schedule"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Notifier struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notifier"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then fills in documented defaults (spec §6) for any field
// still at its zero value; an explicit zero in the file or environment is
// treated the same as an unset field and replaced by the default. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PMFSIM_FUND_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Fund.FundSize = f
		}
	}
	if v := os.Getenv("PMFSIM_NUM_SIMULATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.NumSimulations = n
		}
	}
	if v := os.Getenv("PMFSIM_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Seed = &s
		}
	}
	if v := os.Getenv("PMFSIM_SCHEDULE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("PMFSIM_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PMFSIM_WEBHOOK_URL"); v != "" {
		cfg.Notifier.WebhookURL = v
	}
}

func applyDefaults(cfg *Config) {
	defaults := model.Default()
	if cfg.Fund.FundSize == 0 {
		cfg.Fund.FundSize = defaults.FundSize
	}
	if cfg.Fund.FundLife == 0 {
		cfg.Fund.FundLife = defaults.FundLife
	}
	if cfg.Fund.MgmtFeeRate == 0 {
		cfg.Fund.MgmtFeeRate = defaults.MgmtFeeRate
	}
	if cfg.Fund.MgmtFeeFullYears == 0 {
		cfg.Fund.MgmtFeeFullYears = defaults.MgmtFeeFullYears
	}
	if cfg.Fund.MgmtFeeStepdown == 0 {
		cfg.Fund.MgmtFeeStepdown = defaults.MgmtFeeStepdown
	}
	if cfg.Fund.Carry == 0 {
		cfg.Fund.Carry = defaults.Carry
	}
	if cfg.Fund.DiscoveryCheckSize == 0 {
		cfg.Fund.DiscoveryCheckSize = defaults.DiscoveryCheckSize
	}
	if cfg.Fund.MaxDiscoveryChecks == 0 {
		cfg.Fund.MaxDiscoveryChecks = defaults.MaxDiscoveryChecks
	}
	if cfg.Fund.ConvictionCheckSize == 0 {
		cfg.Fund.ConvictionCheckSize = defaults.ConvictionCheckSize
	}
	if cfg.Fund.ConvictionCheckMin == 0 {
		cfg.Fund.ConvictionCheckMin = defaults.ConvictionCheckMin
	}
	if cfg.Fund.ConvictionCheckMax == 0 {
		cfg.Fund.ConvictionCheckMax = defaults.ConvictionCheckMax
	}
	if cfg.Fund.GraduationRate == 0 {
		cfg.Fund.GraduationRate = defaults.GraduationRate
	}
	if cfg.Fund.FollowOnReservePercent == 0 {
		cfg.Fund.FollowOnReservePercent = defaults.FollowOnReservePercent
	}
	if cfg.Run.NumSimulations == 0 {
		cfg.Run.NumSimulations = 5000
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 6 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/pmfsim.db"
	}
}

// Validate checks that the fund parameters are well formed, the same
// classes of error the engine itself would reject at entry (spec §7), so
// the CLI can fail fast with a friendly message before any sampling
// starts.
func (c *Config) Validate() error {
	if err := c.Fund.Validate(); err != nil {
		return fmt.Errorf("fund params: %w", err)
	}
	if c.Run.NumSimulations <= 0 {
		return fmt.Errorf("run.num_simulations must be positive")
	}
	return nil
}
