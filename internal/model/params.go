// Package model holds the pure data records shared between the engine and
// its hosts: fund parameters in, simulation results out. Nothing in this
// package touches I/O, randomness, or time.
package model

import "fmt"

// FundParams describes a fund's two-stage "discovery then conviction"
// investment policy. All fields are non-negative unless noted.
type FundParams struct {
	FundSize float64 `json:"fundSize" yaml:"fund_size"`
	FundLife int     `json:"fundLife" yaml:"fund_life"`

	MgmtFeeRate      float64 `json:"mgmtFeeRate" yaml:"mgmt_fee_rate"`
	MgmtFeeFullYears int     `json:"mgmtFeeFullYears" yaml:"mgmt_fee_full_years"`
	MgmtFeeStepdown  float64 `json:"mgmtFeeStepdown" yaml:"mgmt_fee_stepdown"`

	Carry float64 `json:"carry" yaml:"carry"`

	DiscoveryCheckSize float64 `json:"discoveryCheckSize" yaml:"discovery_check_size"`
	MaxDiscoveryChecks int     `json:"maxDiscoveryChecks" yaml:"max_discovery_checks"`

	ConvictionCheckSize float64 `json:"convictionCheckSize" yaml:"conviction_check_size"`
	ConvictionCheckMin  float64 `json:"convictionCheckMin" yaml:"conviction_check_min"`
	ConvictionCheckMax  float64 `json:"convictionCheckMax" yaml:"conviction_check_max"`

	GraduationRate float64 `json:"graduationRate" yaml:"graduation_rate"`

	FollowOnReservePercent float64 `json:"followOnReservePercent" yaml:"follow_on_reserve_percent"`
}

// Validate rejects parameter combinations the engine's "always returns a
// number" philosophy still treats as hard failures (spec §7): negative
// fundSize, non-positive fundLife, and rates outside their natural [0,1]
// range.
func (p FundParams) Validate() error {
	if p.FundSize < 0 {
		return fmt.Errorf("fundSize must be non-negative, got %v", p.FundSize)
	}
	if p.FundLife <= 0 {
		return fmt.Errorf("fundLife must be positive, got %v", p.FundLife)
	}
	if p.MgmtFeeFullYears < 0 || p.MgmtFeeFullYears > p.FundLife {
		return fmt.Errorf("mgmtFeeFullYears must be in [0, fundLife], got %v", p.MgmtFeeFullYears)
	}
	if p.MgmtFeeRate < 0 || p.MgmtFeeRate > 1 {
		return fmt.Errorf("mgmtFeeRate must be in [0,1], got %v", p.MgmtFeeRate)
	}
	if p.Carry < 0 || p.Carry > 1 {
		return fmt.Errorf("carry must be in [0,1], got %v", p.Carry)
	}
	if p.GraduationRate < 0 || p.GraduationRate > 1 {
		return fmt.Errorf("graduationRate must be in [0,1], got %v", p.GraduationRate)
	}
	if p.FollowOnReservePercent < 0 || p.FollowOnReservePercent > 1 {
		return fmt.Errorf("followOnReservePercent must be in [0,1], got %v", p.FollowOnReservePercent)
	}
	if p.MaxDiscoveryChecks < 0 {
		return fmt.Errorf("maxDiscoveryChecks must be non-negative, got %v", p.MaxDiscoveryChecks)
	}
	if p.DiscoveryCheckSize < 0 || p.ConvictionCheckSize < 0 {
		return fmt.Errorf("check sizes must be non-negative")
	}
	return nil
}

// Default returns the host's starting parameters (spec §6), informational
// but used as the baseline any config or CLI invocation falls back to.
func Default() FundParams {
	return FundParams{
		FundSize:               25_000_000,
		FundLife:               10,
		MgmtFeeRate:            0.02,
		MgmtFeeFullYears:       4,
		MgmtFeeStepdown:        0.7,
		Carry:                  0.20,
		DiscoveryCheckSize:     100_000,
		MaxDiscoveryChecks:     75,
		ConvictionCheckSize:    400_000,
		ConvictionCheckMin:     250_000,
		ConvictionCheckMax:     600_000,
		GraduationRate:         0.25,
		FollowOnReservePercent: 0.20,
	}
}
