// Package engine implements the fund mechanics for a single simulated
// realization (spec §4.4) and the Monte Carlo batch driver that runs many
// of them (spec §4.6). Besides the other core packages (internal/prng,
// internal/sampler, internal/irr), this package imports only
// internal/model — no config, storage, notification, or CLI concern
// reaches in here (spec §6.1).
package engine

import (
	"fmt"
	"math"
	"sort"

	"PMFSimulator/internal/irr"
	"PMFSimulator/internal/model"
	"PMFSimulator/internal/prng"
	"PMFSimulator/internal/sampler"
)

// invalidParamsResult is returned, with no sampling performed, when params
// fail validation (spec §7).
func invalidParamsResult(err error) model.SimulationResult {
	return model.SimulationResult{
		Warnings: []string{fmt.Sprintf("invalid params: %v", err)},
	}
}

// company tracks per-company state through the selection pipeline: its
// outcome multiple, the noisy traction signal used for ranking, and its
// original index (used for stable tie-breaking throughout).
type company struct {
	index      int
	outcome    float64
	signal     float64
	conviction bool
	followOn   bool
}

// SimulateOnce runs one realization of the fund's lifecycle: fees,
// reserves, graduation by noisy signal, follow-on selection, cash-flow
// construction, and metric computation (spec §4.4).
func SimulateOnce(params model.FundParams, rng *prng.PRNG) model.SimulationResult {
	if err := params.Validate(); err != nil {
		return invalidParamsResult(err)
	}

	// 1. Fees.
	totalFees := 0.0
	for year := 1; year <= params.FundLife; year++ {
		totalFees += feeForYear(params, year)
	}
	investableCapital := params.FundSize - totalFees

	// 2. Reserves.
	followOnReserve := params.FundSize * params.FollowOnReservePercent
	deployableCapital := investableCapital - followOnReserve

	// 3. Cohort sizes.
	numDiscovery := params.MaxDiscoveryChecks
	numConviction := roundHalfAwayFromZero(float64(numDiscovery) * params.GraduationRate)

	var warnings []string
	plannedCalled := float64(numDiscovery)*params.DiscoveryCheckSize + float64(numConviction)*params.ConvictionCheckSize
	if plannedCalled > deployableCapital {
		warnings = append(warnings, fmt.Sprintf(
			"planned discovery+conviction capital %.2f exceeds deployable capital %.2f; check sizes are not scaled down",
			plannedCalled, deployableCapital))
	}

	// 4. Outcome generation.
	companies := make([]company, numDiscovery)
	for i := 0; i < numDiscovery; i++ {
		outcome := sampler.DiscoveryOnly(rng)
		signal := math.Log(outcome+0.1) + rng.Gaussian(0, 1.0)
		companies[i] = company{index: i, outcome: outcome, signal: signal}
	}

	// 5. Conviction selection: stable sort on (-signal, index).
	ranked := make([]int, numDiscovery)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return companies[ranked[a]].signal > companies[ranked[b]].signal
	})
	for rank := 0; rank < numConviction && rank < len(ranked); rank++ {
		companies[ranked[rank]].conviction = true
	}

	// 6. Conviction re-draw.
	for i := range companies {
		if companies[i].conviction {
			companies[i].outcome = sampler.Conviction(rng)
		}
	}

	// 7. Follow-on selection and sizing.
	avgFollowOnCheck := 0.5 * params.ConvictionCheckSize
	numFollowOn := 0
	if avgFollowOnCheck > 0 {
		byReserve := int(math.Floor(followOnReserve / avgFollowOnCheck))
		byCohort := roundHalfAwayFromZero(0.4 * float64(numConviction))
		numFollowOn = byReserve
		if byCohort < numFollowOn {
			numFollowOn = byCohort
		}
	}
	if numFollowOn < 0 {
		numFollowOn = 0
	}

	convictionIdx := make([]int, 0, numConviction)
	for i := range companies {
		if companies[i].conviction {
			convictionIdx = append(convictionIdx, i)
		}
	}
	sort.SliceStable(convictionIdx, func(a, b int) bool {
		ca, cb := convictionIdx[a], convictionIdx[b]
		return companies[ca].outcome > companies[cb].outcome
	})

	followOnCheckSize := 0.0
	if numFollowOn > 0 {
		followOnCheckSize = followOnReserve / float64(numFollowOn)
		for k := 0; k < numFollowOn && k < len(convictionIdx); k++ {
			companies[convictionIdx[k]].followOn = true
		}
	}

	// 8. Cash flows.
	cf := make([]float64, params.FundLife+1)
	cf[1] -= float64(numDiscovery) * params.DiscoveryCheckSize
	cf[1] -= float64(numConviction) * params.ConvictionCheckSize
	if numFollowOn > 0 {
		cf[2] -= 0.5 * followOnReserve
		cf[3] -= 0.5 * followOnReserve
	}

	totalDistGross := 0.0
	for i := range companies {
		c := &companies[i]
		exitYear := int(rng.RandInt(4, int64(params.FundLife)))

		var dist float64
		if c.conviction {
			invested := params.DiscoveryCheckSize + params.ConvictionCheckSize
			dist = invested * c.outcome
			if c.followOn {
				dist += followOnCheckSize * math.Max(c.outcome/3, 0)
			}
		} else {
			dist = params.DiscoveryCheckSize * c.outcome
		}

		if exitYear >= 0 && exitYear < len(cf) {
			cf[exitYear] += dist
		}
		totalDistGross += dist
	}

	// 9. Metrics.
	totalCalled := 0.0
	for _, v := range cf {
		if v < 0 {
			totalCalled -= v
		}
	}

	result := model.SimulationResult{
		TotalCalled:        totalCalled,
		TotalDistGross:     totalDistGross,
		DiscoveryOnlyCount: numDiscovery - numConviction,
		ConvictionCount:    numConviction,
		FollowOnCount:      numFollowOn,
		Warnings:           warnings,
	}

	if totalCalled == 0 {
		return result
	}

	result.GrossTvpi = totalDistGross / totalCalled
	result.DpiGross = result.GrossTvpi

	profit := totalDistGross - totalCalled
	carryPaid := 0.0
	if profit > 0 {
		carryPaid = profit * params.Carry
	}
	result.CarryPaid = carryPaid

	totalDistNet := totalDistGross - carryPaid
	result.TotalDistNet = totalDistNet
	result.NetTvpi = totalDistNet / totalCalled
	result.DpiNet = result.NetTvpi

	netCf := make([]float64, len(cf))
	copy(netCf, cf)
	netCf[params.FundLife] -= carryPaid
	solved := irr.Solve(netCf)
	if solved.Converged && !math.IsNaN(solved.Rate) {
		result.IrrNet = solved.Rate
	}

	return result
}

// roundHalfAwayFromZero is the spec's reference rounding convention for
// cohort sizes (spec §9) — Go's math.Round already rounds half away from
// zero, but we spell it out via floor(x+0.5) to document the intent and
// match the spec's stated formula exactly for the non-negative inputs
// that occur here.
func roundHalfAwayFromZero(x float64) int {
	return int(math.Floor(x + 0.5))
}

func feeForYear(params model.FundParams, year int) float64 {
	if year <= params.MgmtFeeFullYears {
		return params.MgmtFeeRate * params.FundSize
	}
	return params.MgmtFeeStepdown * params.MgmtFeeRate * params.FundSize
}
