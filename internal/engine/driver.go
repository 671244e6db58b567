package engine

import (
	"sync"
	"time"

	"PMFSimulator/internal/model"
	"PMFSimulator/internal/prng"
)

// RunMonteCarlo runs numSimulations independent realizations sharing one
// PRNG stream seeded from seed, then aggregates them (spec §4.6). Passing
// nil for seed defaults to wall-clock milliseconds — only ever appropriate
// for exploratory, non-reproducible batches (e.g. the scheduler's nightly
// re-forecast).
func RunMonteCarlo(params model.FundParams, numSimulations int, seed *int64) model.MonteCarloResults {
	s := resolveSeed(seed)
	rng := prng.New(s)

	runs := make([]model.SimulationResult, numSimulations)
	for i := 0; i < numSimulations; i++ {
		runs[i] = SimulateOnce(params, rng)
	}

	return aggregate(params, numSimulations, runs)
}

// RunMonteCarloParallel shards numSimulations runs across shards
// goroutines, each with a deterministic per-shard seed derived from seed
// via a splitmix64 finalizer (spec §5, grounded on the ensemble-of-runs
// pattern used for parallel physics batches). Results are concatenated in
// shard order before aggregation. With shards == 1 this degenerates to,
// and is byte-identical with, RunMonteCarlo. With shards > 1 every
// per-run invariant still holds, but the output is not byte-identical to
// the sequential driver for the same seed alone — only reproducible per
// (seed, shards).
func RunMonteCarloParallel(params model.FundParams, numSimulations int, seed *int64, shards int) model.MonteCarloResults {
	if shards <= 1 {
		return RunMonteCarlo(params, numSimulations, seed)
	}

	s := resolveSeed(seed)
	perShard := numSimulations / shards
	remainder := numSimulations % shards

	runs := make([]model.SimulationResult, numSimulations)
	var wg sync.WaitGroup
	offset := 0
	for shard := 0; shard < shards; shard++ {
		count := perShard
		if shard < remainder {
			count++
		}
		if count == 0 {
			continue
		}

		shardSeed := mixSeed(s, shard)
		start := offset
		wg.Add(1)
		go func(start, count int, shardSeed int64) {
			defer wg.Done()
			rng := prng.New(shardSeed)
			for i := 0; i < count; i++ {
				runs[start+i] = SimulateOnce(params, rng)
			}
		}(start, count, shardSeed)
		offset += count
	}
	wg.Wait()

	return aggregate(params, numSimulations, runs)
}

func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixMilli()
}

// mixSeed derives a per-shard seed from the batch seed and shard index
// using the splitmix64 finalizer, giving well-distributed, deterministic
// per-shard streams.
func mixSeed(seed int64, shard int) int64 {
	z := uint64(seed) + uint64(shard)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z)
}

func aggregate(params model.FundParams, numSimulations int, runs []model.SimulationResult) model.MonteCarloResults {
	grossTvpi := make([]float64, numSimulations)
	netTvpi := make([]float64, numSimulations)
	dpiNet := make([]float64, numSimulations)
	irrNet := make([]float64, numSimulations)

	for i, r := range runs {
		grossTvpi[i] = r.GrossTvpi
		netTvpi[i] = r.NetTvpi
		dpiNet[i] = r.DpiNet
		irrNet[i] = r.IrrNet
	}

	return model.MonteCarloResults{
		Params:         params,
		NumSimulations: numSimulations,
		Runs:           runs,
		GrossTvpi:      summarize(grossTvpi),
		NetTvpi:        summarize(netTvpi),
		DpiNet:         summarize(dpiNet),
		IrrNet:         summarize(irrNet),
		ProbReturnFund: thresholdProbability(runs, 1.0),
		Prob2x:         thresholdProbability(runs, 2.0),
		Prob3x:         thresholdProbability(runs, 3.0),
	}
}
