// Package sampler implements the engine's two piecewise-uniform outcome
// mixtures (spec §4.2). The range tables are calibration constants, not
// suggestions — every branch boundary and draw count below is part of the
// contract that keeps independent implementations bit-reproducible.
package sampler

import "PMFSimulator/internal/prng"

// DiscoveryOnly samples an exit multiple from the "seed/pre-seed-like"
// mixture. The zero branch consumes exactly one Uniform() call; every
// non-zero branch consumes exactly two (r, then u).
func DiscoveryOnly(r *prng.PRNG) float64 {
	roll := r.Uniform()
	switch {
	case roll < 0.70:
		return 0.0
	case roll < 0.85:
		return 0.5 + r.Uniform()*1.5
	case roll < 0.92:
		return 2.0 + r.Uniform()*3.0
	case roll < 0.97:
		return 5.0 + r.Uniform()*5.0
	case roll < 0.99:
		return 10.0 + r.Uniform()*10.0
	default:
		return 20.0 + r.Uniform()*30.0
	}
}

// Conviction samples an exit multiple from the "top-quartile-like" mixture.
// The zero branch consumes exactly one Uniform() call; every non-zero
// branch consumes exactly two (r, then u).
func Conviction(r *prng.PRNG) float64 {
	roll := r.Uniform()
	switch {
	case roll < 0.50:
		return 0.0
	case roll < 0.77:
		return 0.8 + r.Uniform()*0.4
	case roll < 0.89:
		return 2.5 + r.Uniform()*1.5
	case roll < 0.95:
		return 5.0 + r.Uniform()*5.0
	case roll < 0.985:
		return 15.0 + r.Uniform()*10.0
	case roll < 0.995:
		return 30.0 + r.Uniform()*20.0
	default:
		return 75.0 + r.Uniform()*75.0
	}
}
