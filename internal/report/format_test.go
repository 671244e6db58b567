package report

import (
	"strings"
	"testing"

	"PMFSimulator/internal/model"
)

func TestFormatBatch_ContainsHeadlineMetrics(t *testing.T) {
	results := &model.MonteCarloResults{
		Params:         model.Default(),
		NumSimulations: 5000,
		NetTvpi:        model.SimulationSummary{P50: 2.1, Mean: 2.3, Min: 0, Max: 9, P10: 0.5, P25: 1.2, P75: 3.0, P90: 4.5},
		GrossTvpi:      model.SimulationSummary{P50: 2.6},
		DpiNet:         model.SimulationSummary{P50: 1.1},
		IrrNet:         model.SimulationSummary{P50: 0.18},
		ProbReturnFund: 0.72,
		Prob2x:         0.51,
		Prob3x:         0.22,
	}
	out := FormatBatch(results)

	for _, want := range []string{"5,000 simulations", "Net TVPI:", "Gross TVPI:", "Net IRR:", "Net DPI:", "P(return fund): 72.0%", "P(>=2x): 51.0%", "P(>=3x): 22.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
}
