// Package report renders a completed Monte Carlo batch into a human
// readable summary, in the accretive strings.Builder style the source
// project uses for its chat reports.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"PMFSimulator/internal/model"
)

// FormatBatch renders a batch's headline metrics into a plain-text report.
func FormatBatch(results *model.MonteCarloResults) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Monte Carlo batch | %s | %s simulations\n\n",
		time.Now().Format("2006-01-02"), humanize.Comma(int64(results.NumSimulations))))

	b.WriteString(fmt.Sprintf("Fund size: %s | life: %dy | carry: %.0f%%\n\n",
		humanize.Comma(int64(results.Params.FundSize)), results.Params.FundLife, results.Params.Carry*100))

	b.WriteString("Net TVPI:\n")
	writeSummary(&b, results.NetTvpi)

	b.WriteString("\nGross TVPI:\n")
	writeSummary(&b, results.GrossTvpi)

	b.WriteString("\nNet IRR:\n")
	writeSummary(&b, results.IrrNet)

	b.WriteString("\nNet DPI:\n")
	writeSummary(&b, results.DpiNet)

	b.WriteString(fmt.Sprintf("\nP(return fund): %.1f%%\n", results.ProbReturnFund*100))
	b.WriteString(fmt.Sprintf("P(>=2x): %.1f%%\n", results.Prob2x*100))
	b.WriteString(fmt.Sprintf("P(>=3x): %.1f%%\n", results.Prob3x*100))

	return b.String()
}

func writeSummary(b *strings.Builder, s model.SimulationSummary) {
	b.WriteString(fmt.Sprintf("  p10: %.2f | p25: %.2f | p50: %.2f | p75: %.2f | p90: %.2f\n",
		s.P10, s.P25, s.P50, s.P75, s.P90))
	b.WriteString(fmt.Sprintf("  mean: %.2f | min: %.2f | max: %.2f\n", s.Mean, s.Min, s.Max))
}
