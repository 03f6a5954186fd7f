package efficiency

import (
	"fmt"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/stats"
)

// CostAnalysis breaks a period's spend down by time and output and lists
// optimization hints triggered by the configured thresholds.
type CostAnalysis struct {
	// TotalCostUSD is the period's total spend.
	TotalCostUSD float64 `json:"total_cost_usd"`

	// CostPerHour is spend divided by recorded hours.
	CostPerHour float64 `json:"cost_per_hour"`

	// CostPerLine is spend divided by estimated lines, 0 when nothing was
	// estimated.
	CostPerLine float64 `json:"cost_per_line"`

	// InputCostUSD assumes the fixed 30% input share of total cost.
	InputCostUSD float64 `json:"input_cost_usd"`

	// OutputCostUSD assumes the fixed 70% output share of total cost.
	OutputCostUSD float64 `json:"output_cost_usd"`

	// Suggestions lists threshold-triggered optimization hints.
	Suggestions []string `json:"suggestions,omitempty"`
}

// inputCostShare is the assumed input fraction of total cost when the
// provider gives no split.
const inputCostShare = 0.3

// CostAnalyzer derives cost breakdowns from canonical stats.
type CostAnalyzer struct {
	estimator  *Estimator
	thresholds config.Thresholds
}

// NewCostAnalyzer builds a cost analyzer with the configured thresholds.
func NewCostAnalyzer(estimator *Estimator, cfg *config.Config) *CostAnalyzer {
	return &CostAnalyzer{estimator: estimator, thresholds: cfg.Thresholds}
}

// Analyze computes the cost breakdown and optimization hints for a period.
func (ca *CostAnalyzer) Analyze(bs stats.BasicStats) CostAnalysis {
	lines := ca.estimator.EstimateLines(bs.ToolUsage)

	a := CostAnalysis{
		TotalCostUSD:  bs.TotalCostUSD,
		CostPerHour:   stats.SafeDiv(bs.TotalCostUSD, bs.TotalTimeHours),
		CostPerLine:   stats.SafeDiv(bs.TotalCostUSD, float64(lines)),
		InputCostUSD:  stats.Round4(bs.TotalCostUSD * inputCostShare),
		OutputCostUSD: stats.Round4(bs.TotalCostUSD * (1 - inputCostShare)),
	}

	if a.CostPerHour > ca.thresholds.CostPerHour {
		a.Suggestions = append(a.Suggestions, fmt.Sprintf(
			"Cost is running at $%.2f/hour (threshold $%.0f). Consider a smaller model for exploratory work.",
			a.CostPerHour, ca.thresholds.CostPerHour))
	}

	if lines > 0 && a.CostPerLine > ca.thresholds.CostPerLine {
		a.Suggestions = append(a.Suggestions, fmt.Sprintf(
			"Each estimated line of code costs $%.2f. Tighter prompts or smaller diffs could reduce spend.",
			a.CostPerLine))
	}

	reads := bs.ToolUsage["Read"] + bs.ToolUsage["Grep"] + bs.ToolUsage["Glob"]
	edits := bs.ToolUsage["Edit"] + bs.ToolUsage["MultiEdit"] + bs.ToolUsage["Write"]
	if edits > 0 && float64(reads)/float64(edits) > ca.thresholds.ReadToEditRatio {
		a.Suggestions = append(a.Suggestions,
			"Read-heavy tool usage relative to edits. Adding project context up front can cut exploration cost.")
	}

	if bs.SessionCount > ca.thresholds.SessionCount {
		a.Suggestions = append(a.Suggestions, fmt.Sprintf(
			"%d sessions in this period. Batching related tasks into fewer sessions reduces repeated context cost.",
			bs.SessionCount))
	}

	return a
}
