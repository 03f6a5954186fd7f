package efficiency

import (
	"sort"

	"github.com/blackwell-systems/usagelens/internal/config"
)

// ToolStat captures usage and efficiency numbers for a single tool.
type ToolStat struct {
	// Tool is the tool name.
	Tool string `json:"tool"`

	// Count is the total invocation count for the period.
	Count int `json:"count"`

	// UsageRate is invocations per hour.
	UsageRate float64 `json:"usage_rate"`

	// EstimatedLines is the uncorrected per-tool line estimate.
	EstimatedLines float64 `json:"estimated_lines"`

	// Efficiency is the per-tool score, capped at 10.
	Efficiency float64 `json:"efficiency"`
}

// ToolAnalyzer scores individual tools by how productively they are used.
type ToolAnalyzer struct {
	estimator  *Estimator
	baseScores map[string]float64
}

// NewToolAnalyzer builds an analyzer from the configured base-score table.
func NewToolAnalyzer(estimator *Estimator, cfg *config.Config) *ToolAnalyzer {
	return &ToolAnalyzer{
		estimator:  estimator,
		baseScores: cfg.ToolBaseScores,
	}
}

// AnalyzeToolUsage computes per-tool usage rates, line estimates, and
// efficiency scores, sorted by usage count descending. With no recorded
// hours the usage rate stays zero rather than dividing by zero.
func (ta *ToolAnalyzer) AnalyzeToolUsage(toolUsage map[string]int, totalHours float64) []ToolStat {
	var out []ToolStat
	for tool, count := range toolUsage {
		if count <= 0 {
			continue
		}

		ts := ToolStat{
			Tool:           tool,
			Count:          count,
			EstimatedLines: ta.estimator.weight(tool) * float64(count),
		}
		if totalHours > 0 {
			ts.UsageRate = float64(count) / totalHours
		}
		ts.Efficiency = ta.toolEfficiency(tool, ts.EstimatedLines, ts.UsageRate)

		out = append(out, ts)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tool < out[j].Tool
	})

	return out
}

// toolEfficiency multiplies the tool's base score by a lines tier and a
// usage-rate tier, capped at 10. High line output raises the score, both
// very spammy and barely-used tools lower it.
func (ta *ToolAnalyzer) toolEfficiency(tool string, estLines, rate float64) float64 {
	base, ok := ta.baseScores[tool]
	if !ok {
		base = config.DefaultToolBaseScore
	}

	linesFactor := 0.8
	switch {
	case estLines > 100:
		linesFactor = 1.2
	case estLines > 10:
		linesFactor = 1.0
	}

	rateFactor := 1.0
	switch {
	case rate > 30:
		rateFactor = 0.8
	case rate < 5:
		rateFactor = 0.9
	}

	score := base * linesFactor * rateFactor
	if score > 10 {
		score = 10
	}
	return score
}
