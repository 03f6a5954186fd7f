// Package efficiency estimates code output from tool usage and scores
// overall productivity on a 0-10 scale.
package efficiency

import (
	"math"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/stats"
)

// Estimator converts tool invocation counts into an estimated number of
// changed lines of code. The per-tool weight table and the set of
// content-producing tools come from configuration, not from callers.
type Estimator struct {
	weights       map[string]float64
	unknownWeight float64
	editTools     map[string]bool
}

// NewEstimator builds an estimator from the configured weight table.
func NewEstimator(cfg *config.Config) *Estimator {
	e := &Estimator{
		weights:       cfg.ToolWeights,
		unknownWeight: config.DefaultUnknownToolWeight,
		editTools:     make(map[string]bool, len(cfg.EditTools)),
	}
	for _, t := range cfg.EditTools {
		e.editTools[t] = true
	}
	return e
}

// weight returns the lines-per-use weight for a tool, falling back to the
// mid-range default for tools not in the table.
func (e *Estimator) weight(tool string) float64 {
	if w, ok := e.weights[tool]; ok {
		return w
	}
	return e.unknownWeight
}

// EstimateLines returns a non-negative estimate of lines changed for the
// given tool usage. The raw weighted sum is adjusted by a correction factor
// in [0.5, 2.0] built from three signals: tool diversity, invocation
// frequency, and the share of content-producing tools.
func (e *Estimator) EstimateLines(toolUsage map[string]int) int64 {
	raw := e.RawEstimate(toolUsage)
	if raw <= 0 {
		return 0
	}
	return int64(math.Round(raw * e.CorrectionFactor(toolUsage)))
}

// RawEstimate returns the uncorrected weighted sum. It is monotonic
// non-decreasing in every tool's count.
func (e *Estimator) RawEstimate(toolUsage map[string]int) float64 {
	var raw float64
	for tool, count := range toolUsage {
		if count <= 0 {
			continue
		}
		raw += e.weight(tool) * float64(count)
	}
	return raw
}

// CorrectionFactor combines the three adjustment signals, clamped to
// [0.5, 2.0]. With no invocations the factor is 1.
func (e *Estimator) CorrectionFactor(toolUsage map[string]int) float64 {
	var distinct, total, edits int
	for tool, count := range toolUsage {
		if count <= 0 {
			continue
		}
		distinct++
		total += count
		if e.editTools[tool] {
			edits += count
		}
	}
	if total == 0 {
		return 1
	}

	// Breadth of tool use: +5% per distinct tool beyond the first, up to 1.3.
	diversity := 1 + 0.05*float64(distinct-1)
	if diversity > 1.3 {
		diversity = 1.3
	}

	// Very high-frequency bursts are likely repetitive; discount them.
	frequency := 1.0
	if total > 20 {
		frequency = 0.9
	}

	// Share of content-producing invocations.
	editRatio := 0.8 + 0.4*(float64(edits)/float64(total))

	return stats.Clamp(diversity*frequency*editRatio, 0.5, 2.0)
}
