// Package stats normalizes raw usage snapshots into canonical aggregate
// statistics and computes period-over-period deltas.
package stats

// BasicStats is the canonical aggregate of one analysis period. It is
// produced by the aggregation entry points and consumed read-only by every
// downstream stage.
type BasicStats struct {
	// SessionCount is the number of sessions covered, always >= 1 for any
	// non-empty aggregate.
	SessionCount int `json:"session_count"`

	// TotalTimeSeconds is the summed active time in seconds.
	TotalTimeSeconds float64 `json:"total_time_seconds"`

	// TotalTimeHours is TotalTimeSeconds/3600 rounded to 2 decimals.
	TotalTimeHours float64 `json:"total_time_hours"`

	// TotalTokens is the summed token count across all snapshots.
	TotalTokens int64 `json:"total_tokens"`

	// TotalCostUSD is the summed cost in US dollars, rounded to 4 decimals.
	TotalCostUSD float64 `json:"total_cost_usd"`

	// FilesModifiedCount equals len(FilesModified) for valid stats.
	FilesModifiedCount int `json:"files_modified_count"`

	// FilesModified is the union of modified file paths.
	FilesModified []string `json:"files_modified,omitempty"`

	// ToolUsage maps tool name to non-negative invocation count.
	ToolUsage map[string]int `json:"tool_usage,omitempty"`

	// ModelUsage maps model id to token count.
	ModelUsage map[string]int64 `json:"model_usage,omitempty"`
}

// Zero returns the canonical empty BasicStats. It is also the safe fallback
// for malformed input: aggregation never fails, it degrades to this.
func Zero() BasicStats {
	return BasicStats{
		ToolUsage:  map[string]int{},
		ModelUsage: map[string]int64{},
	}
}

// ValidationResult reports the outcome of ValidateAndCorrect.
type ValidationResult struct {
	// Valid is true only when no corrections were needed.
	Valid bool `json:"valid"`

	// Corrected is the repaired stats record, safe to use downstream.
	Corrected BasicStats `json:"corrected"`

	// Issues describes each violation that was corrected.
	Issues []string `json:"issues,omitempty"`
}

// Comparison holds percentage deltas between two BasicStats records.
// Each field uses the PercentChange convention: +100 when rising from
// zero, 0 when both sides are zero.
type Comparison struct {
	TimeChange       float64 `json:"time_change"`
	TokenChange      float64 `json:"token_change"`
	CostChange       float64 `json:"cost_change"`
	FilesChange      float64 `json:"files_change"`
	SessionChange    float64 `json:"session_change"`
	EfficiencyChange float64 `json:"efficiency_change"`
}
