package stats

import (
	"fmt"
	"math"
)

// hoursTolerance is the allowed drift between stored hours and the value
// recomputed from seconds.
const hoursTolerance = 0.01

// ValidateAndCorrect checks a BasicStats record against its invariants.
// Every violation is both repaired in the returned copy and reported as a
// human-readable issue string; Valid is true only when no issues were found.
// The input record is not modified.
func ValidateAndCorrect(bs BasicStats) ValidationResult {
	result := ValidationResult{Corrected: clone(bs)}
	c := &result.Corrected

	if c.TotalTimeSeconds < 0 {
		result.Issues = append(result.Issues,
			fmt.Sprintf("total_time_seconds was negative (%.0f), clamped to 0", c.TotalTimeSeconds))
		c.TotalTimeSeconds = 0
	}

	expectedHours := Round2(c.TotalTimeSeconds / 3600)
	if math.Abs(c.TotalTimeHours-expectedHours) > hoursTolerance {
		result.Issues = append(result.Issues,
			fmt.Sprintf("total_time_hours %.2f did not match seconds/3600 (%.2f), recomputed", c.TotalTimeHours, expectedHours))
		c.TotalTimeHours = expectedHours
	}

	if c.TotalTokens < 0 {
		result.Issues = append(result.Issues,
			fmt.Sprintf("total_tokens was negative (%d), clamped to 0", c.TotalTokens))
		c.TotalTokens = 0
	}

	if c.TotalCostUSD < 0 {
		result.Issues = append(result.Issues,
			fmt.Sprintf("total_cost_usd was negative (%.4f), clamped to 0", c.TotalCostUSD))
		c.TotalCostUSD = 0
	}

	if c.FilesModifiedCount != len(c.FilesModified) {
		result.Issues = append(result.Issues,
			fmt.Sprintf("files_modified_count %d did not match list length %d, recomputed", c.FilesModifiedCount, len(c.FilesModified)))
		c.FilesModifiedCount = len(c.FilesModified)
	}

	if c.SessionCount < 1 {
		result.Issues = append(result.Issues,
			fmt.Sprintf("session_count was %d, raised to 1", c.SessionCount))
		c.SessionCount = 1
	}

	for tool, count := range c.ToolUsage {
		if count < 0 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("tool_usage[%s] was negative (%d), clamped to 0", tool, count))
			c.ToolUsage[tool] = 0
		}
	}

	result.Valid = len(result.Issues) == 0
	return result
}

// clone returns a deep copy so corrections never alias the caller's maps.
func clone(bs BasicStats) BasicStats {
	out := bs
	out.ToolUsage = make(map[string]int, len(bs.ToolUsage))
	for k, v := range bs.ToolUsage {
		out.ToolUsage[k] = v
	}
	out.ModelUsage = make(map[string]int64, len(bs.ModelUsage))
	for k, v := range bs.ModelUsage {
		out.ModelUsage[k] = v
	}
	out.FilesModified = append([]string(nil), bs.FilesModified...)
	return out
}
