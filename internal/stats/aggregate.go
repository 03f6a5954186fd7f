package stats

import (
	"github.com/blackwell-systems/usagelens/internal/usage"
)

// FromSnapshot normalizes a single raw snapshot into BasicStats. All numeric
// inputs are clamped to >= 0 before use; a nil snapshot degrades to Zero().
func FromSnapshot(s *usage.Snapshot) BasicStats {
	if s == nil {
		return Zero()
	}

	bs := Zero()

	bs.SessionCount = s.SessionCount
	if bs.SessionCount < 1 {
		bs.SessionCount = 1
	}

	seconds := ClampNonNeg(s.DurationMinutes) * 60
	bs.TotalTimeSeconds = seconds
	bs.TotalTimeHours = Round2(seconds / 3600)

	bs.TotalTokens = ClampNonNegInt(snapshotTokens(s))
	bs.TotalCostUSD = Round4(ClampNonNeg(snapshotCost(s)))

	for tool, count := range s.ToolCounts {
		if count < 0 {
			count = 0
		}
		bs.ToolUsage[tool] = count
	}
	for model, tokens := range s.ModelTokens {
		bs.ModelUsage[model] = ClampNonNegInt(tokens)
	}

	bs.FilesModified = append(bs.FilesModified, s.FilesModified...)
	bs.FilesModifiedCount = len(bs.FilesModified)

	return bs
}

// FromSnapshots aggregates a list of raw snapshots into one BasicStats.
// Nil entries are filtered out first. The session count is the number of
// distinct (timestamp, project) pairs — an approximate identity, two real
// sessions sharing both values are counted once.
func FromSnapshots(snaps []*usage.Snapshot) BasicStats {
	bs := Zero()

	var valid []*usage.Snapshot
	for _, s := range snaps {
		if s == nil {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return bs
	}

	seen := make(map[[2]string]bool, len(valid))
	fileSet := make(map[string]bool)
	var seconds float64

	for _, s := range valid {
		key := [2]string{s.Timestamp, s.Project}
		if !seen[key] {
			seen[key] = true
			bs.SessionCount++
		}

		seconds += ClampNonNeg(s.DurationMinutes) * 60
		bs.TotalTokens += ClampNonNegInt(snapshotTokens(s))
		bs.TotalCostUSD += ClampNonNeg(snapshotCost(s))

		for tool, count := range s.ToolCounts {
			if count < 0 {
				continue
			}
			bs.ToolUsage[tool] += count
		}
		for model, tokens := range s.ModelTokens {
			bs.ModelUsage[model] += ClampNonNegInt(tokens)
		}
		for _, f := range s.FilesModified {
			if !fileSet[f] {
				fileSet[f] = true
				bs.FilesModified = append(bs.FilesModified, f)
			}
		}
	}

	if bs.SessionCount < 1 {
		bs.SessionCount = 1
	}
	bs.TotalTimeSeconds = seconds
	bs.TotalTimeHours = Round2(seconds / 3600)
	bs.TotalCostUSD = Round4(bs.TotalCostUSD)
	bs.FilesModifiedCount = len(bs.FilesModified)

	return bs
}

// Merge combines multiple BasicStats into one. Numeric fields are summed,
// file lists are unioned, tool and model usage maps are added key-wise.
// Hours are recomputed from the summed seconds rather than added directly,
// so per-record rounding does not compound. Merge of an empty list returns
// Zero(); merge of a single record returns it unchanged.
func Merge(records []BasicStats) BasicStats {
	out := Zero()
	if len(records) == 0 {
		return out
	}

	fileSet := make(map[string]bool)
	for _, r := range records {
		out.SessionCount += r.SessionCount
		out.TotalTimeSeconds += r.TotalTimeSeconds
		out.TotalTokens += r.TotalTokens
		out.TotalCostUSD += r.TotalCostUSD

		for tool, count := range r.ToolUsage {
			out.ToolUsage[tool] += count
		}
		for model, tokens := range r.ModelUsage {
			out.ModelUsage[model] += tokens
		}
		for _, f := range r.FilesModified {
			if !fileSet[f] {
				fileSet[f] = true
				out.FilesModified = append(out.FilesModified, f)
			}
		}
	}

	out.TotalTimeHours = Round2(out.TotalTimeSeconds / 3600)
	out.TotalCostUSD = Round4(out.TotalCostUSD)
	out.FilesModifiedCount = len(out.FilesModified)

	return out
}

// snapshotTokens returns the snapshot's total token count, deriving it from
// input + output when the total field is unset.
func snapshotTokens(s *usage.Snapshot) int64 {
	if s.TotalTokens != 0 {
		return s.TotalTokens
	}
	return s.InputTokens + s.OutputTokens
}

// snapshotCost returns the snapshot's total cost, deriving it from
// input + output when the total field is unset.
func snapshotCost(s *usage.Snapshot) float64 {
	if s.TotalCostUSD != 0 {
		return s.TotalCostUSD
	}
	return s.InputCostUSD + s.OutputCostUSD
}
