// Package usage provides the raw usage snapshot type and the local data
// provider that parses usage exports into snapshots.
package usage

import "time"

// Snapshot is one raw measurement of development activity produced by an
// external data provider. It is immutable once created; the analytics
// pipeline only reads it.
//
// Timestamps are strings rather than time.Time because providers disagree
// on precision; Time() normalizes on read.
type Snapshot struct {
	// Timestamp is the measurement time in RFC 3339 or date-only form.
	// Together with Project it forms the approximate session identity
	// used for de-duplication during aggregation.
	Timestamp string `json:"timestamp"`

	// Project is the project identifier the measurement belongs to.
	Project string `json:"project,omitempty"`

	// SessionCount is the number of sessions covered by this snapshot.
	// Zero means unknown; aggregation treats it as one.
	SessionCount int `json:"session_count,omitempty"`

	// InputTokens is the prompt-side token count.
	InputTokens int64 `json:"input_tokens"`

	// OutputTokens is the completion-side token count.
	OutputTokens int64 `json:"output_tokens"`

	// TotalTokens is the combined token count. Zero means derive from
	// input + output.
	TotalTokens int64 `json:"total_tokens"`

	// InputCostUSD is the prompt-side cost in US dollars.
	InputCostUSD float64 `json:"input_cost_usd"`

	// OutputCostUSD is the completion-side cost in US dollars.
	OutputCostUSD float64 `json:"output_cost_usd"`

	// TotalCostUSD is the combined cost. Zero means derive from
	// input + output.
	TotalCostUSD float64 `json:"total_cost_usd"`

	// DurationMinutes is the active session time covered by this snapshot.
	DurationMinutes float64 `json:"duration_minutes"`

	// MessageCount is the number of conversation messages.
	MessageCount int `json:"message_count"`

	// ToolCounts maps tool name to invocation count.
	ToolCounts map[string]int `json:"tool_counts,omitempty"`

	// FilesModified lists the files touched, when the provider knows them.
	FilesModified []string `json:"files_modified,omitempty"`

	// ModelTokens maps model id to token count for that model.
	ModelTokens map[string]int64 `json:"model_tokens,omitempty"`

	// Source tags which data provider produced this snapshot.
	Source string `json:"source,omitempty"`
}

// Time parses the snapshot timestamp, accepting RFC 3339 or date-only
// form. The second return is false when the timestamp is missing or
// unparseable.
func (s *Snapshot) Time() (time.Time, bool) {
	if s == nil || s.Timestamp == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s.Timestamp); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s.Timestamp); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Availability reports which data sources are reachable on this machine.
type Availability struct {
	// Primary is true when the usage export file exists and is readable.
	Primary bool `json:"primary"`

	// Enhanced is true when the Claude Code data directory exists, which
	// enables richer per-session fields in exports.
	Enhanced bool `json:"enhanced"`
}
