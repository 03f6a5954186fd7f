// Package config provides configuration loading and defaults for usagelens.
package config

// DefaultDataPath is the default location of the usage export consumed by
// the analytics pipeline.
const DefaultDataPath = "~/.config/usagelens/usage.json"

// DefaultClaudeHome is the default location of Claude Code's data directory,
// used only as the enhanced-source availability probe.
const DefaultClaudeHome = "~/.claude"

// DefaultConfigDir is the default location for usagelens configuration.
const DefaultConfigDir = "~/.config/usagelens"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "usagelens.db"

// DefaultHistoryLimit is how many stored reports to keep per project.
const DefaultHistoryLimit = 90

// DefaultToolWeights maps tool names to estimated lines of code changed
// per invocation. Editing tools weigh high, read/search/list tools weigh
// zero. Tools not listed here fall back to DefaultUnknownToolWeight.
var DefaultToolWeights = map[string]float64{
	"Edit":         15,
	"MultiEdit":    35,
	"Write":        40,
	"NotebookEdit": 20,
	"Bash":         2,
	"Task":         5,
	"TodoWrite":    1,
	"Read":         0,
	"Grep":         0,
	"Glob":         0,
	"LS":           0,
	"WebSearch":    0,
	"WebFetch":     0,
}

// DefaultUnknownToolWeight is the mid-range weight applied to tools that
// have no entry in the weight table.
const DefaultUnknownToolWeight = 5

// DefaultEditTools are the content-producing tools counted toward the
// edit-ratio correction factor.
var DefaultEditTools = []string{"Edit", "MultiEdit", "Write", "NotebookEdit"}

// DefaultToolBaseScores maps tool names to the base efficiency score used
// by per-tool analysis. Tools not listed fall back to DefaultToolBaseScore.
var DefaultToolBaseScores = map[string]float64{
	"Edit":      8,
	"MultiEdit": 8,
	"Write":     7,
	"Bash":      7,
	"Task":      7,
	"Read":      6,
	"Grep":      6,
	"Glob":      5,
}

// DefaultToolBaseScore is the fallback base efficiency score.
const DefaultToolBaseScore = 5

// DefaultThresholds holds the default cost-analysis thresholds.
var DefaultThresholds = Thresholds{
	CostPerHour:     15.0,
	CostPerLine:     0.10,
	ReadToEditRatio: 2.0,
	SessionCount:    10,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
