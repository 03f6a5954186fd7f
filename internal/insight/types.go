// Package insight evaluates condition/action rules against analysis
// results to produce prioritized natural-language insights and
// recommendations.
package insight

import (
	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/stats"
	"github.com/blackwell-systems/usagelens/internal/trend"
)

// Priority levels, ordered high > medium > low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Rule categories. CategoryPrecedence fixes the order used to pick the
// primary category of a result.
const (
	CategoryProductivity = "productivity"
	CategoryEfficiency   = "efficiency"
	CategoryCost         = "cost"
	CategoryTrends       = "trends"
	CategoryTools        = "tools"
)

// CategoryPrecedence is the fixed order for choosing the primary category.
var CategoryPrecedence = []string{
	CategoryProductivity,
	CategoryEfficiency,
	CategoryCost,
	CategoryTrends,
	CategoryTools,
}

// Context is the read-only bundle threaded through rule evaluation and
// recommendation generation. Stats is always set; the remaining fields are
// optional depending on which analyses the caller ran.
type Context struct {
	Stats      stats.BasicStats
	Efficiency *efficiency.Metrics
	Trends     *trend.Analysis
	Cost       *efficiency.CostAnalysis
	Tools      []efficiency.ToolStat
}

// Rule is one condition/action pair. Rules are independent: no rule may
// depend on another rule's output within an evaluation pass.
type Rule struct {
	// ID uniquely identifies the rule in the registry.
	ID string

	// Category is one of the Category constants.
	Category string

	// Priority is one of the Priority constants.
	Priority string

	// When reports whether the rule fires for the given context.
	When func(ctx *Context) bool

	// Render produces the insight text once the rule fires.
	Render func(ctx *Context) string

	// Recommend optionally produces a recommendation alongside the
	// insight. Nil means the rule only observes.
	Recommend func(ctx *Context) string

	// Enabled rules participate in evaluation.
	Enabled bool
}

// SmartInsights is the ordered, bounded result of one evaluation pass.
type SmartInsights struct {
	// Insights holds the fired rules' texts, at most MaxInsights entries.
	Insights []string `json:"insights"`

	// Recommendations holds fired rules' suggestions, same bound.
	Recommendations []string `json:"recommendations"`

	// Priority is the highest priority observed among fired rules.
	Priority string `json:"priority"`

	// PrimaryCategory is the first precedence-order category among the
	// fired rules, defaulting to productivity.
	PrimaryCategory string `json:"primary_category"`
}

// priorityRank orders priorities for the highest-observed comparison.
func priorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
