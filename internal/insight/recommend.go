package insight

import (
	"fmt"

	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/stats"
	"github.com/blackwell-systems/usagelens/internal/trend"
)

// MaxRecommendations bounds the recommender's suggestion list.
const MaxRecommendations = 6

// Recommendations is the recommender's output: an overall priority and a
// de-duplicated, length-capped list of suggestions.
type Recommendations struct {
	Priority    string   `json:"priority"`
	Suggestions []string `json:"suggestions"`
}

// Recommender derives action suggestions directly from analysis results,
// independent of the rule registry. It is stateless and safe for
// concurrent use.
type Recommender struct{}

// NewRecommender creates a recommender.
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend assembles suggestions from four independent sub-generators
// (efficiency, tool usage, trends, cost), de-duplicates them in order, and
// caps the list at MaxRecommendations.
func (r *Recommender) Recommend(bs stats.BasicStats, eff *efficiency.Metrics, trends *trend.Analysis) Recommendations {
	out := Recommendations{Priority: r.priority(eff, trends)}

	var all []string
	all = append(all, efficiencySuggestions(eff)...)
	all = append(all, toolSuggestions(bs)...)
	all = append(all, trendSuggestions(trends)...)
	all = append(all, costSuggestions(bs, eff)...)

	seen := make(map[string]bool, len(all))
	for _, s := range all {
		if seen[s] {
			continue
		}
		seen[s] = true
		out.Suggestions = append(out.Suggestions, s)
		if len(out.Suggestions) >= MaxRecommendations {
			break
		}
	}

	return out
}

// priority derives the overall urgency from the productivity score and the
// productivity trend.
func (r *Recommender) priority(eff *efficiency.Metrics, trends *trend.Analysis) string {
	score := -1.0
	if eff != nil && eff.Rating != efficiency.RatingNoData {
		score = eff.ProductivityScore
	}
	rate := 0.0
	if trends != nil {
		rate = trends.Productivity.ChangeRate
	}

	switch {
	case (score >= 0 && score < 4) || rate < -15:
		return PriorityHigh
	case (score >= 0 && score < 6) || rate > 10 || rate < -10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func efficiencySuggestions(eff *efficiency.Metrics) []string {
	if eff == nil || eff.Rating == efficiency.RatingNoData {
		return nil
	}

	var out []string
	if eff.ProductivityScore < 4 {
		out = append(out, "Break work into smaller, edit-focused sessions to lift the productivity score.")
	}
	if eff.TokensPerHour > 5000 {
		out = append(out, "Reduce token burn by scoping each session to a single task.")
	}
	if eff.LinesPerHour < 20 && eff.TokensPerHour > 1000 {
		out = append(out, "Plenty of conversation but little code output; ask for concrete diffs earlier.")
	}
	return out
}

func toolSuggestions(bs stats.BasicStats) []string {
	var out []string

	distinct, total := 0, 0
	for _, c := range bs.ToolUsage {
		if c > 0 {
			distinct++
			total += c
		}
	}
	if total > 10 && distinct < 3 {
		out = append(out, "Try a wider tool mix (search, tasks, notebooks) to shorten sessions.")
	}

	reads := bs.ToolUsage["Read"] + bs.ToolUsage["Grep"] + bs.ToolUsage["Glob"]
	edits := bs.ToolUsage["Edit"] + bs.ToolUsage["MultiEdit"] + bs.ToolUsage["Write"]
	if edits > 0 && float64(reads)/float64(edits) > 2 {
		out = append(out, "Add project context to CLAUDE.md to cut read-heavy exploration before edits.")
	}

	return out
}

func trendSuggestions(trends *trend.Analysis) []string {
	if trends == nil {
		return nil
	}

	var out []string
	if trends.Productivity.Direction == trend.DirectionDown && trends.Productivity.Strength != trend.StrengthWeak {
		out = append(out, fmt.Sprintf(
			"Productivity fell %.0f%% over this timeframe; review what changed on the weakest days.",
			-trends.Productivity.ChangeRate))
	}
	if trends.Seasonality != nil && trends.Seasonality.HasPattern {
		out = append(out, fmt.Sprintf(
			"Schedule demanding work on %ss, your strongest day of the week.",
			trends.Seasonality.BestWeekday))
	}
	if anomalies := trends.Anomalies[trend.SeriesTokens]; anomalies > 0 {
		out = append(out, fmt.Sprintf(
			"%d token-usage outlier day(s) detected; check those days for runaway sessions.",
			anomalies))
	}
	return out
}

func costSuggestions(bs stats.BasicStats, eff *efficiency.Metrics) []string {
	var out []string
	if eff != nil && eff.CostPerHour > 15 {
		out = append(out, "Use a cheaper model for exploratory work to bring the hourly spend down.")
	}
	if bs.SessionCount > 10 && bs.TotalCostUSD > 10 {
		out = append(out, "Batch related tasks into fewer sessions to avoid repeated context cost.")
	}
	return out
}
