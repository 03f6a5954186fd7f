package insight

import (
	"fmt"

	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/trend"
)

// DefaultRules returns the built-in rule set, all enabled. The set spans
// productivity, token efficiency, cost, tool diversity, session pacing,
// trend direction, and file-activity signals.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "productivity-low",
			Category: CategoryProductivity,
			Priority: PriorityHigh,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Efficiency != nil && ctx.Efficiency.Rating != efficiency.RatingNoData &&
					ctx.Efficiency.ProductivityScore < 4
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Productivity score is %.1f/10 (%s) for this period.",
					ctx.Efficiency.ProductivityScore, ctx.Efficiency.Rating)
			},
			Recommend: func(ctx *Context) string {
				return "Focus sessions on edit-heavy work: the score weights code output highest."
			},
		},
		{
			ID:       "productivity-exceptional",
			Category: CategoryProductivity,
			Priority: PriorityLow,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Efficiency != nil && ctx.Efficiency.ProductivityScore >= 8.5
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Exceptional period: productivity score %.1f/10.",
					ctx.Efficiency.ProductivityScore)
			},
		},
		{
			ID:       "no-recorded-time",
			Category: CategoryProductivity,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Stats.TotalTokens > 0 && ctx.Stats.TotalTimeHours <= 0
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("%d tokens recorded but no session time; throughput metrics are unavailable.",
					ctx.Stats.TotalTokens)
			},
			Recommend: func(ctx *Context) string {
				return "Use an export source that includes session durations to unlock efficiency scoring."
			},
		},
		{
			ID:       "no-files-modified",
			Category: CategoryProductivity,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Stats.TotalTokens > 10000 && ctx.Stats.FilesModifiedCount == 0
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("%d tokens spent without any tracked file modifications.",
					ctx.Stats.TotalTokens)
			},
			Recommend: func(ctx *Context) string {
				return "Heavy discussion with no file changes often means tasks are too exploratory; try asking for concrete edits sooner."
			},
		},
		{
			ID:       "token-burn-high",
			Category: CategoryEfficiency,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Efficiency != nil && ctx.Efficiency.TokensPerHour > 5000
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Token burn is high at %.0f tokens/hour.",
					ctx.Efficiency.TokensPerHour)
			},
			Recommend: func(ctx *Context) string {
				return "Long context re-reads drive token burn; keep sessions scoped to one task."
			},
		},
		{
			ID:       "token-throughput-low",
			Category: CategoryEfficiency,
			Priority: PriorityLow,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Efficiency != nil && ctx.Efficiency.Rating != efficiency.RatingNoData &&
					ctx.Efficiency.TokensPerHour > 0 && ctx.Efficiency.TokensPerHour < 300
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Throughput is low at %.0f tokens/hour; sessions may be mostly idle.",
					ctx.Efficiency.TokensPerHour)
			},
		},
		{
			ID:       "session-length-high",
			Category: CategoryEfficiency,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Stats.SessionCount > 0 &&
					ctx.Stats.TotalTimeHours/float64(ctx.Stats.SessionCount) > 3
			},
			Render: func(ctx *Context) string {
				avg := ctx.Stats.TotalTimeHours / float64(ctx.Stats.SessionCount)
				return fmt.Sprintf("Sessions average %.1f hours each.", avg)
			},
			Recommend: func(ctx *Context) string {
				return "Sessions beyond two hours accumulate stale context; restart between tasks."
			},
		},
		{
			ID:       "session-fragmentation",
			Category: CategoryEfficiency,
			Priority: PriorityLow,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Stats.SessionCount > 10 &&
					ctx.Stats.TotalTimeHours/float64(ctx.Stats.SessionCount) < 0.25
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("%d sessions averaging under 15 minutes each.",
					ctx.Stats.SessionCount)
			},
		},
		{
			ID:       "cost-rate-high",
			Category: CategoryCost,
			Priority: PriorityHigh,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Efficiency != nil && ctx.Efficiency.CostPerHour > 15
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Spend is running at $%.2f/hour.", ctx.Efficiency.CostPerHour)
			},
			Recommend: func(ctx *Context) string {
				return "Route exploratory questions to a cheaper model and reserve the large model for edits."
			},
		},
		{
			ID:       "cost-per-line-high",
			Category: CategoryCost,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Cost != nil && ctx.Cost.CostPerLine > 0.1
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Each estimated line of code cost $%.2f this period.",
					ctx.Cost.CostPerLine)
			},
			Recommend: func(ctx *Context) string {
				return "High cost per line usually means lots of discussion per change; tighten task descriptions."
			},
		},
		{
			ID:       "cost-efficient",
			Category: CategoryCost,
			Priority: PriorityLow,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Cost != nil && ctx.Cost.CostPerLine > 0 && ctx.Cost.CostPerLine < 0.01
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Cost efficiency is strong: under a cent per estimated line ($%.4f).",
					ctx.Cost.CostPerLine)
			},
		},
		{
			ID:       "productivity-declining",
			Category: CategoryTrends,
			Priority: PriorityHigh,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Trends != nil && ctx.Trends.Productivity.Direction == trend.DirectionDown &&
					ctx.Trends.Productivity.Strength != trend.StrengthWeak
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Productivity is trending down %.0f%% over this timeframe (%s signal).",
					-ctx.Trends.Productivity.ChangeRate, ctx.Trends.Productivity.Strength)
			},
			Recommend: func(ctx *Context) string {
				return "Review the weakest recent days in the daily breakdown for what changed."
			},
		},
		{
			ID:       "productivity-improving",
			Category: CategoryTrends,
			Priority: PriorityLow,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Trends != nil && ctx.Trends.Productivity.Direction == trend.DirectionUp
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Productivity is trending up %.0f%% over this timeframe.",
					ctx.Trends.Productivity.ChangeRate)
			},
		},
		{
			ID:       "tokens-outpacing-productivity",
			Category: CategoryTrends,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				return ctx.Trends != nil && ctx.Trends.Tokens.Direction == trend.DirectionUp &&
					ctx.Trends.Productivity.Direction != trend.DirectionUp
			},
			Render: func(ctx *Context) string {
				return fmt.Sprintf("Token usage is up %.0f%% while productivity is %s.",
					ctx.Trends.Tokens.ChangeRate, ctx.Trends.Productivity.Direction)
			},
			Recommend: func(ctx *Context) string {
				return "Rising spend without rising output suggests context bloat; prune long-running conversations."
			},
		},
		{
			ID:       "tool-diversity-low",
			Category: CategoryTools,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				distinct, total := 0, 0
				for _, c := range ctx.Stats.ToolUsage {
					if c > 0 {
						distinct++
						total += c
					}
				}
				return total > 10 && distinct < 3
			},
			Render: func(ctx *Context) string {
				return "Tool usage is concentrated in fewer than three tools."
			},
			Recommend: func(ctx *Context) string {
				return "Broader tool use (search, tasks, notebooks) usually correlates with faster sessions."
			},
		},
		{
			ID:       "read-heavy-workflow",
			Category: CategoryTools,
			Priority: PriorityMedium,
			Enabled:  true,
			When: func(ctx *Context) bool {
				reads := ctx.Stats.ToolUsage["Read"] + ctx.Stats.ToolUsage["Grep"] + ctx.Stats.ToolUsage["Glob"]
				edits := ctx.Stats.ToolUsage["Edit"] + ctx.Stats.ToolUsage["MultiEdit"] + ctx.Stats.ToolUsage["Write"]
				return edits > 0 && float64(reads)/float64(edits) > 2
			},
			Render: func(ctx *Context) string {
				reads := ctx.Stats.ToolUsage["Read"] + ctx.Stats.ToolUsage["Grep"] + ctx.Stats.ToolUsage["Glob"]
				edits := ctx.Stats.ToolUsage["Edit"] + ctx.Stats.ToolUsage["MultiEdit"] + ctx.Stats.ToolUsage["Write"]
				return fmt.Sprintf("Read-to-edit ratio is %.1f:1 (%d reads, %d edits).",
					float64(reads)/float64(edits), reads, edits)
			},
			Recommend: func(ctx *Context) string {
				return "Heavy reading before edits points at missing project context; a richer CLAUDE.md cuts exploration."
			},
		},
	}
}
