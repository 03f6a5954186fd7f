package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/insight"
	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/report"
	"github.com/blackwell-systems/usagelens/internal/stats"
	"github.com/blackwell-systems/usagelens/internal/store"
	"github.com/blackwell-systems/usagelens/internal/trend"
	"github.com/blackwell-systems/usagelens/internal/usage"
)

var (
	reportTimeframe string
	reportProject   string
	reportTypes     []string
	reportFrom      string
	reportTo        string
	reportNoSave    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full usage analysis report",
	Long: `Aggregate usage snapshots for the requested timeframe and run the
analysis pipeline: basic statistics, efficiency scoring, trend detection,
and insight generation.

Each generated report's headline numbers are stored in the local history
database so 'compare' and 'history' can reference past periods.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportTimeframe, "timeframe", "week", "Analysis window: today, week, month, custom")
	reportCmd.Flags().StringVar(&reportProject, "project", "", "Filter to a specific project")
	reportCmd.Flags().StringSliceVar(&reportTypes, "types", nil, "Analyses to run: basic, efficiency, trends, insights (default all)")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Custom window start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Custom window end (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&reportNoSave, "no-save", false, "Skip writing this report to history")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, snaps, err := loadData()
	if err != nil {
		return err
	}

	req, err := buildRequest(reportTimeframe, reportProject, reportTypes, reportFrom, reportTo)
	if err != nil {
		return err
	}

	snaps = filterProject(snaps, req.Project)
	windowed := filterWindow(snaps, req)

	orch := newOrchestrator(cfg)
	result := orch.Generate(req, windowed)

	if !reportNoSave {
		if err := saveReport(cfg, req, result); err != nil && flagVerbose {
			fmt.Fprintln(os.Stderr, "saving report history:", err)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderResult(result, usage.CheckDataSources(cfg.DataPath, cfg.ClaudeHome))
	return nil
}

// buildRequest validates flags into an AnalysisRequest.
func buildRequest(timeframe, project string, types []string, from, to string) (report.AnalysisRequest, error) {
	req := report.AnalysisRequest{
		Project:   project,
		Timeframe: report.Timeframe(timeframe),
	}

	switch req.Timeframe {
	case report.TimeframeToday, report.TimeframeWeek, report.TimeframeMonth:
	case report.TimeframeCustom:
		f, err := time.Parse("2006-01-02", from)
		if err != nil {
			return req, fmt.Errorf("custom timeframe needs --from YYYY-MM-DD: %w", err)
		}
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return req, fmt.Errorf("custom timeframe needs --to YYYY-MM-DD: %w", err)
		}
		if t.Before(f) {
			return req, fmt.Errorf("--to %s is before --from %s", to, from)
		}
		req.From, req.To = f, t.Add(24*time.Hour-time.Second)
	default:
		return req, fmt.Errorf("unknown timeframe %q (want today, week, month, or custom)", timeframe)
	}

	for _, t := range types {
		switch at := report.AnalysisType(strings.ToLower(t)); at {
		case report.AnalysisBasic, report.AnalysisEfficiency, report.AnalysisTrends, report.AnalysisInsights:
			req.Types = append(req.Types, at)
		default:
			return req, fmt.Errorf("unknown analysis type %q", t)
		}
	}

	return req, nil
}

// filterProject keeps snapshots matching the given project, or all when
// the filter is empty.
func filterProject(snaps []*usage.Snapshot, project string) []*usage.Snapshot {
	if project == "" {
		return snaps
	}
	var out []*usage.Snapshot
	for _, s := range snaps {
		if s != nil && s.Project == project {
			out = append(out, s)
		}
	}
	return out
}

// saveReport stores the report's headline numbers in the history database.
func saveReport(cfg *config.Config, req report.AnalysisRequest, result report.AnalysisResult) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	row := &store.ReportRow{
		GeneratedAt: result.GeneratedAt,
		Project:     req.Project,
		Timeframe:   string(req.Timeframe),
	}
	if result.Stats != nil {
		row.SessionCount = result.Stats.SessionCount
		row.TotalTokens = result.Stats.TotalTokens
		row.TotalCostUSD = result.Stats.TotalCostUSD
		row.TotalHours = result.Stats.TotalTimeHours
	}
	if result.Efficiency != nil {
		row.ProductivityScore = result.Efficiency.ProductivityScore
		row.Rating = result.Efficiency.Rating
	}
	if result.Trends != nil {
		row.TrendRate = result.Trends.Productivity.ChangeRate
		row.Confidence = result.Trends.OverallConfidence
	}

	var insights, recs []string
	if result.Insights != nil {
		insights = result.Insights.Insights
		recs = result.Insights.Recommendations
	}

	if _, err := db.SaveReport(row, insights, recs); err != nil {
		return err
	}
	return db.Prune(cfg.HistoryLimit)
}

// renderResult writes the styled report to stdout.
func renderResult(result report.AnalysisResult, avail usage.Availability) {
	fmt.Println(output.Section(fmt.Sprintf("Usage Report (%s)", result.TimeframeLabel)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Generated"),
		output.StyleMuted.Render(result.GeneratedAt.Format("2006-01-02 15:04")))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Data source"),
		output.StyleMuted.Render(fmt.Sprintf("%s (primary: %v, enhanced: %v)",
			result.DataSource, avail.Primary, avail.Enhanced)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Data quality"),
		output.StyleMuted.Render(fmt.Sprintf("completeness %.0f%%  reliability %.0f%%  freshness %.0f%%",
			result.Quality.Completeness*100, result.Quality.Reliability*100, result.Quality.Freshness*100)))

	if result.Stats != nil {
		renderBasicStats(*result.Stats)
	}
	if result.Efficiency != nil {
		renderEfficiency(*result.Efficiency)
	}
	if result.Trends != nil {
		renderTrends(*result.Trends)
	}
	if result.Insights != nil {
		renderInsights(*result.Insights)
	}
	if result.Recommendations != nil {
		renderRecommendations(result.Recommendations.Priority, result.Recommendations.Suggestions)
	}
	fmt.Println()
}

func renderBasicStats(bs stats.BasicStats) {
	fmt.Println(output.Section("Activity"))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", bs.SessionCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Active time"),
		output.StyleValue.Render(fmt.Sprintf("%.1f h", bs.TotalTimeHours)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Tokens"),
		output.StyleValue.Render(formatTokenCount(bs.TotalTokens)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Cost"),
		output.StyleValue.Render(fmt.Sprintf("$%.2f", bs.TotalCostUSD)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Files modified"),
		output.StyleValue.Render(fmt.Sprintf("%d", bs.FilesModifiedCount)))

	if len(bs.ToolUsage) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Tool call distribution:"))
		sorted := sortMapByValue(bs.ToolUsage)
		limit := 8
		if len(sorted) < limit {
			limit = len(sorted)
		}
		for _, kv := range sorted[:limit] {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(kv.key),
				output.StyleValue.Render(fmt.Sprintf("%d", kv.value)))
		}
	}

	if len(bs.ModelUsage) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Tokens by model:"))
		models := make([]string, 0, len(bs.ModelUsage))
		for m := range bs.ModelUsage {
			models = append(models, m)
		}
		sort.Strings(models)
		for _, m := range models {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(m),
				output.StyleValue.Render(formatTokenCount(bs.ModelUsage[m])))
		}
	}
}

func renderEfficiency(m efficiency.Metrics) {
	fmt.Println(output.Section("Efficiency"))

	if m.Rating == efficiency.RatingNoData {
		fmt.Printf(" %s\n", output.StyleMuted.Render("No session time recorded; efficiency metrics unavailable"))
		return
	}

	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render("Productivity"),
		output.ScoreBar(m.ProductivityScore, 10, 20),
		output.StyleBold.Render(m.Rating))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Tokens/hour"),
		output.StyleValue.Render(fmt.Sprintf("%.0f", m.TokensPerHour)))
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Lines/hour"),
		output.StyleValue.Render(fmt.Sprintf("%.0f", m.LinesPerHour)),
		output.StyleMuted.Render(fmt.Sprintf("(~%d lines estimated)", m.EstimatedLines)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Cost/hour"),
		output.StyleValue.Render(fmt.Sprintf("$%.2f", m.CostPerHour)))
}

func renderTrends(t trend.Analysis) {
	fmt.Println(output.Section("Trends"))

	if t.Message != "" {
		fmt.Printf(" %s\n", output.StyleMuted.Render(t.Message))
	}

	renderMetricTrend("Productivity", t.Productivity, true)
	renderMetricTrend("Tokens", t.Tokens, false)
	renderMetricTrend("Time", t.Time, false)

	if len(t.Daily) > 0 {
		dates := make([]string, 0, len(t.Daily))
		for d := range t.Daily {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		scores := make([]float64, 0, len(dates))
		for _, d := range dates {
			scores = append(scores, t.Daily[d].Score)
		}
		fmt.Printf("\n %s %s  %s\n",
			output.StyleLabel.Render("Daily shape"),
			output.Sparkline(scores),
			output.StyleMuted.Render(fmt.Sprintf("%d days", len(dates))))
	}

	if len(t.Anomalies) > 0 {
		total := 0
		for _, n := range t.Anomalies {
			total += n
		}
		if total > 0 {
			fmt.Printf(" %s %s\n",
				output.StyleLabel.Render("Anomalies"),
				output.StyleWarning.Render(fmt.Sprintf("%d outlier day(s)", total)))
		}
	}

	if t.Seasonality != nil && t.Seasonality.HasPattern {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Best weekday"),
			output.StyleSuccess.Render(t.Seasonality.BestWeekday))
	}

	if t.OverallConfidence > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Confidence"),
			output.ScoreBar(t.OverallConfidence, 100, 20))
	}
}

func renderMetricTrend(name string, mt trend.MetricTrend, higherIsBetter bool) {
	fmt.Printf(" %s %s  %s\n",
		output.StyleLabel.Render(name),
		output.TrendArrowPercent(mt.ChangeRate, higherIsBetter),
		output.StyleMuted.Render(fmt.Sprintf("%s / %s", mt.Direction, mt.Strength)))
}

func renderInsights(si insight.SmartInsights) {
	fmt.Println(output.Section("Insights"))

	if len(si.Insights) == 0 {
		fmt.Printf(" %s\n", output.StyleMuted.Render("Nothing noteworthy this period"))
		return
	}

	priorityStyled := output.StyleMuted.Render(si.Priority)
	switch si.Priority {
	case "high":
		priorityStyled = output.StyleError.Render(si.Priority)
	case "medium":
		priorityStyled = output.StyleWarning.Render(si.Priority)
	}
	fmt.Printf(" %s %s   %s %s\n",
		output.StyleLabel.Render("Priority"), priorityStyled,
		output.StyleLabel.Render("Focus"), output.StyleBold.Render(si.PrimaryCategory))
	fmt.Println()

	for _, text := range si.Insights {
		fmt.Printf("  %s %s\n", output.StyleHeader.Render("•"), text)
	}
}

func renderRecommendations(priority string, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Println(output.Section(fmt.Sprintf("Recommendations (%s priority)", priority)))
	for _, s := range suggestions {
		fmt.Printf("  %s %s\n", output.StyleSuccess.Render("→"), s)
	}
}

// kvPair is a key-value pair for sorted map iteration.
type kvPair struct {
	key   string
	value int
}

// sortMapByValue returns a slice of key-value pairs sorted by value descending.
func sortMapByValue(m map[string]int) []kvPair {
	pairs := make([]kvPair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, kvPair{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value != pairs[j].value {
			return pairs[i].value > pairs[j].value
		}
		return pairs[i].key < pairs[j].key
	})
	return pairs
}
