package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/report"
	"github.com/blackwell-systems/usagelens/internal/stats"
)

var (
	compareTimeframe string
	compareProject   string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the current period against the one before it",
	Long: `Run the full analysis for the requested timeframe and for the
equal-length period immediately before it, then show the deltas between
the two. Both periods are analyzed from the same usage export, so the
comparison does not depend on stored history.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareTimeframe, "timeframe", "week", "Analysis window: today, week, month")
	compareCmd.Flags().StringVar(&compareProject, "project", "", "Filter to a specific project")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, snaps, err := loadData()
	if err != nil {
		return err
	}

	curReq, err := buildRequest(compareTimeframe, compareProject, nil, "", "")
	if err != nil {
		return err
	}
	if curReq.Timeframe == report.TimeframeCustom {
		return fmt.Errorf("compare does not support custom timeframes")
	}

	snaps = filterProject(snaps, compareProject)

	// The previous period is the equal-length window ending where the
	// current one starts.
	days := curReq.Days()
	now := time.Now()
	curFrom := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	prevReq := report.AnalysisRequest{
		Project:   compareProject,
		Timeframe: report.TimeframeCustom,
		From:      curFrom.AddDate(0, 0, -days),
		To:        curFrom.Add(-time.Second),
	}

	orch := newOrchestrator(cfg)
	result := orch.Compare(curReq, prevReq,
		filterWindow(snaps, curReq), filterWindow(snaps, prevReq))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderComparison(result)
	return nil
}

// renderComparison writes the period-over-period delta table.
func renderComparison(r report.ComparisonResult) {
	fmt.Println(output.Section(fmt.Sprintf("Comparison: %s vs %s",
		r.Current.TimeframeLabel, r.Previous.TimeframeLabel)))

	cur, prev := statsOrZero(r.Current), statsOrZero(r.Previous)

	renderDelta("Sessions", float64(cur.SessionCount),
		float64(prev.SessionCount), r.Delta.SessionChange, true)
	renderDelta("Active hours", cur.TotalTimeHours,
		prev.TotalTimeHours, r.Delta.TimeChange, true)
	renderDelta("Tokens", float64(cur.TotalTokens),
		float64(prev.TotalTokens), r.Delta.TokenChange, false)
	renderDelta("Cost", cur.TotalCostUSD,
		prev.TotalCostUSD, r.Delta.CostChange, false)
	renderDelta("Files modified", float64(cur.FilesModifiedCount),
		float64(prev.FilesModifiedCount), r.Delta.FilesChange, true)
	renderDelta("Tokens/hour", 0, 0, r.Delta.EfficiencyChange, false)

	if r.Current.Efficiency != nil && r.Previous.Efficiency != nil {
		fmt.Println()
		fmt.Printf(" %s %s  %s %s\n",
			output.StyleLabel.Render("Productivity now"),
			output.ScoreBar(r.Current.Efficiency.ProductivityScore, 10, 20),
			output.StyleLabel.Render("before"),
			output.ScoreBar(r.Previous.Efficiency.ProductivityScore, 10, 20))
	}
	fmt.Println()
}

func renderDelta(name string, cur, prev, deltaPct float64, higherIsBetter bool) {
	var values string
	if cur != 0 || prev != 0 {
		values = output.StyleMuted.Render(fmt.Sprintf("(%.0f ← %.0f)", cur, prev))
	}
	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render(name),
		output.TrendArrowPercent(deltaPct, higherIsBetter),
		values)
}

// statsOrZero lets the renderer treat a missing stats section as zeroes.
func statsOrZero(r report.AnalysisResult) stats.BasicStats {
	if r.Stats == nil {
		return stats.Zero()
	}
	return *r.Stats
}
