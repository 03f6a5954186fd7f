package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/trend"
)

var (
	trendsTimeframe string
	trendsProject   string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show productivity, token, and time trends",
	Long: `Build a daily metric series from the usage export and run trend
detection over it: direction, strength, and confidence per metric, plus
anomaly and weekday-pattern detection when enough days are available.`,
	RunE: runTrends,
}

func init() {
	trendsCmd.Flags().StringVar(&trendsTimeframe, "timeframe", "month", "Analysis window: today, week, month")
	trendsCmd.Flags().StringVar(&trendsProject, "project", "", "Filter to a specific project")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	cfg, snaps, err := loadData()
	if err != nil {
		return err
	}

	req, err := buildRequest(trendsTimeframe, trendsProject, []string{"trends"}, "", "")
	if err != nil {
		return err
	}

	snaps = filterProject(snaps, trendsProject)
	orch := newOrchestrator(cfg)
	result := orch.Generate(req, filterWindow(snaps, req))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Trends)
	}

	if result.Trends == nil {
		fmt.Println(output.StyleMuted.Render("No trend data available"))
		return nil
	}

	renderTrends(*result.Trends)
	renderDailyTable(*result.Trends)
	fmt.Println()
	return nil
}

// renderDailyTable lists the per-day metrics behind the trend series.
func renderDailyTable(t trend.Analysis) {
	if len(t.Daily) == 0 {
		return
	}

	dates := make([]string, 0, len(t.Daily))
	for d := range t.Daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	table := output.NewTable("Date", "Tokens", "Cost", "Hours", "Score")
	for _, d := range dates {
		dm := t.Daily[d]
		table.AddRow(
			d,
			formatTokenCount(dm.Tokens),
			fmt.Sprintf("$%.2f", dm.CostUSD),
			fmt.Sprintf("%.1f", dm.TimeHours),
			fmt.Sprintf("%.1f", dm.Score),
		)
	}
	fmt.Println()
	fmt.Print(table.Render())
}
