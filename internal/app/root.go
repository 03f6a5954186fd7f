// Package app contains the Cobra command tree for usagelens.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/report"
	"github.com/blackwell-systems/usagelens/internal/usage"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "usagelens",
	Short: "Analytics for AI-assisted development usage",
	Long: `usagelens turns raw Claude Code usage telemetry into derived statistics,
a productivity score, trend signals, and natural-language insights. It reads
a local usage export, runs the analysis pipeline, and renders a report.

Run 'usagelens' with no arguments to see a quick summary of the last week.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/usagelens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// runDashboard renders a quick one-screen summary of the last week.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, snaps, err := loadData()
	if err != nil {
		return err
	}

	orch := newOrchestrator(cfg)
	req := report.AnalysisRequest{Timeframe: report.TimeframeWeek}
	result := orch.Generate(req, filterWindow(snaps, req))

	fmt.Println("usagelens", appVersion)
	fmt.Println(output.Section(fmt.Sprintf("Summary (%s)", result.TimeframeLabel)))

	if result.Stats != nil {
		bs := *result.Stats
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Sessions"),
			output.StyleValue.Render(fmt.Sprintf("%d", bs.SessionCount)))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Tokens"),
			output.StyleValue.Render(formatTokenCount(bs.TotalTokens)))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Cost"),
			output.StyleValue.Render(fmt.Sprintf("$%.2f", bs.TotalCostUSD)))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Active time"),
			output.StyleValue.Render(fmt.Sprintf("%.1f h", bs.TotalTimeHours)))
	}

	if result.Efficiency != nil {
		fmt.Printf(" %s %s  %s\n",
			output.StyleLabel.Render("Productivity"),
			output.ScoreBar(result.Efficiency.ProductivityScore, 10, 20),
			output.StyleMuted.Render(result.Efficiency.Rating))
	}

	fmt.Println()
	fmt.Println(output.StyleMuted.Render(" Subcommands: report, compare, trends, insights, history"))
	return nil
}

// loadData loads configuration and the usage export.
func loadData() (*config.Config, []*usage.Snapshot, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor {
		output.SetNoColor(true)
	}

	snaps, err := usage.LoadSnapshots(cfg.DataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading usage data: %w", err)
	}
	return cfg, snaps, nil
}

// newOrchestrator builds an orchestrator, routing rule diagnostics to
// stderr when verbose output is on.
func newOrchestrator(cfg *config.Config) *report.Orchestrator {
	orch := report.New(cfg)
	if flagVerbose {
		orch.InsightEngine().SetLogger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
	}
	return orch
}

// filterWindow keeps only the snapshots that fall inside the request's
// window. Snapshots without parseable timestamps are kept; dropping them
// would silently discard data from sparse providers.
func filterWindow(snaps []*usage.Snapshot, req report.AnalysisRequest) []*usage.Snapshot {
	from, to := req.From, req.To
	if req.Timeframe != report.TimeframeCustom {
		now := time.Now()
		to = now
		from = now.AddDate(0, 0, -(req.Days() - 1)).Truncate(24 * time.Hour)
	}

	var out []*usage.Snapshot
	for _, s := range snaps {
		if s == nil {
			continue
		}
		t, ok := s.Time()
		if ok && (t.Before(from) || t.After(to)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// formatTokenCount formats large token counts with K/M suffixes.
func formatTokenCount(tokens int64) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fK", float64(tokens)/1_000)
	default:
		return fmt.Sprintf("%d", tokens)
	}
}
