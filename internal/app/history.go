package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/store"
)

var (
	historyProject string
	historyLimit   int
	historyShowID  int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated reports",
	Long: `Show the headline numbers of past reports stored in the local
history database. Use --show with a report id to print that report's
stored insights and recommendations.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyProject, "project", "", "Filter to a specific project")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum rows to list")
	historyCmd.Flags().Int64Var(&historyShowID, "show", 0, "Show stored insights for a report id")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if historyShowID > 0 {
		return showReportInsights(db, historyShowID)
	}

	rows, err := db.ListReports(historyProject, historyLimit)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println(output.StyleMuted.Render("No stored reports yet; run 'usagelens report' first"))
		return nil
	}

	fmt.Println(output.Section("Report history"))
	table := output.NewTable("ID", "Generated", "Timeframe", "Project", "Sessions", "Tokens", "Cost", "Score", "Rating")
	for _, r := range rows {
		project := r.Project
		if project == "" {
			project = "-"
		}
		table.AddRow(
			fmt.Sprintf("%d", r.ID),
			r.GeneratedAt.Format("2006-01-02 15:04"),
			r.Timeframe,
			project,
			fmt.Sprintf("%d", r.SessionCount),
			formatTokenCount(r.TotalTokens),
			fmt.Sprintf("$%.2f", r.TotalCostUSD),
			fmt.Sprintf("%.1f", r.ProductivityScore),
			r.Rating,
		)
	}
	fmt.Println()
	fmt.Print(table.Render())
	return nil
}

// showReportInsights prints one stored report's insight and
// recommendation lines.
func showReportInsights(db *store.DB, id int64) error {
	rows, err := db.GetReportInsights(id)
	if err != nil {
		return fmt.Errorf("reading report %d: %w", id, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println(output.StyleMuted.Render("No stored insights for that report"))
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Report %d", id)))
	for _, r := range rows {
		marker := output.StyleHeader.Render("•")
		if r.Kind == "recommendation" {
			marker = output.StyleSuccess.Render("→")
		}
		fmt.Printf("  %s %s\n", marker, r.Text)
	}
	fmt.Println()
	return nil
}
