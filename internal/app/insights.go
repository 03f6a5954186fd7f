package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/usagelens/internal/output"
	"github.com/blackwell-systems/usagelens/internal/report"
)

var (
	insightsTimeframe    string
	insightsProject      string
	insightsListRules    bool
	insightsDisableRules []string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate natural-language insights and recommendations",
	Long: `Run the full analysis pipeline and evaluate the insight rule set
against the results. Each matching rule contributes one observation; the
recommender adds concrete suggestions ordered by expected impact.

Use --list-rules to see the registered rules and --disable to skip
specific rules for one run.`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsTimeframe, "timeframe", "week", "Analysis window: today, week, month")
	insightsCmd.Flags().StringVar(&insightsProject, "project", "", "Filter to a specific project")
	insightsCmd.Flags().BoolVar(&insightsListRules, "list-rules", false, "List registered insight rules and exit")
	insightsCmd.Flags().StringSliceVar(&insightsDisableRules, "disable", nil, "Rule ids to disable for this run")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, snaps, err := loadData()
	if err != nil {
		return err
	}

	orch := newOrchestrator(cfg)

	if insightsListRules {
		return listRules(orch)
	}

	for _, id := range insightsDisableRules {
		if !orch.InsightEngine().Toggle(id, false) {
			return fmt.Errorf("unknown rule id %q", id)
		}
	}

	req, err := buildRequest(insightsTimeframe, insightsProject, []string{"insights"}, "", "")
	if err != nil {
		return err
	}

	snaps = filterProject(snaps, insightsProject)
	result := orch.Generate(req, filterWindow(snaps, req))

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Insights        any `json:"insights"`
			Recommendations any `json:"recommendations"`
		}{result.Insights, result.Recommendations})
	}

	if result.Insights != nil {
		renderInsights(*result.Insights)
	}
	if result.Recommendations != nil {
		renderRecommendations(result.Recommendations.Priority, result.Recommendations.Suggestions)
	}
	fmt.Println()
	return nil
}

// listRules prints the registered rules with their enabled state.
func listRules(orch *report.Orchestrator) error {
	fmt.Println(output.Section("Insight rules"))
	table := output.NewTable("ID", "Category", "Priority", "Enabled")
	for _, r := range orch.InsightEngine().Rules() {
		enabled := "yes"
		if !r.Enabled {
			enabled = "no"
		}
		table.AddRow(r.ID, r.Category, r.Priority, enabled)
	}
	fmt.Println()
	fmt.Print(table.Render())
	return nil
}
