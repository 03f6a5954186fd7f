package report

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/usagelens/internal/config"
	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/insight"
	"github.com/blackwell-systems/usagelens/internal/stats"
	"github.com/blackwell-systems/usagelens/internal/trend"
	"github.com/blackwell-systems/usagelens/internal/usage"
)

// Orchestrator wires the analysis components together. All engines are
// explicit instance values injected here; there are no process-wide
// defaults. Each orchestrator owns its insight engine, so independent
// analyses running in parallel should each construct their own
// orchestrator.
type Orchestrator struct {
	scorer      *efficiency.Scorer
	tools       *efficiency.ToolAnalyzer
	costs       *efficiency.CostAnalyzer
	trends      *trend.AdvancedEngine
	insights    *insight.Engine
	recommender *insight.Recommender

	// now is injectable for tests.
	now func() time.Time
}

// New builds an orchestrator from configuration.
func New(cfg *config.Config) *Orchestrator {
	estimator := efficiency.NewEstimator(cfg)
	return &Orchestrator{
		scorer:      efficiency.NewScorer(estimator),
		tools:       efficiency.NewToolAnalyzer(estimator, cfg),
		costs:       efficiency.NewCostAnalyzer(estimator, cfg),
		trends:      trend.NewAdvancedEngine(trend.NewEngine()),
		insights:    insight.NewEngine(),
		recommender: insight.NewRecommender(),
		now:         time.Now,
	}
}

// InsightEngine exposes the orchestrator's rule registry so callers can
// add, remove, or toggle rules before generating. Mutation must not run
// concurrently with Generate on the same orchestrator.
func (o *Orchestrator) InsightEngine() *insight.Engine {
	return o.insights
}

// Generate runs the requested analyses over the given snapshots. The
// snapshots are the request's window, oldest to newest; the orchestrator
// does not fetch data itself. Generation never fails: malformed input
// degrades to zero-valued stats and trend analyses carry diagnostic
// messages instead of errors.
func (o *Orchestrator) Generate(req AnalysisRequest, snaps []*usage.Snapshot) AnalysisResult {
	result := AnalysisResult{
		TimeframeLabel: req.Label(),
		DataSource:     dataSource(snaps),
		GeneratedAt:    o.now(),
		Quality:        o.quality(snaps),
	}

	validated := stats.ValidateAndCorrect(stats.FromSnapshots(snaps))
	bs := validated.Corrected

	if req.wants(AnalysisBasic) {
		result.Stats = &bs
	}

	var eff *efficiency.Metrics
	if req.wants(AnalysisEfficiency) || req.wants(AnalysisInsights) {
		m := o.scorer.Score(bs)
		eff = &m
	}
	if req.wants(AnalysisEfficiency) {
		result.Efficiency = eff
	}

	var trends *trend.Analysis
	if req.wants(AnalysisTrends) || req.wants(AnalysisInsights) {
		series := perSnapshotStats(snaps)
		t := o.trends.Analyze(series, string(req.Timeframe))
		trends = &t
	}
	if req.wants(AnalysisTrends) {
		result.Trends = trends
	}

	if req.wants(AnalysisInsights) {
		cost := o.costs.Analyze(bs)
		ctx := &insight.Context{
			Stats:      bs,
			Efficiency: eff,
			Trends:     trends,
			Cost:       &cost,
			Tools:      o.tools.AnalyzeToolUsage(bs.ToolUsage, bs.TotalTimeHours),
		}
		si := o.insights.Generate(ctx)
		result.Insights = &si

		rec := o.recommender.Recommend(bs, eff, trends)
		result.Recommendations = &rec
	}

	return result
}

// Compare generates both requests' reports and the delta between their
// basic stats. The two periods are independent, so they are computed
// concurrently.
func (o *Orchestrator) Compare(
	currentReq, previousReq AnalysisRequest,
	currentSnaps, previousSnaps []*usage.Snapshot,
) ComparisonResult {
	var out ComparisonResult

	var g errgroup.Group
	g.Go(func() error {
		out.Current = o.Generate(currentReq, currentSnaps)
		return nil
	})
	g.Go(func() error {
		out.Previous = o.Generate(previousReq, previousSnaps)
		return nil
	})
	// Generate never returns an error; the group is only a join point.
	_ = g.Wait()

	cur := stats.ValidateAndCorrect(stats.FromSnapshots(currentSnaps)).Corrected
	prev := stats.ValidateAndCorrect(stats.FromSnapshots(previousSnaps)).Corrected
	out.Delta = stats.Compare(cur, prev)

	return out
}

// perSnapshotStats maps each snapshot to its own BasicStats for the trend
// series, skipping nil entries.
func perSnapshotStats(snaps []*usage.Snapshot) []stats.BasicStats {
	var series []stats.BasicStats
	for _, s := range snaps {
		if s == nil {
			continue
		}
		series = append(series, stats.FromSnapshot(s))
	}
	return series
}

// dataSource labels the providers behind a snapshot list.
func dataSource(snaps []*usage.Snapshot) string {
	sources := make(map[string]bool)
	label := ""
	for _, s := range snaps {
		if s == nil || s.Source == "" {
			continue
		}
		if !sources[s.Source] {
			sources[s.Source] = true
			if label != "" {
				label += "+"
			}
			label += s.Source
		}
	}
	if label == "" {
		return "unknown"
	}
	return label
}

// quality estimates the data-quality triple for a snapshot list.
// Completeness is the fraction of entries carrying token data, reliability
// the fraction that are well-formed, freshness decays with the age of the
// newest entry.
func (o *Orchestrator) quality(snaps []*usage.Snapshot) DataQuality {
	if len(snaps) == 0 {
		return DataQuality{}
	}

	total := len(snaps)
	withTokens := 0
	valid := 0
	newest := ""
	for _, s := range snaps {
		if s == nil {
			continue
		}
		valid++
		if s.TotalTokens > 0 || s.InputTokens+s.OutputTokens > 0 {
			withTokens++
		}
		if s.Timestamp > newest {
			newest = s.Timestamp
		}
	}

	q := DataQuality{
		Completeness: float64(withTokens) / float64(total),
		Reliability:  float64(valid) / float64(total),
		Freshness:    freshness(newest, o.now()),
	}
	return q
}

// freshness maps the newest timestamp's age onto [0, 1]: same-day data
// scores 1, a week old scores 0, unparseable timestamps score 0.5.
func freshness(timestamp string, now time.Time) float64 {
	if timestamp == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		t, err = time.Parse("2006-01-02", timestamp)
		if err != nil {
			return 0.5
		}
	}

	ageDays := now.Sub(t).Hours() / 24
	return stats.Clamp(1-ageDays/7, 0, 1)
}
