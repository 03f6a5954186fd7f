// Package report composes the analysis pipeline into end-to-end report
// generation for a requested timeframe.
package report

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/usagelens/internal/efficiency"
	"github.com/blackwell-systems/usagelens/internal/insight"
	"github.com/blackwell-systems/usagelens/internal/stats"
	"github.com/blackwell-systems/usagelens/internal/trend"
)

// Timeframe selects the analysis window.
type Timeframe string

// Supported timeframes.
const (
	TimeframeToday  Timeframe = "today"
	TimeframeWeek   Timeframe = "week"
	TimeframeMonth  Timeframe = "month"
	TimeframeCustom Timeframe = "custom"
)

// AnalysisType selects which analyses a request wants.
type AnalysisType string

// Supported analysis types.
const (
	AnalysisBasic      AnalysisType = "basic"
	AnalysisEfficiency AnalysisType = "efficiency"
	AnalysisTrends     AnalysisType = "trends"
	AnalysisInsights   AnalysisType = "insights"
)

// AllAnalysisTypes is the default selection when a request names none.
var AllAnalysisTypes = []AnalysisType{
	AnalysisBasic, AnalysisEfficiency, AnalysisTrends, AnalysisInsights,
}

// AnalysisRequest describes one report to generate.
type AnalysisRequest struct {
	// Project identifies whose activity is analyzed.
	Project string `json:"project,omitempty"`

	// Timeframe selects the window; custom requires From/To.
	Timeframe Timeframe `json:"timeframe"`

	// From and To bound a custom timeframe, inclusive.
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`

	// Types lists the desired analyses; empty means all.
	Types []AnalysisType `json:"types,omitempty"`
}

// DataQuality is the completeness/reliability/freshness triple, each
// in [0, 1].
type DataQuality struct {
	Completeness float64 `json:"completeness"`
	Reliability  float64 `json:"reliability"`
	Freshness    float64 `json:"freshness"`
}

// AnalysisResult bundles whichever analyses a request asked for, plus
// pass-through metadata.
type AnalysisResult struct {
	Stats      *stats.BasicStats      `json:"stats,omitempty"`
	Efficiency *efficiency.Metrics    `json:"efficiency,omitempty"`
	Trends     *trend.Analysis        `json:"trends,omitempty"`
	Insights   *insight.SmartInsights `json:"insights,omitempty"`

	// Recommendations comes from the registry-independent recommender and
	// rides along with the insights analysis.
	Recommendations *insight.Recommendations `json:"recommendations,omitempty"`

	// TimeframeLabel is the human description of the analyzed window.
	TimeframeLabel string `json:"timeframe_label"`

	// DataSource labels which provider supplied the snapshots.
	DataSource string `json:"data_source,omitempty"`

	// GeneratedAt is when this result was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Quality estimates how trustworthy the underlying data is.
	Quality DataQuality `json:"quality"`
}

// ComparisonResult bundles two full results with the delta between their
// basic stats.
type ComparisonResult struct {
	Current  AnalysisResult   `json:"current"`
	Previous AnalysisResult   `json:"previous"`
	Delta    stats.Comparison `json:"delta"`
}

// Label returns the human description of a request's window.
func (r AnalysisRequest) Label() string {
	switch r.Timeframe {
	case TimeframeToday:
		return "today"
	case TimeframeWeek:
		return "last 7 days"
	case TimeframeMonth:
		return "last 30 days"
	case TimeframeCustom:
		return fmt.Sprintf("%s to %s", r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	default:
		return string(r.Timeframe)
	}
}

// Days returns the window length in days, used to slice the snapshot
// series. Custom windows round up to whole days; unknown timeframes
// default to a week.
func (r AnalysisRequest) Days() int {
	switch r.Timeframe {
	case TimeframeToday:
		return 1
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 30
	case TimeframeCustom:
		d := int(r.To.Sub(r.From).Hours()/24) + 1
		if d < 1 {
			d = 1
		}
		return d
	default:
		return 7
	}
}

// wants reports whether the request selected the given analysis type.
func (r AnalysisRequest) wants(t AnalysisType) bool {
	types := r.Types
	if len(types) == 0 {
		types = AllAnalysisTypes
	}
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}
