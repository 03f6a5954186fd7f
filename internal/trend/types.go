// Package trend turns ordered series of period statistics into per-day
// metrics, linear trend descriptors, anomaly counts, and seasonality
// signals.
package trend

// Trend direction labels.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// Trend strength labels.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// Metric series names used as map keys for anomaly counts.
const (
	SeriesProductivity = "productivity"
	SeriesTokens       = "tokens"
	SeriesTime         = "time"
)

// DailyMetric is one day's rollup, keyed by ISO date in the daily map.
type DailyMetric struct {
	// Tokens is the day's summed token count.
	Tokens int64 `json:"tokens"`

	// TimeHours is the day's summed active hours.
	TimeHours float64 `json:"time_hours"`

	// Score is the day's proxy productivity score, averaged across the
	// day's data points. This is the cheap trend-shape proxy, deliberately
	// distinct from the efficiency scorer's composite score.
	Score float64 `json:"score"`

	// CostUSD is the day's summed cost.
	CostUSD float64 `json:"cost_usd"`

	// FileCount is the highest files-modified count seen that day.
	FileCount int `json:"file_count"`
}

// MetricTrend describes the linear trend of one metric series.
type MetricTrend struct {
	// ChangeRate is the first-to-last percentage change.
	ChangeRate float64 `json:"change_rate"`

	// Direction is "up", "down", or "stable" (|rate| < 5).
	Direction string `json:"direction"`

	// Strength is "strong" (|rate| > 25), "moderate" (> 10), or "weak".
	Strength string `json:"strength"`

	// Confidence is 0-100, from fit quality, sample size, and consistency.
	Confidence float64 `json:"confidence"`
}

// Seasonality describes a recurring day-of-week pattern in productivity.
type Seasonality struct {
	// HasPattern is true when the weekday averages vary enough to matter.
	HasPattern bool `json:"has_pattern"`

	// BestWeekday is the weekday with the highest average productivity,
	// set only when a pattern is present.
	BestWeekday string `json:"best_weekday,omitempty"`

	// WeekdayAverages maps weekday name to average daily score.
	WeekdayAverages map[string]float64 `json:"weekday_averages,omitempty"`

	// Message explains why no pattern was reported, when applicable.
	Message string `json:"message,omitempty"`
}

// Analysis is the full trend result for one timeframe.
type Analysis struct {
	// Timeframe is the label the caller supplied for this series.
	Timeframe string `json:"timeframe"`

	// Productivity, Tokens, and Time describe each metric's trend.
	Productivity MetricTrend `json:"productivity"`
	Tokens       MetricTrend `json:"tokens"`
	Time         MetricTrend `json:"time"`

	// Daily maps ISO date to that day's rollup.
	Daily map[string]DailyMetric `json:"daily"`

	// Message carries diagnostics such as insufficient-data notes or
	// degradation from the advanced path.
	Message string `json:"message,omitempty"`

	// Anomalies maps series name to the number of statistical outliers,
	// populated only by the advanced engine.
	Anomalies map[string]int `json:"anomalies,omitempty"`

	// Seasonality is the day-of-week pattern, populated only by the
	// advanced engine.
	Seasonality *Seasonality `json:"seasonality,omitempty"`

	// OverallConfidence is 0-100, populated only by the advanced engine.
	OverallConfidence float64 `json:"overall_confidence,omitempty"`
}
