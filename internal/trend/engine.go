package trend

import (
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/usagelens/internal/stats"
)

// dateLayout is the key format for the daily metric map.
const dateLayout = "2006-01-02"

// Engine computes per-day metrics and linear trend descriptors from an
// ordered series of period statistics.
type Engine struct {
	// now is injectable for tests; the synthetic day assignment anchors
	// on it.
	now func() time.Time
}

// NewEngine creates a basic trend engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Analyze turns an oldest-to-newest series of stats into a trend analysis.
// Fewer than two points yields a diagnostic result with zero rates and an
// empty daily map rather than an error.
func (e *Engine) Analyze(series []stats.BasicStats, timeframe string) Analysis {
	a := Analysis{
		Timeframe: timeframe,
		Daily:     map[string]DailyMetric{},
	}

	if len(series) < 2 {
		a.Productivity = flatTrend()
		a.Tokens = flatTrend()
		a.Time = flatTrend()
		a.Message = "insufficient data for trend analysis: need at least 2 data points"
		return a
	}

	a.Daily = e.buildDaily(series)

	prod, tokens, hours := seriesByDate(a.Daily)
	a.Productivity = computeTrend(prod)
	a.Tokens = computeTrend(tokens)
	a.Time = computeTrend(hours)

	return a
}

// buildDaily assigns each input a synthetic date (today minus its distance
// from the series end) and rolls same-day entries into one DailyMetric.
// Tokens, time, and cost are summed, the proxy score is averaged, and the
// file count takes the day's maximum.
func (e *Engine) buildDaily(series []stats.BasicStats) map[string]DailyMetric {
	today := e.now()
	daily := make(map[string]DailyMetric, len(series))
	scoreCounts := make(map[string]int, len(series))

	for i, bs := range series {
		date := today.AddDate(0, 0, -(len(series) - 1 - i)).Format(dateLayout)

		dm := daily[date]
		dm.Tokens += bs.TotalTokens
		dm.TimeHours += bs.TotalTimeHours
		dm.CostUSD += bs.TotalCostUSD
		if bs.FilesModifiedCount > dm.FileCount {
			dm.FileCount = bs.FilesModifiedCount
		}

		// Running average of the per-point proxy score.
		n := float64(scoreCounts[date])
		dm.Score = (dm.Score*n + ProxyScore(bs)) / (n + 1)
		scoreCounts[date]++

		daily[date] = dm
	}

	return daily
}

// ProxyScore is the cheap per-point productivity proxy used only for day
// aggregation and trend shape. It is intentionally not the efficiency
// scorer's composite score.
func ProxyScore(bs stats.BasicStats) float64 {
	if bs.TotalTimeHours <= 0 {
		return 0
	}

	tokensPart := float64(bs.TotalTokens) / bs.TotalTimeHours / 200
	if tokensPart > 5 {
		tokensPart = 5
	}
	filesPart := float64(bs.FilesModifiedCount) / bs.TotalTimeHours * 5
	if filesPart > 5 {
		filesPart = 5
	}

	return tokensPart + filesPart
}

// seriesByDate extracts the three metric series in date order.
func seriesByDate(daily map[string]DailyMetric) (prod, tokens, hours []float64) {
	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		dm := daily[d]
		prod = append(prod, dm.Score)
		tokens = append(tokens, float64(dm.Tokens))
		hours = append(hours, dm.TimeHours)
	}
	return prod, tokens, hours
}

// computeTrend derives the change rate, direction, strength, and confidence
// for one metric series.
func computeTrend(values []float64) MetricTrend {
	if len(values) < 2 {
		return flatTrend()
	}

	// Unlike the period comparator, a series starting at zero reports a
	// zero rate: there is no meaningful baseline to trend against.
	var rate float64
	if values[0] != 0 {
		rate = (values[len(values)-1] - values[0]) / values[0] * 100
	}

	t := MetricTrend{
		ChangeRate: stats.Round2(rate),
		Direction:  directionFor(rate),
		Strength:   strengthFor(rate),
		Confidence: confidenceFor(values),
	}
	return t
}

// directionFor maps a change rate onto its direction band.
func directionFor(rate float64) string {
	switch {
	case math.Abs(rate) < 5:
		return DirectionStable
	case rate > 0:
		return DirectionUp
	default:
		return DirectionDown
	}
}

// strengthFor maps a change rate onto its strength band.
func strengthFor(rate float64) string {
	switch {
	case math.Abs(rate) > 25:
		return StrengthStrong
	case math.Abs(rate) > 10:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// confidenceFor scores how reliable the detected trend is: the OLS fit
// quality scaled to 0-100, discounted by sample size (full weight at 7+
// points) and by how consistently consecutive changes agree in sign.
func confidenceFor(values []float64) float64 {
	sampleFactor := float64(len(values)) / 7
	if sampleFactor > 1 {
		sampleFactor = 1
	}
	return stats.Clamp(rSquared(values)*100*sampleFactor*consistency(values), 0, 100)
}

// flatTrend is the zero-rate descriptor used for degenerate series.
func flatTrend() MetricTrend {
	return MetricTrend{Direction: DirectionStable, Strength: StrengthWeak}
}
