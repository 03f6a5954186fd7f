package trend

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/usagelens/internal/stats"
)

// minAdvancedPoints is the series length below which the advanced path
// degrades to the basic analysis.
const minAdvancedPoints = 5

// minSeasonalityDays is the day count required for weekday bucketing.
const minSeasonalityDays = 14

// seasonalityVarianceThreshold is the weekday-average variance above which
// a day-of-week pattern is reported.
const seasonalityVarianceThreshold = 0.5

// smoothingWindow is the default moving-average window.
const smoothingWindow = 3

// anomalySigma is the outlier threshold in standard deviations.
const anomalySigma = 2.0

// AdvancedEngine layers anomaly detection, smoothing, and seasonality on
// top of the basic trend engine.
type AdvancedEngine struct {
	basic *Engine
}

// NewAdvancedEngine wraps a basic engine.
func NewAdvancedEngine(basic *Engine) *AdvancedEngine {
	return &AdvancedEngine{basic: basic}
}

// Analyze runs the advanced analysis. Series shorter than five points, and
// any internal failure on the advanced path, fall back to the basic result
// with a message noting the degradation; the advanced path never aborts
// an analysis.
func (ae *AdvancedEngine) Analyze(series []stats.BasicStats, timeframe string) (a Analysis) {
	a = ae.basic.Analyze(series, timeframe)

	if len(series) < minAdvancedPoints {
		if a.Message == "" {
			a.Message = fmt.Sprintf(
				"degraded to basic analysis: %d data points, advanced analysis needs %d",
				len(series), minAdvancedPoints)
		}
		return a
	}

	basic := a
	defer func() {
		if r := recover(); r != nil {
			a = basic
			a.Message = fmt.Sprintf("degraded to basic analysis: advanced path failed: %v", r)
		}
	}()

	prod, tokens, hours := seriesByDate(a.Daily)

	a.Anomalies = map[string]int{
		SeriesProductivity: len(detectAnomalies(prod)),
		SeriesTokens:       len(detectAnomalies(tokens)),
		SeriesTime:         len(detectAnomalies(hours)),
	}

	// Recompute each trend on the smoothed series. The first-vs-last rate
	// formula is reused; smoothing just removes single-day spikes from it.
	a.Productivity = computeTrend(movingAverage(prod, smoothingWindow))
	a.Tokens = computeTrend(movingAverage(tokens, smoothingWindow))
	a.Time = computeTrend(movingAverage(hours, smoothingWindow))

	a.Seasonality = ae.analyzeSeasonality(a.Daily)

	totalAnomalies := 0
	for _, n := range a.Anomalies {
		totalAnomalies += n
	}
	a.OverallConfidence = overallConfidence(len(a.Daily), totalAnomalies)

	return a
}

// detectAnomalies returns the indexes of points more than two standard
// deviations from the series mean. Series shorter than five points report
// no anomalies: the spread estimate is too unstable.
func detectAnomalies(values []float64) []int {
	if len(values) < minAdvancedPoints {
		return nil
	}

	mean, stddev := meanStdDev(values)
	if stddev == 0 {
		return nil
	}

	var out []int
	for i, v := range values {
		if v > mean+anomalySigma*stddev || v < mean-anomalySigma*stddev {
			out = append(out, i)
		}
	}
	return out
}

// analyzeSeasonality buckets daily productivity scores by weekday and
// reports a pattern when the weekday averages vary beyond the threshold.
func (ae *AdvancedEngine) analyzeSeasonality(daily map[string]DailyMetric) *Seasonality {
	if len(daily) < minSeasonalityDays {
		return &Seasonality{
			Message: fmt.Sprintf(
				"insufficient data for seasonality: %d days, need %d",
				len(daily), minSeasonalityDays),
		}
	}

	sums := make(map[string]float64, 7)
	counts := make(map[string]int, 7)
	for date, dm := range daily {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		wd := t.Weekday().String()
		sums[wd] += dm.Score
		counts[wd]++
	}

	averages := make(map[string]float64, len(sums))
	var values []float64
	for wd, sum := range sums {
		avg := sum / float64(counts[wd])
		averages[wd] = stats.Round2(avg)
		values = append(values, avg)
	}

	s := &Seasonality{WeekdayAverages: averages}

	_, stddev := meanStdDev(values)
	if stddev*stddev <= seasonalityVarianceThreshold {
		return s
	}

	s.HasPattern = true
	s.BestWeekday = bestWeekday(averages)
	return s
}

// bestWeekday returns the weekday with the highest average, breaking ties
// alphabetically so the result is deterministic.
func bestWeekday(averages map[string]float64) string {
	days := make([]string, 0, len(averages))
	for wd := range averages {
		days = append(days, wd)
	}
	sort.Strings(days)

	best := ""
	bestAvg := 0.0
	for _, wd := range days {
		if best == "" || averages[wd] > bestAvg {
			best = wd
			bestAvg = averages[wd]
		}
	}
	return best
}

// overallConfidence scores the whole advanced analysis: more days raise it
// toward 90, anomalies pull it down, and it never drops below the floor.
func overallConfidence(days, anomalies int) float64 {
	base := float64(days) / 30 * 90
	if base > 90 {
		base = 90
	}
	penalty := 0.0
	if days > 0 {
		penalty = float64(anomalies) / float64(days*3) * 30
	}
	return stats.Clamp(base-penalty, 10, 100)
}
