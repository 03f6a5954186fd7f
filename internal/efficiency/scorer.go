package efficiency

import (
	"github.com/blackwell-systems/usagelens/internal/stats"
)

// Metrics captures derived throughput numbers and the composite
// productivity score for one analysis period. It is recomputed from a
// BasicStats each call and never mutated afterwards.
type Metrics struct {
	// TokensPerHour is total tokens divided by total hours.
	TokensPerHour float64 `json:"tokens_per_hour"`

	// LinesPerHour is estimated lines changed divided by total hours.
	LinesPerHour float64 `json:"lines_per_hour"`

	// EstimatedLines is the corrected line-count estimate for the period.
	EstimatedLines int64 `json:"estimated_lines"`

	// ProductivityScore is the composite 0-10 score.
	ProductivityScore float64 `json:"productivity_score"`

	// CostPerHour is total cost divided by total hours.
	CostPerHour float64 `json:"cost_per_hour"`

	// Rating is the discrete label derived from the score.
	Rating string `json:"rating"`
}

// Rating labels and their score thresholds, checked highest first.
const (
	RatingExceptional = "exceptional"      // >= 8.5
	RatingExcellent   = "excellent"        // >= 7.0
	RatingGood        = "good"             // >= 5.5
	RatingFair        = "fair"             // >= 4.0
	RatingNeedsWork   = "needs improvement" // >= 2.5
	RatingPoor        = "poor"
	RatingNoData      = "no data"
)

// Sub-score weights. They apply to the sub-score maxima (3, 4, 2, 1), and
// the weighted sum is rescaled so a perfect period lands exactly on 10.
const (
	tokenWeight   = 0.3
	linesWeight   = 0.4
	toolWeight    = 0.2
	sessionWeight = 0.1
)

// maxWeightedSum is the weighted sum of the four sub-score maxima.
const maxWeightedSum = 3*tokenWeight + 4*linesWeight + 2*toolWeight + 1*sessionWeight

// Scorer derives efficiency metrics from canonical stats.
type Scorer struct {
	estimator *Estimator
}

// NewScorer builds a scorer around the given line estimator.
func NewScorer(estimator *Estimator) *Scorer {
	return &Scorer{estimator: estimator}
}

// Score computes the full metrics record for one period. A period with no
// recorded time returns the explicit "no data" record instead of dividing
// by zero.
func (sc *Scorer) Score(bs stats.BasicStats) Metrics {
	if bs.TotalTimeHours <= 0 {
		return Metrics{Rating: RatingNoData}
	}

	hours := bs.TotalTimeHours
	lines := sc.estimator.EstimateLines(bs.ToolUsage)

	m := Metrics{
		TokensPerHour:  float64(bs.TotalTokens) / hours,
		LinesPerHour:   float64(lines) / hours,
		EstimatedLines: lines,
		CostPerHour:    bs.TotalCostUSD / hours,
	}

	m.ProductivityScore = sc.productivityScore(bs, m)
	m.Rating = RatingFor(m.ProductivityScore)

	return m
}

// productivityScore combines four weighted sub-scores into a 0-10 value.
func (sc *Scorer) productivityScore(bs stats.BasicStats, m Metrics) float64 {
	// Token throughput: 1500 tokens/hour reaches the 0-3 cap.
	tokenScore := m.TokensPerHour / 1500 * 3
	if tokenScore > 3 {
		tokenScore = 3
	}

	// Code output: 100 lines/hour reaches the 0-4 cap.
	linesScore := m.LinesPerHour / 100 * 4
	if linesScore > 4 {
		linesScore = 4
	}

	// Tool diversity: six distinct tools reaches the 0-2 cap.
	distinct := 0
	for _, count := range bs.ToolUsage {
		if count > 0 {
			distinct++
		}
	}
	toolScore := float64(distinct) / 6 * 2
	if toolScore > 2 {
		toolScore = 2
	}

	// Session pacing: full credit for sessions averaging two hours or less.
	sessionScore := 0.5
	sessions := bs.SessionCount
	if sessions < 1 {
		sessions = 1
	}
	if bs.TotalTimeHours/float64(sessions) <= 2 {
		sessionScore = 1
	}

	weighted := tokenScore*tokenWeight +
		linesScore*linesWeight +
		toolScore*toolWeight +
		sessionScore*sessionWeight

	return stats.Clamp(weighted/maxWeightedSum*10, 0, 10)
}

// RatingFor maps a productivity score onto its discrete label.
func RatingFor(score float64) string {
	switch {
	case score >= 8.5:
		return RatingExceptional
	case score >= 7.0:
		return RatingExcellent
	case score >= 5.5:
		return RatingGood
	case score >= 4.0:
		return RatingFair
	case score >= 2.5:
		return RatingNeedsWork
	default:
		return RatingPoor
	}
}
