// Package store provides SQLite persistence for generated report history.
package store

import "time"

// ReportRow is the stored headline of one generated report. The compare
// command reads the previous row for the same project and timeframe to
// build a period-over-period delta without re-fetching old data.
type ReportRow struct {
	ID          int64     `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Project     string    `json:"project,omitempty"`
	Timeframe   string    `json:"timeframe"`

	SessionCount int     `json:"session_count"`
	TotalTokens  int64   `json:"total_tokens"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	TotalHours   float64 `json:"total_hours"`

	ProductivityScore float64 `json:"productivity_score"`
	Rating            string  `json:"rating"`
	TrendRate         float64 `json:"trend_rate"`
	Confidence        float64 `json:"confidence"`
}

// InsightRow is one stored insight or recommendation line of a report.
type InsightRow struct {
	ID       int64  `json:"id"`
	ReportID int64  `json:"report_id"`
	Position int    `json:"position"`
	Kind     string `json:"kind"` // "insight" or "recommendation"
	Text     string `json:"text"`
}
