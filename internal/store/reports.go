package store

import (
	"database/sql"
	"time"
)

// SaveReport inserts a report row plus its insight lines and returns the
// new report id.
func (db *DB) SaveReport(r *ReportRow, insights, recommendations []string) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO reports
		(generated_at, project, timeframe, session_count, total_tokens,
		 total_cost_usd, total_hours, productivity_score, rating, trend_rate, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GeneratedAt.UTC().Format(time.RFC3339), r.Project, r.Timeframe,
		r.SessionCount, r.TotalTokens, r.TotalCostUSD, r.TotalHours,
		r.ProductivityScore, r.Rating, r.TrendRate, r.Confidence,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, text := range insights {
		if _, err := tx.Exec(
			"INSERT INTO report_insights (report_id, position, kind, text) VALUES (?, ?, 'insight', ?)",
			id, i, text,
		); err != nil {
			return 0, err
		}
	}
	for i, text := range recommendations {
		if _, err := tx.Exec(
			"INSERT INTO report_insights (report_id, position, kind, text) VALUES (?, ?, 'recommendation', ?)",
			id, i, text,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// LatestReport returns the most recent stored report for a project and
// timeframe, or nil if none exist.
func (db *DB) LatestReport(project, timeframe string) (*ReportRow, error) {
	return db.reportN(project, timeframe, 1)
}

// PreviousReport returns the second most recent stored report for a project
// and timeframe, or nil if fewer than two exist.
func (db *DB) PreviousReport(project, timeframe string) (*ReportRow, error) {
	return db.reportN(project, timeframe, 2)
}

// reportN returns the Nth most recent report (1 = latest).
func (db *DB) reportN(project, timeframe string, n int) (*ReportRow, error) {
	row := db.conn.QueryRow(
		`SELECT id, generated_at, project, timeframe, session_count, total_tokens,
		 total_cost_usd, total_hours, productivity_score, rating, trend_rate, confidence
		 FROM reports WHERE project = ? AND timeframe = ?
		 ORDER BY id DESC LIMIT 1 OFFSET ?`,
		project, timeframe, n-1,
	)
	return scanReport(row)
}

// ListReports returns up to limit stored reports for a project, newest
// first. An empty project matches all projects.
func (db *DB) ListReports(project string, limit int) ([]ReportRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, generated_at, project, timeframe, session_count, total_tokens,
		 total_cost_usd, total_hours, productivity_score, rating, trend_rate, confidence
		 FROM reports WHERE (? = '' OR project = ?)
		 ORDER BY id DESC LIMIT ?`,
		project, project, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ReportRow
	for rows.Next() {
		var r ReportRow
		var generatedAt string
		var project sql.NullString
		if err := rows.Scan(
			&r.ID, &generatedAt, &project, &r.Timeframe, &r.SessionCount,
			&r.TotalTokens, &r.TotalCostUSD, &r.TotalHours,
			&r.ProductivityScore, &r.Rating, &r.TrendRate, &r.Confidence,
		); err != nil {
			return nil, err
		}
		r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		r.Project = project.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReportInsights returns a report's stored insight and recommendation
// lines in position order.
func (db *DB) GetReportInsights(reportID int64) ([]InsightRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, report_id, position, kind, text FROM report_insights
		 WHERE report_id = ? ORDER BY kind, position`,
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []InsightRow
	for rows.Next() {
		var ir InsightRow
		if err := rows.Scan(&ir.ID, &ir.ReportID, &ir.Position, &ir.Kind, &ir.Text); err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep rows per project and timeframe.
func (db *DB) Prune(keep int) error {
	_, err := db.conn.Exec(
		`DELETE FROM reports WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY project, timeframe ORDER BY id DESC
				) AS rn FROM reports
			) WHERE rn <= ?
		)`,
		keep,
	)
	return err
}

func scanReport(row *sql.Row) (*ReportRow, error) {
	var r ReportRow
	var generatedAt string
	var project sql.NullString
	err := row.Scan(
		&r.ID, &generatedAt, &project, &r.Timeframe, &r.SessionCount,
		&r.TotalTokens, &r.TotalCostUSD, &r.TotalHours,
		&r.ProductivityScore, &r.Rating, &r.TrendRate, &r.Confidence,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	r.Project = project.String
	return &r, nil
}
