package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			generated_at       TEXT NOT NULL,
			project            TEXT,
			timeframe          TEXT NOT NULL,
			session_count      INTEGER NOT NULL,
			total_tokens       INTEGER NOT NULL,
			total_cost_usd     REAL NOT NULL,
			total_hours        REAL NOT NULL,
			productivity_score REAL NOT NULL,
			rating             TEXT NOT NULL,
			trend_rate         REAL NOT NULL,
			confidence         REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS report_insights (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
			position  INTEGER NOT NULL,
			kind      TEXT NOT NULL,
			text      TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_reports_project ON reports(project, timeframe, id)`,
		`CREATE INDEX IF NOT EXISTS idx_report_insights_report ON report_insights(report_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
