package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "intent_signals: append-only per-identity signal log",
		SQL: `
CREATE TABLE intent_signals (
    id             TEXT PRIMARY KEY,
    identity_id    TEXT NOT NULL,
    created_at     INTEGER NOT NULL,
    source         TEXT NOT NULL CHECK (source IN ('website', 'code-repository', 'documentation', 'community', 'content', 'event', 'external')),
    category       TEXT NOT NULL CHECK (category IN ('awareness', 'consideration', 'evaluation', 'purchase-intent', 'competitive')),
    signal_type    TEXT NOT NULL,
    signal_data    TEXT,
    intent_weight  REAL NOT NULL,
    confidence     REAL NOT NULL,
    decay_rate     REAL NOT NULL,
    correlations   TEXT
);

CREATE INDEX idx_signals_identity ON intent_signals(identity_id, created_at);
CREATE INDEX idx_signals_created  ON intent_signals(created_at);
`,
	},
	{
		Version:     2,
		Description: "intent_scores: derived composite score per identity",
		SQL: `
CREATE TABLE intent_scores (
    identity_id    TEXT PRIMARY KEY,
    overall        REAL NOT NULL,
    breakdown      TEXT NOT NULL,
    stage          TEXT NOT NULL CHECK (stage IN ('awareness', 'consideration', 'evaluation', 'purchase', 'expansion')),
    urgency        REAL NOT NULL,
    fit            REAL NOT NULL,
    trend          TEXT NOT NULL CHECK (trend IN ('increasing', 'stable', 'decreasing')),
    updated_at     INTEGER NOT NULL
);
`,
	},
	{
		Version:     3,
		Description: "competitive_intel: derived competitive picture per identity",
		SQL: `
CREATE TABLE competitive_intel (
    identity_id     TEXT PRIMARY KEY,
    competitors     TEXT NOT NULL,
    eval_stage      TEXT NOT NULL CHECK (eval_stage IN ('early', 'active', 'final', 'decided')),
    advantages      TEXT NOT NULL,
    risks           TEXT NOT NULL,
    win_probability REAL NOT NULL,
    strategy        TEXT NOT NULL,
    updated_at      INTEGER NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
