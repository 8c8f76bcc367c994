package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// SaveScore writes the identity's derived score, replacing any previous one.
// Scores are always recomputed whole, never patched.
func (db *DB) SaveScore(s intent.Score) error {
	breakdown, err := json.Marshal(s.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO intent_scores (identity_id, overall, breakdown, stage, urgency, fit, trend, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity_id) DO UPDATE SET
			overall = excluded.overall,
			breakdown = excluded.breakdown,
			stage = excluded.stage,
			urgency = excluded.urgency,
			fit = excluded.fit,
			trend = excluded.trend,
			updated_at = excluded.updated_at
	`, s.IdentityID, s.Overall, string(breakdown), string(s.Stage), s.Urgency, s.Fit, string(s.Trend), s.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save score for %s: %w", s.IdentityID, err)
	}
	return nil
}

// GetScore returns the identity's score, or nil if none has been computed.
func (db *DB) GetScore(identityID string) (*intent.Score, error) {
	var (
		s         intent.Score
		breakdown string
		stage     string
		trend     string
		updatedAt int64
	)
	err := db.QueryRow(`
		SELECT identity_id, overall, breakdown, stage, urgency, fit, trend, updated_at
		FROM intent_scores WHERE identity_id = ?
	`, identityID).Scan(&s.IdentityID, &s.Overall, &breakdown, &stage, &s.Urgency, &s.Fit, &trend, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get score for %s: %w", identityID, err)
	}

	if err := json.Unmarshal([]byte(breakdown), &s.Breakdown); err != nil {
		return nil, fmt.Errorf("unmarshal breakdown for %s: %w", identityID, err)
	}
	s.Stage = intent.Stage(stage)
	s.Trend = intent.Trend(trend)
	s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &s, nil
}

// DeleteScore removes the identity's score if present.
func (db *DB) DeleteScore(identityID string) error {
	if _, err := db.Exec("DELETE FROM intent_scores WHERE identity_id = ?", identityID); err != nil {
		return fmt.Errorf("delete score for %s: %w", identityID, err)
	}
	return nil
}
