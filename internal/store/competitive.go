package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// SaveIntel writes the identity's competitive intel, replacing any previous
// record.
func (db *DB) SaveIntel(ci intent.CompetitiveIntel) error {
	competitors, err := json.Marshal(ci.Competitors)
	if err != nil {
		return fmt.Errorf("marshal competitors: %w", err)
	}
	advantages, err := json.Marshal(ci.Advantages)
	if err != nil {
		return fmt.Errorf("marshal advantages: %w", err)
	}
	risks, err := json.Marshal(ci.Risks)
	if err != nil {
		return fmt.Errorf("marshal risks: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO competitive_intel (identity_id, competitors, eval_stage, advantages, risks, win_probability, strategy, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity_id) DO UPDATE SET
			competitors = excluded.competitors,
			eval_stage = excluded.eval_stage,
			advantages = excluded.advantages,
			risks = excluded.risks,
			win_probability = excluded.win_probability,
			strategy = excluded.strategy,
			updated_at = excluded.updated_at
	`, ci.IdentityID, string(competitors), string(ci.EvalStage), string(advantages), string(risks), ci.WinProbability, ci.Strategy, ci.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save intel for %s: %w", ci.IdentityID, err)
	}
	return nil
}

// GetIntel returns the identity's competitive intel, or nil if no analysis
// has run yet.
func (db *DB) GetIntel(identityID string) (*intent.CompetitiveIntel, error) {
	var (
		ci          intent.CompetitiveIntel
		competitors string
		evalStage   string
		advantages  string
		risks       string
		updatedAt   int64
	)
	err := db.QueryRow(`
		SELECT identity_id, competitors, eval_stage, advantages, risks, win_probability, strategy, updated_at
		FROM competitive_intel WHERE identity_id = ?
	`, identityID).Scan(&ci.IdentityID, &competitors, &evalStage, &advantages, &risks, &ci.WinProbability, &ci.Strategy, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get intel for %s: %w", identityID, err)
	}

	if err := json.Unmarshal([]byte(competitors), &ci.Competitors); err != nil {
		return nil, fmt.Errorf("unmarshal competitors for %s: %w", identityID, err)
	}
	if err := json.Unmarshal([]byte(advantages), &ci.Advantages); err != nil {
		return nil, fmt.Errorf("unmarshal advantages for %s: %w", identityID, err)
	}
	if err := json.Unmarshal([]byte(risks), &ci.Risks); err != nil {
		return nil, fmt.Errorf("unmarshal risks for %s: %w", identityID, err)
	}
	ci.EvalStage = intent.EvalStage(evalStage)
	ci.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &ci, nil
}
