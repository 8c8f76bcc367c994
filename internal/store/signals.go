package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// RetentionWindow is how long a signal stays in the log before the retention
// sweep discards it.
const RetentionWindow = 90 * 24 * time.Hour

// AppendSignals appends signals to their identities' logs. Append is the only
// mutation the signal log supports: rows are never updated in place.
// Signals already expired relative to asOf are pruned from the touched
// identities as part of the same call.
func (db *DB) AppendSignals(signals []intent.Signal, asOf time.Time) error {
	if len(signals) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO intent_signals
			(id, identity_id, created_at, source, category, signal_type, signal_data, intent_weight, confidence, decay_rate, correlations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare append: %w", err)
	}
	defer stmt.Close()

	touched := make(map[string]bool, len(signals))
	for _, s := range signals {
		data, err := marshalJSON(s.SignalData)
		if err != nil {
			return fmt.Errorf("marshal signal_data for %s: %w", s.ID, err)
		}
		correlations, err := marshalJSON(s.Correlations)
		if err != nil {
			return fmt.Errorf("marshal correlations for %s: %w", s.ID, err)
		}

		if _, err := stmt.Exec(
			s.ID, s.IdentityID, s.Timestamp.UnixMilli(),
			string(s.Source), string(s.Category), s.SignalType,
			data, s.IntentWeight, s.Confidence, s.DecayRate, correlations,
		); err != nil {
			return fmt.Errorf("insert signal %s: %w", s.ID, err)
		}
		touched[s.IdentityID] = true
	}

	cutoff := asOf.Add(-RetentionWindow).UnixMilli()
	for identityID := range touched {
		if _, err := tx.Exec(
			"DELETE FROM intent_signals WHERE identity_id = ? AND created_at < ?",
			identityID, cutoff,
		); err != nil {
			return fmt.Errorf("prune %s: %w", identityID, err)
		}
	}

	return tx.Commit()
}

// SignalsFor returns the identity's live signal log as of the given instant,
// oldest first. Signals past the retention window never appear in reads, even
// if the sweep has not physically deleted them yet.
func (db *DB) SignalsFor(identityID string, asOf time.Time) ([]intent.Signal, error) {
	cutoff := asOf.Add(-RetentionWindow).UnixMilli()
	rows, err := db.Query(`
		SELECT id, identity_id, created_at, source, category, signal_type, signal_data, intent_weight, confidence, decay_rate, correlations
		FROM intent_signals
		WHERE identity_id = ? AND created_at >= ?
		ORDER BY created_at ASC, id ASC
	`, identityID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var signals []intent.Signal
	for rows.Next() {
		s, err := scanSignal(rows)
		if err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// Identities returns every identity with at least one signal in the log.
func (db *DB) Identities() ([]string, error) {
	rows, err := db.Query("SELECT DISTINCT identity_id FROM intent_signals ORDER BY identity_id")
	if err != nil {
		return nil, fmt.Errorf("query identities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RemoveExpired drops all signals older than the retention window relative to
// asOf. Identities whose log empties as a result are removed entirely: their
// derived score and competitive intel go too. Returns the number of signals
// removed and the identities that disappeared.
func (db *DB) RemoveExpired(asOf time.Time) (int, []string, error) {
	before, err := db.Identities()
	if err != nil {
		return 0, nil, err
	}

	cutoff := asOf.Add(-RetentionWindow).UnixMilli()
	res, err := db.Exec("DELETE FROM intent_signals WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, nil, fmt.Errorf("delete expired: %w", err)
	}
	removed, _ := res.RowsAffected()

	after, err := db.Identities()
	if err != nil {
		return int(removed), nil, err
	}
	remaining := make(map[string]bool, len(after))
	for _, id := range after {
		remaining[id] = true
	}

	var gone []string
	for _, id := range before {
		if remaining[id] {
			continue
		}
		if _, err := db.Exec("DELETE FROM intent_scores WHERE identity_id = ?", id); err != nil {
			return int(removed), gone, fmt.Errorf("delete score for %s: %w", id, err)
		}
		if _, err := db.Exec("DELETE FROM competitive_intel WHERE identity_id = ?", id); err != nil {
			return int(removed), gone, fmt.Errorf("delete intel for %s: %w", id, err)
		}
		gone = append(gone, id)
	}

	return int(removed), gone, nil
}

func scanSignal(rows *sql.Rows) (intent.Signal, error) {
	var (
		s            intent.Signal
		createdAt    int64
		source       string
		category     string
		data         sql.NullString
		correlations sql.NullString
	)
	if err := rows.Scan(
		&s.ID, &s.IdentityID, &createdAt, &source, &category, &s.SignalType,
		&data, &s.IntentWeight, &s.Confidence, &s.DecayRate, &correlations,
	); err != nil {
		return s, fmt.Errorf("scan signal: %w", err)
	}

	s.Timestamp = time.UnixMilli(createdAt).UTC()
	s.Source = intent.Source(source)
	s.Category = intent.Category(category)

	if data.Valid && data.String != "" {
		if err := json.Unmarshal([]byte(data.String), &s.SignalData); err != nil {
			return s, fmt.Errorf("unmarshal signal_data for %s: %w", s.ID, err)
		}
	}
	if correlations.Valid && correlations.String != "" {
		if err := json.Unmarshal([]byte(correlations.String), &s.Correlations); err != nil {
			return s, fmt.Errorf("unmarshal correlations for %s: %w", s.ID, err)
		}
	}
	return s, nil
}

// marshalJSON encodes v, mapping empty values to NULL instead of "null" text.
func marshalJSON(v any) (any, error) {
	switch val := v.(type) {
	case map[string]string:
		if len(val) == 0 {
			return nil, nil
		}
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
