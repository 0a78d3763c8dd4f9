package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eflotty/facultysnipe"
)

// Compile-time interface verification.
var _ facultysnipe.RecordService = (*RecordService)(nil)

// RecordService implements facultysnipe.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// Snapshot returns the stored record set for a target, keyed by record id.
// A target with no prior records returns an empty map.
func (s *RecordService) Snapshot(ctx context.Context, targetID string) (map[string]facultysnipe.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, title, email, profile_url, department, phone, research_interests, raw_data
		FROM records
		WHERE target_id = ?
	`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := make(map[string]facultysnipe.Record)
	for rows.Next() {
		var id, rawData string
		var rec facultysnipe.Record

		if err := rows.Scan(&id, &rec.Name, &rec.Title, &rec.Email, &rec.ProfileURL,
			&rec.Department, &rec.Phone, &rec.ResearchInterests, &rawData); err != nil {
			return nil, err
		}

		if rawData != "" && rawData != "{}" {
			if err := json.Unmarshal([]byte(rawData), &rec.RawData); err != nil {
				return nil, fmt.Errorf("failed to parse raw_data for record %s: %w", id, err)
			}
		}

		snapshot[id] = rec
	}

	return snapshot, rows.Err()
}

// ReplaceRecords replaces the target's stored record set with the given
// records. The delete and inserts run in one transaction, so a failed
// replace leaves the previous snapshot intact.
func (s *RecordService) ReplaceRecords(ctx context.Context, targetID string, records []facultysnipe.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE target_id = ?", targetID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, target_id, name, title, email, profile_url, department, phone, research_interests, raw_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (target_id, id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		rawData := "{}"
		if len(rec.RawData) > 0 {
			encoded, err := json.Marshal(rec.RawData)
			if err != nil {
				return fmt.Errorf("failed to encode raw_data for %q: %w", rec.Name, err)
			}
			rawData = string(encoded)
		}

		if _, err := stmt.ExecContext(ctx, rec.ID(), targetID, rec.Name, rec.Title, rec.Email,
			rec.ProfileURL, rec.Department, rec.Phone, rec.ResearchInterests, rawData); err != nil {
			return err
		}
	}

	return tx.Commit()
}
