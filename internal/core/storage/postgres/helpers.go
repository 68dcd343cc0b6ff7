package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/healstats/internal/api/v1"
)

// marshalEncounterDocument encodes the full encounter for the JSONB document column.
func marshalEncounterDocument(encounter *v1.Encounter) ([]byte, error) {
	doc, err := json.Marshal(encounter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal encounter document: %w", err)
	}
	return doc, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEncounterDocument scans a single document column into an Encounter.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEncounterDocument(row scanner) (*v1.Encounter, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		return nil, err
	}

	var encounter v1.Encounter
	if err := json.Unmarshal(doc, &encounter); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encounter document: %w", err)
	}
	return &encounter, nil
}

// scanSummaryRow scans a listing row into an EncounterSummary.
func scanSummaryRow(row scanner) (v1.EncounterSummary, error) {
	var s v1.EncounterSummary
	err := row.Scan(
		&s.ID,
		&s.RecordedAt,
		&s.IngestedAt,
		&s.SkillCount,
		&s.AgentCount,
	)
	if err != nil {
		return v1.EncounterSummary{}, fmt.Errorf("failed to scan encounter summary: %w", err)
	}
	return s, nil
}
