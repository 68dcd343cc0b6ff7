package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/healstats/internal/api/v1"
)

var (
	// ErrDuplicate is returned when an encounter with the same id already exists.
	ErrDuplicate = errors.New("encounter already exists")

	// ErrNotFound is returned when no encounter has the requested id.
	ErrNotFound = errors.New("encounter not found")
)

// EncounterStore persists uploaded encounters. Stored encounters are immutable.
type EncounterStore interface {
	// SaveEncounter persists a validated encounter with its ID already assigned.
	// Returns ErrDuplicate if the id is taken.
	SaveEncounter(ctx context.Context, encounter *v1.Encounter) error

	// GetEncounter returns the encounter with the given id, or ErrNotFound.
	GetEncounter(ctx context.Context, id string) (*v1.Encounter, error)

	// ListEncounters returns up to limit summaries, most recently ingested first.
	ListEncounters(ctx context.Context, limit int) ([]v1.EncounterSummary, error)
}
