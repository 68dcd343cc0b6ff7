// Package memory is an in-memory EncounterStore for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/healstats/internal/api/v1"
	"github.com/aevon-lab/healstats/internal/core/storage"
)

// Store keeps encounters in a map. Everything is lost on restart.
type Store struct {
	mu         sync.RWMutex
	encounters map[string]*v1.Encounter
}

// NewStore creates an empty in-memory encounter store.
func NewStore() *Store {
	return &Store{
		encounters: make(map[string]*v1.Encounter),
	}
}

func (s *Store) SaveEncounter(_ context.Context, encounter *v1.Encounter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.encounters[encounter.ID]; exists {
		return storage.ErrDuplicate
	}

	s.encounters[encounter.ID] = cloneEncounter(encounter)
	return nil
}

func (s *Store) GetEncounter(_ context.Context, id string) (*v1.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.encounters[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy to prevent external modification
	return cloneEncounter(e), nil
}

func (s *Store) ListEncounters(_ context.Context, limit int) ([]v1.EncounterSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]v1.EncounterSummary, 0, len(s.encounters))
	for _, e := range s.encounters {
		result = append(result, e.Summary())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].IngestedAt.Equal(result[j].IngestedAt) {
			return result[i].IngestedAt.After(result[j].IngestedAt)
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Ping always succeeds; it lets the server health check treat every store alike.
func (s *Store) Ping(context.Context) error {
	return nil
}

func cloneEncounter(e *v1.Encounter) *v1.Encounter {
	c := *e
	c.Skills = make([]v1.SkillStats, len(e.Skills))
	for i, skill := range e.Skills {
		c.Skills[i] = skill
		c.Skills[i].Agents = append([]v1.AgentHealing(nil), skill.Agents...)
	}
	c.Agents = append([]v1.Agent(nil), e.Agents...)
	return &c
}
