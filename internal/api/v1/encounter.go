package v1

import (
	"fmt"
	"time"

	"github.com/aevon-lab/healstats/internal/core/aggregation"
	"github.com/google/uuid"
)

// Encounter is the wire form of one fully collected combat encounter.
// It is what clients upload and what the store persists; the aggregation core
// works on the Snapshot derived from it.
type Encounter struct {
	// ID is assigned by the server when the client leaves it empty.
	ID string `json:"id"`

	// RecordedAt is the client wall clock when the encounter ended.
	RecordedAt time.Time `json:"recorded_at"`

	// IngestedAt is set by the ingestion service, not the client.
	IngestedAt time.Time `json:"ingested_at"`

	// Subgroup is the recording player's squad subgroup; 0 means unassigned.
	Subgroup uint32 `json:"subgroup"`

	// Combat markers in monotonic milliseconds; 0 means the marker was never reached.
	EnteredCombatTime uint64 `json:"entered_combat_time"`
	ExitedCombatTime  uint64 `json:"exited_combat_time"`
	LastHealEvent     uint64 `json:"last_heal_event"`
	LastDamageEvent   uint64 `json:"last_damage_event"`

	Skills []SkillStats `json:"skills"`
	Agents []Agent      `json:"agents"`
}

// SkillStats is everything one skill healed.
type SkillStats struct {
	ID     uint32         `json:"id"`
	Name   string         `json:"name"`
	Agents []AgentHealing `json:"agents"`
}

// AgentHealing is one agent's counters under one skill.
type AgentHealing struct {
	ID           uint64 `json:"id"`
	TotalHealing uint64 `json:"total_healing"`
	Ticks        uint64 `json:"ticks"`
}

// Agent is the identity record of a healed agent.
type Agent struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Subgroup uint32 `json:"subgroup"`
	IsMinion bool   `json:"is_minion"`
}

// EncounterSummary is the listing form of a stored encounter.
type EncounterSummary struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	IngestedAt time.Time `json:"ingested_at"`
	SkillCount int       `json:"skill_count"`
	AgentCount int       `json:"agent_count"`
}

// AssignID gives the encounter a fresh UUID when the client did not provide one.
func (e *Encounter) AssignID() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
}

// Validate checks the document is internally consistent.
func (e *Encounter) Validate() error {
	if e.ID != "" {
		if _, err := uuid.Parse(e.ID); err != nil {
			return fmt.Errorf("id must be a UUID: %w", err)
		}
	}

	if e.EnteredCombatTime == 0 {
		return fmt.Errorf("entered_combat_time is required")
	}
	markers := []struct {
		name  string
		value uint64
	}{
		{"exited_combat_time", e.ExitedCombatTime},
		{"last_heal_event", e.LastHealEvent},
		{"last_damage_event", e.LastDamageEvent},
	}
	for _, m := range markers {
		if m.value != 0 && m.value < e.EnteredCombatTime {
			return fmt.Errorf("%s (%d) is before entered_combat_time (%d)", m.name, m.value, e.EnteredCombatTime)
		}
	}

	skillIDs := make(map[uint32]struct{}, len(e.Skills))
	for _, skill := range e.Skills {
		if _, dup := skillIDs[skill.ID]; dup {
			return fmt.Errorf("duplicate skill id %d", skill.ID)
		}
		skillIDs[skill.ID] = struct{}{}

		agentIDs := make(map[uint64]struct{}, len(skill.Agents))
		for _, agent := range skill.Agents {
			if _, dup := agentIDs[agent.ID]; dup {
				return fmt.Errorf("skill %d: duplicate agent id %d", skill.ID, agent.ID)
			}
			agentIDs[agent.ID] = struct{}{}
		}
	}

	agentIDs := make(map[uint64]struct{}, len(e.Agents))
	for _, agent := range e.Agents {
		if _, dup := agentIDs[agent.ID]; dup {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		agentIDs[agent.ID] = struct{}{}
	}

	return nil
}

// Snapshot converts a validated encounter into the aggregation core's dataset.
// The result shares nothing with e.
func (e *Encounter) Snapshot() *aggregation.Snapshot {
	snapshot := &aggregation.Snapshot{
		SkillsHealing:     make(map[uint32]aggregation.SkillHealing, len(e.Skills)),
		Agents:            make(map[uint64]aggregation.HealedAgent, len(e.Agents)),
		EnteredCombatTime: e.EnteredCombatTime,
		ExitedCombatTime:  e.ExitedCombatTime,
		LastHealEvent:     e.LastHealEvent,
		LastDamageEvent:   e.LastDamageEvent,
		SubGroup:          e.Subgroup,
	}

	for _, skill := range e.Skills {
		healing := make(map[uint64]aggregation.AgentHealing, len(skill.Agents))
		for _, agent := range skill.Agents {
			healing[agent.ID] = aggregation.AgentHealing{
				TotalHealing: agent.TotalHealing,
				Ticks:        agent.Ticks,
			}
		}
		snapshot.SkillsHealing[skill.ID] = aggregation.SkillHealing{
			Name:          skill.Name,
			AgentsHealing: healing,
		}
	}

	for _, agent := range e.Agents {
		snapshot.Agents[agent.ID] = aggregation.HealedAgent{
			Name:     agent.Name,
			Subgroup: agent.Subgroup,
			IsMinion: agent.IsMinion,
		}
	}

	return snapshot
}

// Summary returns the listing form of e.
func (e *Encounter) Summary() EncounterSummary {
	return EncounterSummary{
		ID:         e.ID,
		RecordedAt: e.RecordedAt,
		IngestedAt: e.IngestedAt,
		SkillCount: len(e.Skills),
		AgentCount: len(e.Agents),
	}
}
