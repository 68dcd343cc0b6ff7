package aggregation

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

// AggregatedStats turns one encounter snapshot into display-ready views.
//
// Every view is computed on first access and memoized for the lifetime of the
// instance. The snapshot and options never change after construction, so no
// view is ever invalidated. All accessors are safe for concurrent use; the
// returned vectors are shared and must be treated as read-only.
type AggregatedStats struct {
	source     *Snapshot
	options    Options
	classifier SkillClassifier
	debugMode  bool

	allAgents         func() map[uint64]AgentHealing
	agents            func() *AggregatedVector
	skills            func() *AggregatedVector
	total             func() *AggregatedStatsEntry
	groupFilterTotals func() *AggregatedVector
	combatMillis      func() uint64

	agentDetails *detailCache
	skillDetails *detailCache
}

// NewAggregatedStats takes ownership of source; the caller must not modify it afterwards.
// options must be valid (see Options.Validate); an invalid value is a programming error.
// A nil classifier treats every skill as direct healing.
func NewAggregatedStats(source *Snapshot, options Options, classifier SkillClassifier, debugMode bool) *AggregatedStats {
	if source == nil {
		panic("aggregation: source snapshot must not be nil")
	}
	if err := options.Validate(); err != nil {
		panic("aggregation: " + err.Error())
	}
	if classifier == nil {
		classifier = NoIndirectHealing
	}

	s := &AggregatedStats{
		source:       source,
		options:      options,
		classifier:   classifier,
		debugMode:    debugMode,
		agentDetails: newDetailCache(),
		skillDetails: newDetailCache(),
	}
	s.allAgents = sync.OnceValue(s.computeAllAgents)
	s.agents = sync.OnceValue(s.computeAgents)
	s.skills = sync.OnceValue(s.computeSkills)
	s.total = sync.OnceValue(s.computeTotal)
	s.groupFilterTotals = sync.OnceValue(s.computeGroupFilterTotals)
	s.combatMillis = sync.OnceValue(s.computeCombatMillis)
	return s
}

// Options returns the view configuration this instance aggregates with.
func (s *AggregatedStats) Options() Options {
	return s.options
}

// GetTotal returns one synthetic entry summing the Skills view.
func (s *AggregatedStats) GetTotal() *AggregatedStatsEntry {
	return s.total()
}

// GetStats routes a data source to its primary view.
func (s *AggregatedStats) GetStats(source DataSource) *AggregatedVector {
	switch source {
	case DataSourceSkills:
		return s.GetSkills()
	case DataSourceAgents:
		return s.GetAgents()
	case DataSourceTotals:
		fallthrough
	default:
		return s.GetGroupFilterTotals()
	}
}

// GetDetails routes a data source to its drill-down view. For skills, id is a skill
// id and the result lists the agents that skill healed; otherwise id is an agent id
// and the result lists the skills that healed it.
func (s *AggregatedStats) GetDetails(source DataSource, id uint64) *AggregatedVector {
	switch source {
	case DataSourceSkills:
		return s.GetSkillDetails(id)
	case DataSourceAgents:
		fallthrough
	default:
		return s.GetAgentDetails(id)
	}
}

// GetCombatTime returns the encounter duration in seconds.
func (s *AggregatedStats) GetCombatTime() float64 {
	return float64(s.combatMillis()) / millisPerSecond
}

// computeCombatMillis picks the end timestamp for the configured end condition and
// returns the time spent in combat in snapshot units.
func (s *AggregatedStats) computeCombatMillis() uint64 {
	src := s.source

	var end uint64
	switch {
	case s.options.CombatEndCondition == CombatExit && src.ExitedCombatTime != 0:
		end = src.ExitedCombatTime
	case s.options.CombatEndCondition == LastHealEvent && src.LastHealEvent != 0:
		end = src.LastHealEvent
	default:
		// No qualifying event yet; entered combat time is the floor.
		end = max(src.EnteredCombatTime, src.LastHealEvent, src.LastDamageEvent)
	}

	if src.EnteredCombatTime > end {
		slog.Warn("Combat end precedes combat start",
			"entered_combat_time", src.EnteredCombatTime,
			"end_time", end,
			"end_condition", s.options.CombatEndCondition.String())
		return 0
	}

	return end - src.EnteredCombatTime
}

// GetAgents returns one row per agent passing the active filter.
func (s *AggregatedStats) GetAgents() *AggregatedVector {
	return s.agents()
}

// GetSkills returns one row per skill, summed over the agents passing the active filter.
func (s *AggregatedStats) GetSkills() *AggregatedVector {
	return s.skills()
}

// GetAgentDetails returns the skills that healed agentID. The active filter is not
// applied: an explicit drill-down always shows everything for that agent.
func (s *AggregatedStats) GetAgentDetails(agentID uint64) *AggregatedVector {
	return s.agentDetails.getOrCompute(agentID, func() *AggregatedVector {
		return s.computeAgentDetails(agentID)
	})
}

// GetSkillDetails returns the filtered agents healed by skillID.
func (s *AggregatedStats) GetSkillDetails(skillID uint64) *AggregatedVector {
	return s.skillDetails.getOrCompute(skillID, func() *AggregatedVector {
		return s.computeSkillDetails(skillID)
	})
}

// GetGroupFilterTotals returns the total healing seen by each fixed group scope.
func (s *AggregatedStats) GetGroupFilterTotals() *AggregatedVector {
	return s.groupFilterTotals()
}

func (s *AggregatedStats) computeTotal() *AggregatedStatsEntry {
	var healing, hits uint64
	for _, entry := range s.GetSkills().Entries {
		healing += entry.Healing
		hits += entry.Hits
	}
	return &AggregatedStatsEntry{ID: 0, Name: TotalName, Healing: healing, Hits: hits}
}

func (s *AggregatedStats) computeAllAgents() map[uint64]AgentHealing {
	merged := make(map[uint64]AgentHealing)
	for _, skill := range s.source.SkillsHealing {
		for agentID, agent := range skill.AgentsHealing {
			sum := merged[agentID]
			sum.TotalHealing += agent.TotalHealing
			sum.Ticks += agent.Ticks
			merged[agentID] = sum
		}
	}
	return merged
}

func (s *AggregatedStats) computeAgents() *AggregatedVector {
	result := &AggregatedVector{}
	for agentID, agent := range s.allAgents() {
		if s.Filter(agentID) {
			continue
		}
		result.Add(agentID, s.agentName(agentID), agent.TotalHealing, agent.Ticks, nil)
	}
	SortEntries(result.Entries, s.options.SortOrder)
	return result
}

func (s *AggregatedStats) computeSkills() *AggregatedVector {
	result := &AggregatedVector{}
	var indirect AgentHealing

	for skillID, skill := range s.source.SkillsHealing {
		var sum AgentHealing
		for agentID, agent := range skill.AgentsHealing {
			if s.Filter(agentID) {
				continue
			}
			sum.TotalHealing += agent.TotalHealing
			sum.Ticks += agent.Ticks
		}

		isIndirect := s.isIndirectHealing(skillID, skill.Name)
		if isIndirect {
			indirect.TotalHealing += sum.TotalHealing
			indirect.Ticks += sum.Ticks
			if !s.debugMode {
				continue
			}
		}

		result.Add(uint64(skillID), s.skillName(skillID, skill.Name, isIndirect), sum.TotalHealing, sum.Ticks, nil)
	}

	addIndirectHealing(result, indirect)
	SortEntries(result.Entries, s.options.SortOrder)
	return result
}

func (s *AggregatedStats) computeAgentDetails(agentID uint64) *AggregatedVector {
	result := &AggregatedVector{}
	var indirect AgentHealing

	for skillID, skill := range s.source.SkillsHealing {
		agent, ok := skill.AgentsHealing[agentID]
		if !ok {
			continue
		}

		isIndirect := s.isIndirectHealing(skillID, skill.Name)
		if isIndirect {
			indirect.TotalHealing += agent.TotalHealing
			indirect.Ticks += agent.Ticks
			if !s.debugMode {
				continue
			}
		}

		result.Add(uint64(skillID), s.skillName(skillID, skill.Name, isIndirect), agent.TotalHealing, agent.Ticks, nil)
	}

	addIndirectHealing(result, indirect)
	SortEntries(result.Entries, s.options.SortOrder)
	return result
}

func (s *AggregatedStats) computeSkillDetails(skillID uint64) *AggregatedVector {
	result := &AggregatedVector{}

	skill, ok := s.lookupSkill(skillID)
	if !ok {
		slog.Warn("Skill missing from snapshot", "skill_id", skillID)
		return result
	}

	for agentID, agent := range skill.AgentsHealing {
		if s.Filter(agentID) {
			continue
		}
		result.Add(agentID, s.agentName(agentID), agent.TotalHealing, agent.Ticks, nil)
	}

	SortEntries(result.Entries, s.options.SortOrder)
	return result
}

func (s *AggregatedStats) computeGroupFilterTotals() *AggregatedVector {
	result := &AggregatedVector{Entries: make([]AggregatedStatsEntry, 0, groupFilterMax)}
	for g := GroupFilter(0); g < groupFilterMax; g++ {
		result.Add(uint64(g), g.String(), 0, 0, nil)
	}

	for agentID, agent := range s.allAgents() {
		mapped := s.lookupAgent(agentID)
		for g := GroupFilter(0); g < groupFilterMax; g++ {
			if filterMatches(mapped, s.source.SubGroup, groupFilterPresets[g]) {
				continue
			}
			result.Entries[g].Healing += agent.TotalHealing
			result.Entries[g].Hits += agent.Ticks
		}
	}

	result.HighestHealing = 0
	for _, entry := range result.Entries {
		result.HighestHealing = max(result.HighestHealing, entry.Healing)
	}
	return result
}

// lookupSkill finds a skill by a widened id; ids outside the 32-bit range never exist.
func (s *AggregatedStats) lookupSkill(skillID uint64) (SkillHealing, bool) {
	if skillID > uint64(^uint32(0)) {
		return SkillHealing{}, false
	}
	skill, ok := s.source.SkillsHealing[uint32(skillID)]
	return skill, ok
}

func (s *AggregatedStats) isIndirectHealing(skillID uint32, name string) bool {
	if !s.classifier.IsSkillIndirectHealing(skillID, name) {
		return false
	}
	slog.Debug("Translating skill to indirect healing", "skill_id", skillID, "skill_name", name)
	return true
}

func (s *AggregatedStats) agentName(agentID uint64) string {
	agent := s.lookupAgent(agentID)

	if !s.debugMode {
		if agent == nil {
			slog.Debug("Couldn't find a name for agent", "agent_id", agentID)
			return strconv.FormatUint(agentID, 10)
		}
		return agent.Name
	}

	if agent == nil {
		return fmt.Sprintf("%d ; (UNMAPPED)", agentID)
	}
	minion := 0
	if agent.IsMinion {
		minion = 1
	}
	return fmt.Sprintf("%d ; %d ; %d ; %s", agentID, agent.Subgroup, minion, agent.Name)
}

func (s *AggregatedStats) skillName(skillID uint32, name string, isIndirect bool) string {
	if !s.debugMode {
		return name
	}
	prefix := ""
	if isIndirect {
		prefix = "(INDIRECT) ; "
	}
	return fmt.Sprintf("%s%d ; %s", prefix, skillID, name)
}

func addIndirectHealing(v *AggregatedVector, indirect AgentHealing) {
	if indirect.TotalHealing == 0 && indirect.Ticks == 0 {
		return
	}
	v.Add(IndirectHealingSkillID, IndirectHealingName, indirect.TotalHealing, indirect.Ticks, nil)
}
