package aggregation

// groupFilterPresets are the fixed filters behind each GroupFilterTotals row.
// Every preset drops unmapped agents.
var groupFilterPresets = [groupFilterMax]Options{
	GroupFilterGroup: {
		ExcludeGroup:    false,
		ExcludeOffGroup: true,
		ExcludeOffSquad: true,
		ExcludeMinions:  true,
		ExcludeUnmapped: true,
	},
	GroupFilterSquad: {
		ExcludeGroup:    false,
		ExcludeOffGroup: false,
		ExcludeOffSquad: true,
		ExcludeMinions:  true,
		ExcludeUnmapped: true,
	},
	GroupFilterAllExcludingMinions: {
		ExcludeGroup:    false,
		ExcludeOffGroup: false,
		ExcludeOffSquad: false,
		ExcludeMinions:  true,
		ExcludeUnmapped: true,
	},
	GroupFilterAll: {
		ExcludeGroup:    false,
		ExcludeOffGroup: false,
		ExcludeOffSquad: false,
		ExcludeMinions:  false,
		ExcludeUnmapped: true,
	},
}

// GroupFilterPreset returns the filter options used for one GroupFilterTotals row.
func GroupFilterPreset(g GroupFilter) Options {
	return groupFilterPresets[g]
}

// filterMatches reports whether an agent is excluded by filter.
// agent is nil for agents missing from the snapshot's agent map.
//
// The rules form an exclusive chain: the first rule whose condition holds decides,
// so an unmapped agent is only ever judged by ExcludeUnmapped.
func filterMatches(agent *HealedAgent, localSubgroup uint32, filter Options) bool {
	switch {
	case agent == nil:
		return filter.ExcludeUnmapped
	case agent.IsMinion:
		return filter.ExcludeMinions
	case agent.Subgroup == 0 && localSubgroup != 0:
		return filter.ExcludeOffSquad
	case agent.Subgroup != 0 && agent.Subgroup != localSubgroup:
		return filter.ExcludeOffGroup
	case agent.Subgroup == localSubgroup:
		return filter.ExcludeGroup
	default:
		return false
	}
}

// lookupAgent returns the agent record for id, or nil when it is unmapped.
func (s *AggregatedStats) lookupAgent(agentID uint64) *HealedAgent {
	agent, ok := s.source.Agents[agentID]
	if !ok {
		return nil
	}
	return &agent
}

// Filter reports whether agentID is excluded under the active options.
func (s *AggregatedStats) Filter(agentID uint64) bool {
	return s.filterWith(agentID, s.options)
}

func (s *AggregatedStats) filterWith(agentID uint64, filter Options) bool {
	return filterMatches(s.lookupAgent(agentID), s.source.SubGroup, filter)
}
