package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterMatches(t *testing.T) {
	none := Options{}

	tests := []struct {
		name     string
		agent    *HealedAgent
		local    uint32
		filter   Options
		excluded bool
	}{
		{name: "unmapped excluded", agent: nil, local: 1, filter: Options{ExcludeUnmapped: true}, excluded: true},
		{name: "unmapped kept", agent: nil, local: 1, filter: none, excluded: false},
		{
			name:     "unmapped never reaches later rules",
			agent:    nil,
			local:    1,
			filter:   Options{ExcludeMinions: true, ExcludeOffSquad: true, ExcludeOffGroup: true, ExcludeGroup: true},
			excluded: false,
		},
		{name: "minion excluded", agent: &HealedAgent{IsMinion: true, Subgroup: 1}, local: 1, filter: Options{ExcludeMinions: true}, excluded: true},
		{
			name:     "minion kept stops the chain",
			agent:    &HealedAgent{IsMinion: true, Subgroup: 1},
			local:    1,
			filter:   Options{ExcludeGroup: true},
			excluded: false,
		},
		{name: "off squad excluded", agent: &HealedAgent{Subgroup: 0}, local: 2, filter: Options{ExcludeOffSquad: true}, excluded: true},
		{
			name:     "off squad kept ignores off group",
			agent:    &HealedAgent{Subgroup: 0},
			local:    2,
			filter:   Options{ExcludeOffGroup: true, ExcludeGroup: true},
			excluded: false,
		},
		{name: "off group excluded", agent: &HealedAgent{Subgroup: 3}, local: 2, filter: Options{ExcludeOffGroup: true}, excluded: true},
		{name: "off group kept", agent: &HealedAgent{Subgroup: 3}, local: 2, filter: Options{ExcludeOffSquad: true, ExcludeGroup: true}, excluded: false},
		{name: "own group excluded", agent: &HealedAgent{Subgroup: 2}, local: 2, filter: Options{ExcludeGroup: true}, excluded: true},
		{name: "own group kept", agent: &HealedAgent{Subgroup: 2}, local: 2, filter: Options{ExcludeOffGroup: true, ExcludeOffSquad: true}, excluded: false},
		{
			name:     "both unassigned count as same group",
			agent:    &HealedAgent{Subgroup: 0},
			local:    0,
			filter:   Options{ExcludeOffSquad: true, ExcludeGroup: true},
			excluded: true,
		},
		{
			name:     "local unassigned sees others as off group",
			agent:    &HealedAgent{Subgroup: 4},
			local:    0,
			filter:   Options{ExcludeOffGroup: true},
			excluded: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.excluded, filterMatches(tc.agent, tc.local, tc.filter))
		})
	}
}

func TestFilterMatches_UnmappedSwitchOnlyAffectsUnmapped(t *testing.T) {
	agents := []HealedAgent{
		{Subgroup: 0},
		{Subgroup: 1},
		{Subgroup: 2},
		{Subgroup: 1, IsMinion: true},
		{Subgroup: 0, IsMinion: true},
	}

	for mask := 0; mask < 16; mask++ {
		filter := Options{
			ExcludeGroup:    mask&1 != 0,
			ExcludeOffGroup: mask&2 != 0,
			ExcludeOffSquad: mask&4 != 0,
			ExcludeMinions:  mask&8 != 0,
		}
		withUnmapped := filter
		withUnmapped.ExcludeUnmapped = true

		for _, local := range []uint32{0, 1} {
			for i := range agents {
				agent := agents[i]
				require.Equal(t,
					filterMatches(&agent, local, filter),
					filterMatches(&agent, local, withUnmapped),
					"agent %+v local %d mask %04b", agent, local, mask)
			}
		}
	}
}

func TestGroupFilterPreset(t *testing.T) {
	for g := GroupFilter(0); g < groupFilterMax; g++ {
		require.True(t, GroupFilterPreset(g).ExcludeUnmapped, g.String())
		require.False(t, GroupFilterPreset(g).ExcludeGroup, g.String())
	}

	require.True(t, GroupFilterPreset(GroupFilterGroup).ExcludeOffGroup)
	require.False(t, GroupFilterPreset(GroupFilterSquad).ExcludeOffGroup)
	require.True(t, GroupFilterPreset(GroupFilterSquad).ExcludeOffSquad)
	require.False(t, GroupFilterPreset(GroupFilterAllExcludingMinions).ExcludeOffSquad)
	require.True(t, GroupFilterPreset(GroupFilterAllExcludingMinions).ExcludeMinions)
	require.False(t, GroupFilterPreset(GroupFilterAll).ExcludeMinions)
}

func TestAggregatedStats_Filter(t *testing.T) {
	stats, _ := newSquadStats(t, DefaultOptions(), false)

	require.False(t, stats.Filter(agentAlice))
	require.True(t, stats.Filter(agentBob))
	require.False(t, stats.Filter(agentCarol))
	require.True(t, stats.Filter(agentTurret))
	require.True(t, stats.Filter(agentUnmapped))
}
