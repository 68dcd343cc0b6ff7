package aggregation

import (
	"fmt"
	"math"
)

// IndirectHealingSkillID is the reserved id of the synthetic "Healing by Damage Dealt" row.
// It never collides with a real skill id because skill ids are 32-bit.
const IndirectHealingSkillID uint64 = math.MaxUint32 + 1

const (
	// IndirectHealingName is the display name of the indirect healing accumulator row.
	IndirectHealingName = "Healing by Damage Dealt"

	// TotalName is the name of the synthetic entry returned by GetTotal.
	TotalName = "__TOTAL__"

	// millisPerSecond converts snapshot timestamps into seconds.
	millisPerSecond = 1000
)

// SortOrder selects one of the four total orders applied to every view.
type SortOrder int

const (
	AscendingAlphabetical SortOrder = iota
	DescendingAlphabetical
	AscendingSize
	DescendingSize
	sortOrderMax
)

// DataSource selects which primary view GetStats and GetDetails route to.
type DataSource int

const (
	DataSourceTotals DataSource = iota
	DataSourceSkills
	DataSourceAgents
	dataSourceMax
)

// CombatEndCondition selects which timestamp ends the encounter for GetCombatTime.
type CombatEndCondition int

const (
	CombatExit CombatEndCondition = iota
	LastHealEvent
	combatEndConditionMax
)

// GroupFilter indexes the fixed rows of the group filter totals view.
type GroupFilter int

const (
	GroupFilterGroup GroupFilter = iota
	GroupFilterSquad
	GroupFilterAllExcludingMinions
	GroupFilterAll
	groupFilterMax
)

var sortOrderNames = map[SortOrder]string{
	AscendingAlphabetical:  "ascending_alphabetical",
	DescendingAlphabetical: "descending_alphabetical",
	AscendingSize:          "ascending_size",
	DescendingSize:         "descending_size",
}

var dataSourceNames = map[DataSource]string{
	DataSourceTotals: "totals",
	DataSourceSkills: "skills",
	DataSourceAgents: "agents",
}

var combatEndConditionNames = map[CombatEndCondition]string{
	CombatExit:    "combat_exit",
	LastHealEvent: "last_heal_event",
}

var groupFilterNames = [groupFilterMax]string{
	"Group",
	"Squad",
	"All (Excluding Summons)",
	"All (Including Summons)",
}

func (s SortOrder) String() string {
	if name, ok := sortOrderNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortOrder(%d)", int(s))
}

func (d DataSource) String() string {
	if name, ok := dataSourceNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DataSource(%d)", int(d))
}

func (c CombatEndCondition) String() string {
	if name, ok := combatEndConditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CombatEndCondition(%d)", int(c))
}

func (g GroupFilter) String() string {
	if g >= 0 && g < groupFilterMax {
		return groupFilterNames[g]
	}
	return fmt.Sprintf("GroupFilter(%d)", int(g))
}

// ParseSortOrder maps a configuration string onto a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	for order, name := range sortOrderNames {
		if name == s {
			return order, nil
		}
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// ParseDataSource maps a configuration string onto a DataSource.
func ParseDataSource(s string) (DataSource, error) {
	for source, name := range dataSourceNames {
		if name == s {
			return source, nil
		}
	}
	return 0, fmt.Errorf("unknown data source %q", s)
}

// ParseCombatEndCondition maps a configuration string onto a CombatEndCondition.
func ParseCombatEndCondition(s string) (CombatEndCondition, error) {
	for cond, name := range combatEndConditionNames {
		if name == s {
			return cond, nil
		}
	}
	return 0, fmt.Errorf("unknown combat end condition %q", s)
}

// Options is the view configuration for one aggregation pass.
// It is read-only for the lifetime of an AggregatedStats instance.
type Options struct {
	SortOrder          SortOrder
	DataSource         DataSource
	CombatEndCondition CombatEndCondition

	ExcludeGroup    bool
	ExcludeOffGroup bool
	ExcludeOffSquad bool
	ExcludeMinions  bool
	ExcludeUnmapped bool
}

// DefaultOptions returns the options a fresh window starts with.
func DefaultOptions() Options {
	return Options{
		SortOrder:          DescendingSize,
		DataSource:         DataSourceSkills,
		CombatEndCondition: CombatExit,
		ExcludeGroup:       false,
		ExcludeOffGroup:    false,
		ExcludeOffSquad:    true,
		ExcludeMinions:     true,
		ExcludeUnmapped:    true,
	}
}

// Validate reports whether every enum choice is in range.
func (o Options) Validate() error {
	if o.SortOrder < 0 || o.SortOrder >= sortOrderMax {
		return fmt.Errorf("invalid sort order %d", int(o.SortOrder))
	}
	if o.DataSource < 0 || o.DataSource >= dataSourceMax {
		return fmt.Errorf("invalid data source %d", int(o.DataSource))
	}
	if o.CombatEndCondition < 0 || o.CombatEndCondition >= combatEndConditionMax {
		return fmt.Errorf("invalid combat end condition %d", int(o.CombatEndCondition))
	}
	return nil
}

// Key is a stable string form of the options, used to cache stats instances.
func (o Options) Key() string {
	return fmt.Sprintf("%d:%d:%d:%t:%t:%t:%t:%t",
		o.SortOrder, o.DataSource, o.CombatEndCondition,
		o.ExcludeGroup, o.ExcludeOffGroup, o.ExcludeOffSquad, o.ExcludeMinions, o.ExcludeUnmapped)
}

// AgentHealing holds the counters of one agent under one skill.
type AgentHealing struct {
	TotalHealing uint64
	Ticks        uint64
}

// SkillHealing holds everything one skill did during the encounter.
type SkillHealing struct {
	Name          string
	AgentsHealing map[uint64]AgentHealing // keyed by agent id
}

// HealedAgent is the identity record of an agent seen during the encounter.
type HealedAgent struct {
	Name     string
	Subgroup uint32
	IsMinion bool
}

// Snapshot is the fully formed dataset of one encounter.
// Timestamps are monotonic milliseconds; zero means "not set".
type Snapshot struct {
	SkillsHealing map[uint32]SkillHealing // keyed by skill id
	Agents        map[uint64]HealedAgent  // keyed by agent id

	EnteredCombatTime uint64
	ExitedCombatTime  uint64
	LastHealEvent     uint64
	LastDamageEvent   uint64

	// SubGroup is the local player's subgroup; 0 means unassigned.
	SubGroup uint32
}
