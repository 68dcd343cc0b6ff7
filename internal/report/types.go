package report

import (
	"github.com/aevon-lab/healstats/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// ViewQuery is the set of display options a client may override per request.
// Unset fields fall back to the configured view defaults.
type ViewQuery struct {
	SortOrder          string `form:"sort_order"`
	DataSource         string `form:"data_source"`
	CombatEndCondition string `form:"combat_end_condition"`
	ExcludeGroup       *bool  `form:"exclude_group"`
	ExcludeOffGroup    *bool  `form:"exclude_off_group"`
	ExcludeOffSquad    *bool  `form:"exclude_off_squad"`
	ExcludeMinions     *bool  `form:"exclude_minions"`
	ExcludeUnmapped    *bool  `form:"exclude_unmapped"`
	Debug              *bool  `form:"debug"`
}

// EntryView is one aggregated row with its per-second rates.
type EntryView struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	Healing          uint64          `json:"healing"`
	Hits             uint64          `json:"hits"`
	Casts            *uint64         `json:"casts,omitempty"`
	HealingPerSecond decimal.Decimal `json:"healing_per_second"`
	HitsPerSecond    decimal.Decimal `json:"hits_per_second"`
}

// StatsResponse is the body of every vector-shaped report.
type StatsResponse struct {
	EncounterID        string      `json:"encounter_id"`
	View               string      `json:"view"`
	SortOrder          string      `json:"sort_order"`
	CombatEndCondition string      `json:"combat_end_condition"`
	CombatTimeSeconds  float64     `json:"combat_time_seconds"`
	HighestHealing     uint64      `json:"highest_healing"`
	Entries            []EntryView `json:"entries"`
}

// TotalResponse is the body of the total report.
type TotalResponse struct {
	EncounterID       string    `json:"encounter_id"`
	CombatTimeSeconds float64   `json:"combat_time_seconds"`
	Total             EntryView `json:"total"`
}

func entryView(stats *aggregation.AggregatedStats, entry aggregation.AggregatedStatsEntry) EntryView {
	return EntryView{
		ID:               entry.ID,
		Name:             entry.Name,
		Healing:          entry.Healing,
		Hits:             entry.Hits,
		Casts:            entry.Casts,
		HealingPerSecond: stats.HealingPerSecond(entry),
		HitsPerSecond:    stats.HitsPerSecond(entry),
	}
}

func statsResponse(encounterID, view string, stats *aggregation.AggregatedStats, vector *aggregation.AggregatedVector) *StatsResponse {
	opts := stats.Options()
	entries := make([]EntryView, 0, vector.Len())
	for _, entry := range vector.Entries {
		entries = append(entries, entryView(stats, entry))
	}
	return &StatsResponse{
		EncounterID:        encounterID,
		View:               view,
		SortOrder:          opts.SortOrder.String(),
		CombatEndCondition: opts.CombatEndCondition.String(),
		CombatTimeSeconds:  stats.GetCombatTime(),
		HighestHealing:     vector.HighestHealing,
		Entries:            entries,
	}
}
