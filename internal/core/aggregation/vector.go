package aggregation

// AggregatedStatsEntry is one row of a view.
type AggregatedStatsEntry struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Healing uint64  `json:"healing"`
	Hits    uint64  `json:"hits"`
	Casts   *uint64 `json:"casts,omitempty"` // only set by data sources that track casts
}

// AggregatedVector is the output shape of every view: rows in insertion order plus
// the largest healing value added so far, which consumers use to scale bars.
type AggregatedVector struct {
	Entries        []AggregatedStatsEntry `json:"entries"`
	HighestHealing uint64                 `json:"highest_healing"`
}

// Add appends a row and raises HighestHealing if needed.
// Callers guarantee ids are unique within one vector.
func (v *AggregatedVector) Add(id uint64, name string, healing, hits uint64, casts *uint64) {
	v.Entries = append(v.Entries, AggregatedStatsEntry{
		ID:      id,
		Name:    name,
		Healing: healing,
		Hits:    hits,
		Casts:   casts,
	})
	v.HighestHealing = max(v.HighestHealing, healing)
}

// Len returns the number of rows.
func (v *AggregatedVector) Len() int {
	return len(v.Entries)
}
