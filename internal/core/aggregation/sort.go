package aggregation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// entryComparator returns the comparison function for a sort order.
func entryComparator(order SortOrder) func(a, b AggregatedStatsEntry) int {
	switch order {
	case AscendingAlphabetical:
		return func(a, b AggregatedStatsEntry) int { return strings.Compare(a.Name, b.Name) }
	case DescendingAlphabetical:
		return func(a, b AggregatedStatsEntry) int { return strings.Compare(b.Name, a.Name) }
	case AscendingSize:
		return func(a, b AggregatedStatsEntry) int { return cmp.Compare(a.Healing, b.Healing) }
	case DescendingSize:
		return func(a, b AggregatedStatsEntry) int { return cmp.Compare(b.Healing, a.Healing) }
	default:
		panic(fmt.Sprintf("aggregation: unsupported sort order %d", int(order)))
	}
}

// SortEntries orders entries in place. The sort is stable, so sorting an
// already sorted slice leaves it untouched.
func SortEntries(entries []AggregatedStatsEntry, order SortOrder) {
	slices.SortStableFunc(entries, entryComparator(order))
}
