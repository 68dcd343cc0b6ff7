package aggregation

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// rateDecimals is how many fractional digits per-second rates are rounded to.
const rateDecimals = 2

// PerSecond divides value by a duration given in milliseconds using exact
// decimal arithmetic. A zero duration yields zero instead of dividing by it.
func PerSecond(value, durationMillis uint64) decimal.Decimal {
	if durationMillis == 0 {
		return decimal.Zero
	}
	v := decimalFromUint64(value).Mul(decimal.NewFromInt(millisPerSecond))
	return v.Div(decimalFromUint64(durationMillis)).Round(rateDecimals)
}

// HealingPerSecond returns entry's healing spread over the encounter's combat time.
func (s *AggregatedStats) HealingPerSecond(entry AggregatedStatsEntry) decimal.Decimal {
	return PerSecond(entry.Healing, s.combatMillis())
}

// HitsPerSecond returns entry's hit count spread over the encounter's combat time.
func (s *AggregatedStats) HitsPerSecond(entry AggregatedStatsEntry) decimal.Decimal {
	return PerSecond(entry.Hits, s.combatMillis())
}

func decimalFromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
