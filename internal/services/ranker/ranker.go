// Package ranker orders evaluated offers by how favorable they are.
package ranker

import (
	"sort"

	"github.com/chiaswap/takebot/internal/domain"
)

// Ranked holds the per-direction candidate windows for one cycle.
type Ranked struct {
	// SellBase offers ordered by deviation descending (highest premium first).
	SellBase []domain.EvaluatedOffer
	// BuyBase offers ordered by deviation ascending (deepest discount first).
	BuyBase []domain.EvaluatedOffer
}

// Rank partitions offers by direction, orders each set by most favorable
// deviation and truncates to the top k candidates. Ties keep input order.
func Rank(offers []domain.EvaluatedOffer, k int) Ranked {
	var sell, buy []domain.EvaluatedOffer
	for _, o := range offers {
		switch o.Direction {
		case domain.DirectionSellBase:
			sell = append(sell, o)
		case domain.DirectionBuyBase:
			buy = append(buy, o)
		}
	}

	sort.SliceStable(sell, func(i, j int) bool {
		return sell[i].DeviationPct.GreaterThan(sell[j].DeviationPct)
	})
	sort.SliceStable(buy, func(i, j int) bool {
		return buy[i].DeviationPct.LessThan(buy[j].DeviationPct)
	})

	if k > 0 {
		if len(sell) > k {
			sell = sell[:k]
		}
		if len(buy) > k {
			buy = buy[:k]
		}
	}

	return Ranked{SellBase: sell, BuyBase: buy}
}
