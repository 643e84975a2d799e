package ranker

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chiaswap/takebot/internal/domain"
)

func offer(id string, direction domain.Direction, deviation string) domain.EvaluatedOffer {
	return domain.EvaluatedOffer{
		Raw:          domain.RawOffer{ID: id},
		Direction:    direction,
		DeviationPct: decimal.RequireFromString(deviation),
	}
}

func ids(offers []domain.EvaluatedOffer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Raw.ID)
	}
	return out
}

func TestRankPartitionsAndOrders(t *testing.T) {
	offers := []domain.EvaluatedOffer{
		offer("s1", domain.DirectionSellBase, "1.0"),
		offer("b1", domain.DirectionBuyBase, "-0.2"),
		offer("s2", domain.DirectionSellBase, "6.5"),
		offer("b2", domain.DirectionBuyBase, "-2.0"),
		offer("s3", domain.DirectionSellBase, "-0.5"),
		offer("b3", domain.DirectionBuyBase, "0.3"),
	}

	ranked := Rank(offers, 5)

	require.Equal(t, []string{"s2", "s1", "s3"}, ids(ranked.SellBase), "highest premium first")
	require.Equal(t, []string{"b2", "b1", "b3"}, ids(ranked.BuyBase), "deepest discount first")
}

func TestRankOrderingProperties(t *testing.T) {
	offers := []domain.EvaluatedOffer{
		offer("a", domain.DirectionSellBase, "2.0"),
		offer("b", domain.DirectionSellBase, "7.1"),
		offer("c", domain.DirectionSellBase, "-1.0"),
		offer("d", domain.DirectionSellBase, "0.0"),
		offer("e", domain.DirectionBuyBase, "-0.1"),
		offer("f", domain.DirectionBuyBase, "-5.0"),
		offer("g", domain.DirectionBuyBase, "2.2"),
	}

	ranked := Rank(offers, 0)

	for i := 1; i < len(ranked.SellBase); i++ {
		require.False(t, ranked.SellBase[i].DeviationPct.GreaterThan(ranked.SellBase[i-1].DeviationPct),
			"sell ordering must be non-increasing")
	}
	for i := 1; i < len(ranked.BuyBase); i++ {
		require.False(t, ranked.BuyBase[i].DeviationPct.LessThan(ranked.BuyBase[i-1].DeviationPct),
			"buy ordering must be non-decreasing")
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	var offers []domain.EvaluatedOffer
	for _, d := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		offers = append(offers, offer("s"+d, domain.DirectionSellBase, d))
	}

	ranked := Rank(offers, 5)
	require.Len(t, ranked.SellBase, 5)
	require.Equal(t, "s7", ranked.SellBase[0].Raw.ID)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	offers := []domain.EvaluatedOffer{
		offer("first", domain.DirectionSellBase, "2.0"),
		offer("second", domain.DirectionSellBase, "2.0"),
		offer("third", domain.DirectionSellBase, "2.0"),
	}

	ranked := Rank(offers, 5)
	require.Equal(t, []string{"first", "second", "third"}, ids(ranked.SellBase))
}

func TestRankEmptyInput(t *testing.T) {
	ranked := Rank(nil, 5)
	require.Empty(t, ranked.SellBase)
	require.Empty(t, ranked.BuyBase)
}
