package evaluator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chiaswap/takebot/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const wusdcCATID = "fa4a180ac326e67ea289b869e3448256f6af05721f7cf934cb9901baa6b7a99d"

func testEvaluator() *Evaluator {
	registry := domain.NewRegistry([]domain.Asset{
		{ID: "xch", Symbol: "XCH", UnitScale: decimal.NewFromInt(1_000_000_000_000)},
		{ID: "wusdc.b", Symbol: "wUSDC.b", UnitScale: decimal.NewFromInt(1)},
		{ID: wusdcCATID, Symbol: "wUSDC.b", UnitScale: decimal.NewFromInt(1)},
	}, decimal.NewFromInt(1000))
	return New(registry, "xch", "wusdc.b")
}

func TestEvaluateSellDirection(t *testing.T) {
	e := testEvaluator()

	// maker offers quote, asks base: the taker sells the base asset
	raw := domain.RawOffer{
		ID:              "offer-a",
		OfferedID:       "wusdc.b",
		OfferedAmount:   dec("10.65"),
		RequestedID:     "xch",
		RequestedAmount: dec("1"),
	}

	ev, err := e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.Equal(t, domain.DirectionSellBase, ev.Direction)
	require.True(t, ev.UnitPrice.Equal(dec("10.65")), "got %s", ev.UnitPrice)
	require.True(t, ev.DeviationPct.Equal(dec("6.5")), "got %s", ev.DeviationPct)
	require.Equal(t, "wUSDC.b", ev.OfferedSymbol)
	require.Equal(t, "XCH", ev.RequestedSymbol)
}

func TestEvaluateBuyDirection(t *testing.T) {
	e := testEvaluator()

	raw := domain.RawOffer{
		ID:              "offer-b",
		OfferedID:       "xch",
		OfferedAmount:   dec("2"),
		RequestedID:     "wusdc.b",
		RequestedAmount: dec("19.88"),
	}

	ev, err := e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.Equal(t, domain.DirectionBuyBase, ev.Direction)
	require.True(t, ev.UnitPrice.Equal(dec("9.94")), "got %s", ev.UnitPrice)
	require.True(t, ev.DeviationPct.Equal(dec("-0.6")), "got %s", ev.DeviationPct)
}

func TestEvaluateDeviationZeroIffAtMarket(t *testing.T) {
	e := testEvaluator()

	raw := domain.RawOffer{
		ID:              "offer-c",
		OfferedID:       "wusdc.b",
		OfferedAmount:   dec("20"),
		RequestedID:     "xch",
		RequestedAmount: dec("2"),
	}

	ev, err := e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.True(t, ev.DeviationPct.IsZero())

	ev, err = e.Evaluate(raw, dec("9.99"))
	require.NoError(t, err)
	require.False(t, ev.DeviationPct.IsZero())
}

func TestEvaluateRejectsNonPositiveAmounts(t *testing.T) {
	e := testEvaluator()

	for _, raw := range []domain.RawOffer{
		{ID: "zero-offered", OfferedID: "xch", OfferedAmount: decimal.Zero, RequestedID: "wusdc.b", RequestedAmount: dec("5")},
		{ID: "zero-requested", OfferedID: "wusdc.b", OfferedAmount: dec("5"), RequestedID: "xch", RequestedAmount: decimal.Zero},
	} {
		_, err := e.Evaluate(raw, dec("10"))
		require.ErrorIs(t, err, ErrUnpriceable, "offer %s", raw.ID)
	}
}

func TestEvaluateRejectsForeignPair(t *testing.T) {
	e := testEvaluator()

	raw := domain.RawOffer{
		ID:              "foreign",
		OfferedID:       "sbx",
		OfferedAmount:   dec("100"),
		RequestedID:     "xch",
		RequestedAmount: dec("1"),
	}

	_, err := e.Evaluate(raw, dec("10"))
	require.ErrorIs(t, err, ErrNotTradingPair)
}

func TestEvaluateMatchesAssetAliases(t *testing.T) {
	e := testEvaluator()

	// the quote asset named by its CAT id still belongs to the pair
	raw := domain.RawOffer{
		ID:              "alias",
		OfferedID:       wusdcCATID,
		OfferedAmount:   dec("10.65"),
		RequestedID:     "xch",
		RequestedAmount: dec("1"),
	}

	ev, err := e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.Equal(t, domain.DirectionSellBase, ev.Direction)
	require.Equal(t, "wUSDC.b", ev.OfferedSymbol)
	require.True(t, ev.DeviationPct.Equal(dec("6.5")), "got %s", ev.DeviationPct)

	// and on the requested side
	raw = domain.RawOffer{
		ID:              "alias-requested",
		OfferedID:       "xch",
		OfferedAmount:   dec("1"),
		RequestedID:     wusdcCATID,
		RequestedAmount: dec("9.94"),
	}

	ev, err = e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.Equal(t, domain.DirectionBuyBase, ev.Direction)
	require.Equal(t, "wUSDC.b", ev.RequestedSymbol)
}

func TestEvaluateScalesSmallestUnitAmounts(t *testing.T) {
	e := testEvaluator()

	// base amount arrives in smallest units, quote already in display units
	raw := domain.RawOffer{
		ID:              "mojo",
		OfferedID:       "xch",
		OfferedAmount:   dec("2000000000000"),
		RequestedID:     "wusdc.b",
		RequestedAmount: dec("20"),
	}

	ev, err := e.Evaluate(raw, dec("10"))
	require.NoError(t, err)
	require.True(t, ev.OfferedAmount.Equal(dec("2")), "got %s", ev.OfferedAmount)
	require.True(t, ev.UnitPrice.Equal(dec("10")), "got %s", ev.UnitPrice)
}

func TestEvaluateAllDropsBadOffers(t *testing.T) {
	e := testEvaluator()

	raws := []domain.RawOffer{
		{ID: "good", OfferedID: "wusdc.b", OfferedAmount: dec("11"), RequestedID: "xch", RequestedAmount: dec("1")},
		{ID: "zero", OfferedID: "wusdc.b", OfferedAmount: decimal.Zero, RequestedID: "xch", RequestedAmount: dec("1")},
		{ID: "foreign", OfferedID: "sbx", OfferedAmount: dec("1"), RequestedID: "xch", RequestedAmount: dec("1")},
	}

	out := e.EvaluateAll(raws, dec("10"))
	require.Len(t, out, 1)
	require.Equal(t, "good", out[0].Raw.ID)
}

func TestEvaluateRequiresPositiveReferencePrice(t *testing.T) {
	e := testEvaluator()

	raw := domain.RawOffer{
		ID:              "offer",
		OfferedID:       "wusdc.b",
		OfferedAmount:   dec("10"),
		RequestedID:     "xch",
		RequestedAmount: dec("1"),
	}

	_, err := e.Evaluate(raw, decimal.Zero)
	require.Error(t, err)
}
