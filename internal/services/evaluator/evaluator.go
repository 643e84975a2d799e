// Package evaluator normalizes raw offers and prices them against the
// reference market price.
package evaluator

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/chiaswap/takebot/internal/domain"
)

var (
	// ErrUnpriceable the offer has a non-positive amount on either side.
	ErrUnpriceable = errors.New("offer is unpriceable")
	// ErrNotTradingPair the offer does not exchange the configured pair.
	ErrNotTradingPair = errors.New("offer does not match the trading pair")
)

var hundred = decimal.NewFromInt(100)

// Evaluator converts raw offers into evaluated ones for the configured pair.
type Evaluator struct {
	registry    *domain.Registry
	baseSymbol  string
	quoteSymbol string
}

// New creates an evaluator for the given asset pair.
func New(registry *domain.Registry, baseID, quoteID string) *Evaluator {
	return &Evaluator{
		registry:    registry,
		baseSymbol:  registry.Resolve(baseID).Symbol,
		quoteSymbol: registry.Resolve(quoteID).Symbol,
	}
}

// Evaluate normalizes the offer, resolves display symbols, computes the unit
// price (quote units per base unit) and its percentage deviation from the
// reference price. The reference price must be strictly positive.
func (e *Evaluator) Evaluate(raw domain.RawOffer, refPrice decimal.Decimal) (domain.EvaluatedOffer, error) {
	if refPrice.LessThanOrEqual(decimal.Zero) {
		return domain.EvaluatedOffer{}, errors.New("reference price must be positive")
	}

	var direction domain.Direction
	switch {
	case e.matches(raw.OfferedID, e.baseSymbol) && e.matches(raw.RequestedID, e.quoteSymbol):
		// maker gives base, asks quote: the taker buys the base asset
		direction = domain.DirectionBuyBase
	case e.matches(raw.OfferedID, e.quoteSymbol) && e.matches(raw.RequestedID, e.baseSymbol):
		direction = domain.DirectionSellBase
	default:
		return domain.EvaluatedOffer{}, ErrNotTradingPair
	}

	offeredAmt := e.registry.NormalizeAmount(raw.OfferedID, raw.OfferedAmount)
	requestedAmt := e.registry.NormalizeAmount(raw.RequestedID, raw.RequestedAmount)

	if offeredAmt.LessThanOrEqual(decimal.Zero) || requestedAmt.LessThanOrEqual(decimal.Zero) {
		return domain.EvaluatedOffer{}, ErrUnpriceable
	}

	var unitPrice decimal.Decimal
	if direction == domain.DirectionBuyBase {
		unitPrice = requestedAmt.Div(offeredAmt)
	} else {
		unitPrice = offeredAmt.Div(requestedAmt)
	}

	deviation := unitPrice.Sub(refPrice).Div(refPrice).Mul(hundred)

	return domain.EvaluatedOffer{
		Raw:             raw,
		OfferedAmount:   offeredAmt,
		OfferedSymbol:   e.registry.Resolve(raw.OfferedID).Symbol,
		RequestedAmount: requestedAmt,
		RequestedSymbol: e.registry.Resolve(raw.RequestedID).Symbol,
		UnitPrice:       unitPrice,
		DeviationPct:    deviation,
		Direction:       direction,
	}, nil
}

// EvaluateAll evaluates every offer against a single reference price sampled
// once per cycle, silently dropping offers that do not match the pair or
// cannot be priced.
func (e *Evaluator) EvaluateAll(raws []domain.RawOffer, refPrice decimal.Decimal) []domain.EvaluatedOffer {
	out := make([]domain.EvaluatedOffer, 0, len(raws))
	for _, raw := range raws {
		ev, err := e.Evaluate(raw, refPrice)
		if err != nil {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// matches reports whether the offer-book id names the given pair side. Ids are
// resolved through the registry first, so an alias of a configured asset (e.g.
// a CAT hex id mapped to the same symbol) matches too.
func (e *Evaluator) matches(id, wantSymbol string) bool {
	return strings.EqualFold(e.registry.Resolve(id).Symbol, wantSymbol)
}
