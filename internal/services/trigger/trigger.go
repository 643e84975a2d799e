// Package trigger decides whether a ranked offer crosses the configured
// execution thresholds.
package trigger

import (
	"github.com/shopspring/decimal"

	"github.com/chiaswap/takebot/internal/domain"
)

// Decision classifies a ranked offer.
type Decision int

const (
	// DecisionSkip the deviation does not cross the threshold.
	DecisionSkip Decision = iota
	// DecisionExecute the offer should be taken.
	DecisionExecute
	// DecisionSkipTooLarge the deviation crosses the threshold but the trade
	// exceeds the configured size cap.
	DecisionSkipTooLarge
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionExecute:
		return "execute"
	case DecisionSkipTooLarge:
		return "skip: too large"
	default:
		return "skip: below threshold"
	}
}

// Engine applies threshold and size rules to evaluated offers.
type Engine struct {
	sellTriggerPct decimal.Decimal
	buyTriggerPct  decimal.Decimal
	maxSellSize    decimal.Decimal
	maxBuySize     decimal.Decimal
}

// NewEngine creates a trigger engine. The buy trigger is expected to be
// negative (a discount), the sell trigger positive (a premium).
func NewEngine(sellTriggerPct, buyTriggerPct, maxSellSize, maxBuySize decimal.Decimal) *Engine {
	return &Engine{
		sellTriggerPct: sellTriggerPct,
		buyTriggerPct:  buyTriggerPct,
		maxSellSize:    maxSellSize,
		maxBuySize:     maxBuySize,
	}
}

// Decide returns the decision for one ranked offer. Threshold comparisons are
// inclusive: a deviation exactly at the threshold triggers.
func (e *Engine) Decide(offer domain.EvaluatedOffer) Decision {
	switch offer.Direction {
	case domain.DirectionSellBase:
		if offer.DeviationPct.LessThan(e.sellTriggerPct) {
			return DecisionSkip
		}
		// the taker pays the requested side: base asset
		if offer.TakerPays().GreaterThan(e.maxSellSize) {
			return DecisionSkipTooLarge
		}
	case domain.DirectionBuyBase:
		if offer.DeviationPct.GreaterThan(e.buyTriggerPct) {
			return DecisionSkip
		}
		// the taker pays the requested side: quote asset
		if offer.TakerPays().GreaterThan(e.maxBuySize) {
			return DecisionSkipTooLarge
		}
	default:
		return DecisionSkip
	}

	return DecisionExecute
}
