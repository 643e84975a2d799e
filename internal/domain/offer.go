package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction of a trade from the taker's point of view.
type Direction int

const (
	// DirectionSellBase the taker gives away the base asset at a premium.
	DirectionSellBase Direction = iota
	// DirectionBuyBase the taker acquires the base asset at a discount.
	DirectionBuyBase
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionSellBase:
		return "SELL"
	case DirectionBuyBase:
		return "BUY"
	default:
		return "unknown"
	}
}

// RawOffer is a standing offer as reported by the offer book.
// Only single-asset-per-side offers are considered.
type RawOffer struct {
	ID              string
	OfferedID       string
	OfferedAmount   decimal.Decimal
	RequestedID     string
	RequestedAmount decimal.Decimal
}

// EvaluatedOffer is a RawOffer normalized and priced against the reference
// price. Derived per cycle, never persisted.
type EvaluatedOffer struct {
	Raw RawOffer

	OfferedAmount   decimal.Decimal
	OfferedSymbol   string
	RequestedAmount decimal.Decimal
	RequestedSymbol string

	// UnitPrice quote units per one base unit.
	UnitPrice decimal.Decimal
	// DeviationPct signed percentage difference from the reference price.
	DeviationPct decimal.Decimal
	Direction    Direction
}

// TakerPays returns the amount the taker gives away when accepting the offer:
// the requested side of the offer.
func (e *EvaluatedOffer) TakerPays() decimal.Decimal {
	return e.RequestedAmount
}

// String returns a human-readable one-line summary.
func (e *EvaluatedOffer) String() string {
	return fmt.Sprintf("%s %s %s -> %s %s @ $%s (%s%%)",
		e.Direction, e.OfferedAmount.StringFixed(4), e.OfferedSymbol,
		e.RequestedAmount.StringFixed(4), e.RequestedSymbol,
		e.UnitPrice.StringFixed(4), e.DeviationPct.StringFixed(2))
}
