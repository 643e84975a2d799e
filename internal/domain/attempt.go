package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome of a trade attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
)

// TradeAttempt records one execution attempt against an offer.
// Appended to the execution journal and the attempt store, never mutated.
type TradeAttempt struct {
	OfferID         string          `json:"offer_id"`
	Direction       Direction       `json:"direction"`
	OfferedAmount   decimal.Decimal `json:"offered_amount"`
	OfferedSymbol   string          `json:"offered_symbol"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	RequestedSymbol string          `json:"requested_symbol"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DeviationPct    decimal.Decimal `json:"deviation_pct"`
	Timestamp       time.Time       `json:"timestamp"`
	Outcome         Outcome         `json:"outcome"`
	Error           string          `json:"error,omitempty"`
}
