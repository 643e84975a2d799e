// Package wallet integrates the external wallet process that settles trades
// and reports holdings.
package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Wallet accepts offers and reports the base-asset balance. Settlement is
// delegated entirely to the external wallet process.
type Wallet interface {
	// TakeOffer submits the offer payload at the given path for acceptance.
	TakeOffer(ctx context.Context, payloadPath string) error
	// Balance returns the current base-asset holdings.
	Balance(ctx context.Context) (decimal.Decimal, error)
}
