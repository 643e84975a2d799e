package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer returns the current reference market price of the base asset in USD.
type Pricer interface {
	Price(ctx context.Context) (decimal.Decimal, error)
}
