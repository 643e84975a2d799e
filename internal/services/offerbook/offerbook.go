// Package offerbook queries standing offers from the offer-file exchange.
package offerbook

import (
	"context"

	"github.com/chiaswap/takebot/internal/domain"
)

// Source lists standing offers for a given (offered, requested) asset pair.
// An empty slice means no matches; an error means the transport failed.
type Source interface {
	Offers(ctx context.Context, offeredID, requestedID string) ([]domain.RawOffer, error)
}
