package offerbook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/chiaswap/takebot/internal/domain"
)

// DexieSource lists offers from a dexie-style REST API.
type DexieSource struct {
	client *resty.Client
}

type dexieOfferSide struct {
	ID     string      `json:"id"`
	Amount json.Number `json:"amount"`
}

type dexieOffer struct {
	ID        string           `json:"id"`
	Offered   []dexieOfferSide `json:"offered"`
	Requested []dexieOfferSide `json:"requested"`
}

type dexieOffersResponse struct {
	Offers []dexieOffer `json:"offers"`
}

// NewDexieSource creates an offer source against the given API base URL.
func NewDexieSource(baseURL string) *DexieSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &DexieSource{client: client}
}

// Offers returns standing offers where offeredID is given away and requestedID
// is asked for. Offers that are not single-asset on both sides are dropped.
func (s *DexieSource) Offers(ctx context.Context, offeredID, requestedID string) ([]domain.RawOffer, error) {
	var result dexieOffersResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("offered", offeredID).
		SetQueryParam("requested", requestedID).
		SetResult(&result).
		Get("/offers")
	if err != nil {
		return nil, errors.Wrapf(err, "fetch offers %s->%s", offeredID, requestedID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("offer book request failed: %s", resp.Status())
	}

	offers := make([]domain.RawOffer, 0, len(result.Offers))
	for _, o := range result.Offers {
		if len(o.Offered) != 1 || len(o.Requested) != 1 {
			continue
		}
		offeredAmt, err := decimal.NewFromString(o.Offered[0].Amount.String())
		if err != nil {
			continue
		}
		requestedAmt, err := decimal.NewFromString(o.Requested[0].Amount.String())
		if err != nil {
			continue
		}
		offers = append(offers, domain.RawOffer{
			ID:              o.ID,
			OfferedID:       o.Offered[0].ID,
			OfferedAmount:   offeredAmt,
			RequestedID:     o.Requested[0].ID,
			RequestedAmount: requestedAmt,
		})
	}

	return offers, nil
}
