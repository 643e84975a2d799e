package pricer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const defaultCoinGeckoURL = "https://api.coingecko.com"

// CoinGeckoPricer fetches the reference price from the CoinGecko simple-price
// endpoint.
type CoinGeckoPricer struct {
	client *resty.Client
	coinID string
}

// NewCoinGeckoPricer creates a pricer for the given CoinGecko coin id.
// An empty baseURL selects the public API.
func NewCoinGeckoPricer(baseURL, coinID string) *CoinGeckoPricer {
	if baseURL == "" {
		baseURL = defaultCoinGeckoURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &CoinGeckoPricer{client: client, coinID: coinID}
}

// Price returns the current USD price of the configured coin.
func (p *CoinGeckoPricer) Price(ctx context.Context) (decimal.Decimal, error) {
	var result map[string]map[string]json.Number

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("ids", p.coinID).
		SetQueryParam("vs_currencies", "usd").
		SetResult(&result).
		Get("/api/v3/simple/price")
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "fetch reference price")
	}
	if resp.IsError() {
		return decimal.Zero, errors.Errorf("reference price request failed: %s", resp.Status())
	}

	quote, ok := result[p.coinID]
	if !ok {
		return decimal.Zero, errors.Errorf("reference price response has no entry for %q", p.coinID)
	}
	raw, ok := quote["usd"]
	if !ok {
		return decimal.Zero, errors.Errorf("reference price response has no usd quote for %q", p.coinID)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse reference price")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.Errorf("reference price is not positive: %s", price)
	}

	return price, nil
}
