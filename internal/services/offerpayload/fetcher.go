// Package offerpayload retrieves the executable offer blob for an offer id.
package offerpayload

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Fetcher obtains the executable payload of an offer and stores it on disk,
// returning the file path to hand to the wallet. How the payload is obtained
// is an implementation detail; failures are offer-recoverable.
type Fetcher interface {
	Fetch(ctx context.Context, offerID string) (string, error)
}

// DexieFetcher downloads offer payloads from a dexie-style REST API.
type DexieFetcher struct {
	client    *resty.Client
	offersDir string
}

type dexiePayloadResponse struct {
	Success bool `json:"success"`
	Offer   struct {
		ID     string `json:"id"`
		Hidden bool   `json:"hidden"`
		Offer  string `json:"offer"`
	} `json:"offer"`
}

// NewDexieFetcher creates a payload fetcher writing blobs under offersDir.
func NewDexieFetcher(baseURL, offersDir string) (*DexieFetcher, error) {
	if err := os.MkdirAll(offersDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create offers dir")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	return &DexieFetcher{client: client, offersDir: offersDir}, nil
}

// Fetch downloads the payload for the given offer id and writes it to
// <offersDir>/<id>.offer.
func (f *DexieFetcher) Fetch(ctx context.Context, offerID string) (string, error) {
	var result dexiePayloadResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/offers/" + offerID)
	if err != nil {
		return "", errors.Wrapf(err, "fetch payload for offer %s", offerID)
	}
	if resp.IsError() {
		return "", errors.Errorf("payload request for offer %s failed: %s", offerID, resp.Status())
	}
	if result.Offer.Offer == "" {
		return "", errors.Errorf("no downloadable payload for offer %s", offerID)
	}

	path := filepath.Join(f.offersDir, offerID+".offer")
	if err := os.WriteFile(path, []byte(result.Offer.Offer), 0o644); err != nil {
		return "", errors.Wrapf(err, "save payload for offer %s", offerID)
	}

	return path, nil
}
