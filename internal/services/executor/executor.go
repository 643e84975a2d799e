// Package executor takes triggered offers through payload fetch, wallet
// acceptance and attempt recording.
package executor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chiaswap/takebot/internal/domain"
	"github.com/chiaswap/takebot/internal/journal"
	"github.com/chiaswap/takebot/internal/services/offerpayload"
	"github.com/chiaswap/takebot/internal/services/wallet"
	"github.com/chiaswap/takebot/pkg/retrier"
)

var (
	// ErrAlreadyAttempted the offer was already executed in this ranking pass.
	ErrAlreadyAttempted = errors.New("offer already attempted this cycle")
	// ErrDuplicateOffer an attempt for the offer is recorded from an earlier
	// cycle; its consumption may not be visible upstream yet.
	ErrDuplicateOffer = errors.New("offer already attempted in a previous cycle")
)

// AttemptStore persists trade attempts and remembers attempted offer ids.
type AttemptStore interface {
	Save(attempt domain.TradeAttempt) error
	Seen(offerID string) bool
}

// Executor submits triggered offers for acceptance. Not safe for concurrent
// use; the scheduler runs cycles strictly sequentially.
type Executor struct {
	fetcher offerpayload.Fetcher
	wallet  wallet.Wallet
	journal *journal.Journal
	store   AttemptStore
	retrier *retrier.Retrier
	logger  *zap.Logger

	// attempted offer ids of the current ranking pass
	attempted map[string]struct{}
}

// New creates an executor.
func New(fetcher offerpayload.Fetcher, w wallet.Wallet, j *journal.Journal, store AttemptStore, logger *zap.Logger) *Executor {
	return &Executor{
		fetcher:   fetcher,
		wallet:    w,
		journal:   j,
		store:     store,
		retrier:   retrier.New(retrier.WithMaxRetries(2)),
		logger:    logger,
		attempted: make(map[string]struct{}),
	}
}

// BeginCycle resets the per-cycle at-most-once guard.
func (e *Executor) BeginCycle() {
	e.attempted = make(map[string]struct{})
}

// Execute takes one triggered offer: fetches its payload, submits it to the
// wallet and records exactly one TradeAttempt whatever the outcome. Skips with
// ErrAlreadyAttempted / ErrDuplicateOffer instead of submitting twice.
func (e *Executor) Execute(ctx context.Context, offer domain.EvaluatedOffer) (domain.TradeAttempt, error) {
	id := offer.Raw.ID
	if _, ok := e.attempted[id]; ok {
		return domain.TradeAttempt{}, ErrAlreadyAttempted
	}
	if e.store != nil && e.store.Seen(id) {
		return domain.TradeAttempt{}, ErrDuplicateOffer
	}
	e.attempted[id] = struct{}{}

	e.logger.Info("taking offer",
		zap.String("offer_id", id),
		zap.String("direction", offer.Direction.String()),
		zap.String("deviation_pct", offer.DeviationPct.StringFixed(2)))

	attempt := domain.TradeAttempt{
		OfferID:         id,
		Direction:       offer.Direction,
		OfferedAmount:   offer.OfferedAmount,
		OfferedSymbol:   offer.OfferedSymbol,
		RequestedAmount: offer.RequestedAmount,
		RequestedSymbol: offer.RequestedSymbol,
		UnitPrice:       offer.UnitPrice,
		DeviationPct:    offer.DeviationPct,
	}

	path, err := retrier.DoWithData(e.retrier, ctx, func(ctx context.Context) (string, error) {
		return e.fetcher.Fetch(ctx, id)
	})
	if err != nil {
		return e.record(attempt, errors.Wrap(err, "fetch offer payload"))
	}

	if err := e.wallet.TakeOffer(ctx, path); err != nil {
		return e.record(attempt, errors.Wrap(err, "accept offer"))
	}

	return e.record(attempt, nil)
}

// record finalizes the attempt and appends it to the journal and the store.
// Both writes always run: a failed journal line must not keep the store from
// remembering an offer the wallet already consumed, or a later cycle would
// submit it again.
func (e *Executor) record(attempt domain.TradeAttempt, execErr error) (domain.TradeAttempt, error) {
	attempt.Timestamp = time.Now()
	if execErr != nil {
		attempt.Outcome = domain.OutcomeFailure
		attempt.Error = execErr.Error()
		e.logger.Warn("offer execution failed",
			zap.String("offer_id", attempt.OfferID),
			zap.Error(execErr))
	} else {
		attempt.Outcome = domain.OutcomeSuccess
		e.logger.Info("offer taken",
			zap.String("offer_id", attempt.OfferID),
			zap.String("direction", attempt.Direction.String()))
	}

	var recordErr error
	if err := e.journal.Append(attempt); err != nil {
		recordErr = errors.Wrap(err, "journal trade attempt")
	}
	if e.store != nil {
		if err := e.store.Save(attempt); err != nil && recordErr == nil {
			recordErr = errors.Wrap(err, "persist trade attempt")
		}
	}

	return attempt, recordErr
}
