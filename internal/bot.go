// Package internal wires the poll-cycle scheduler that drives every other
// component.
package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chiaswap/takebot/config"
	"github.com/chiaswap/takebot/internal/display"
	"github.com/chiaswap/takebot/internal/domain"
	"github.com/chiaswap/takebot/internal/journal"
	"github.com/chiaswap/takebot/internal/services/evaluator"
	"github.com/chiaswap/takebot/internal/services/executor"
	"github.com/chiaswap/takebot/internal/services/offerbook"
	"github.com/chiaswap/takebot/internal/services/pricer"
	"github.com/chiaswap/takebot/internal/services/ranker"
	"github.com/chiaswap/takebot/internal/services/trigger"
	"github.com/chiaswap/takebot/internal/services/wallet"
)

// State of the cycle scheduler.
type State int

const (
	StateRunning State = iota
	// StateStopped is terminal; there is no resume.
	StateStopped
)

// ErrZeroBalance the wallet holds no base asset; trading must stop.
var ErrZeroBalance = errors.New("base asset balance is zero")

// Bot runs the poll cycle: fetch -> normalize -> evaluate -> rank -> trigger
// -> execute -> log, strictly sequentially, then sleeps the poll interval.
type Bot struct {
	cfg config.Config

	pricer    pricer.Pricer
	book      offerbook.Source
	wallet    wallet.Wallet
	evaluator *evaluator.Evaluator
	trigger   *trigger.Engine
	executor  *executor.Executor
	journal   *journal.Journal
	renderer  *display.Renderer
	logger    *zap.Logger

	state State
}

// NewBot assembles the scheduler from its collaborators.
func NewBot(
	cfg config.Config,
	p pricer.Pricer,
	book offerbook.Source,
	w wallet.Wallet,
	ev *evaluator.Evaluator,
	tr *trigger.Engine,
	ex *executor.Executor,
	j *journal.Journal,
	logger *zap.Logger,
) *Bot {
	return &Bot{
		cfg:       cfg,
		pricer:    p,
		book:      book,
		wallet:    w,
		evaluator: ev,
		trigger:   tr,
		executor:  ex,
		journal:   j,
		renderer:  display.NewRenderer(),
		logger:    logger,
		state:     StateRunning,
	}
}

// State returns the scheduler state.
func (b *Bot) State() State {
	return b.state
}

// Run executes cycles until a fatal condition or ctx cancellation. A fatal
// condition is recorded in the journal once, the state becomes StateStopped
// and the error is returned.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("starting poll loop",
		zap.String("pair", b.cfg.BaseAssetID+"/"+b.cfg.QuoteAssetID),
		zap.Duration("poll_interval", b.cfg.PollInterval))

	for {
		if err := b.RunCycle(ctx); err != nil {
			b.stop(err)
			return err
		}

		select {
		case <-ctx.Done():
			b.stop(ctx.Err())
			return ctx.Err()
		case <-time.After(b.cfg.PollInterval):
		}
	}
}

// RunCycle executes exactly one cycle. A non-nil error is fatal; every
// recoverable failure is handled inside.
func (b *Bot) RunCycle(ctx context.Context) error {
	refPrice, err := b.pricer.Price(ctx)
	if err != nil {
		return errors.Wrap(err, "reference price unavailable")
	}

	balance, err := b.wallet.Balance(ctx)
	if err != nil {
		return errors.Wrap(err, "base asset balance unreadable")
	}
	if balance.LessThanOrEqual(decimal.Zero) {
		return ErrZeroBalance
	}

	raws := b.fetchOffers(ctx)
	evaluated := b.evaluator.EvaluateAll(raws, refPrice)
	ranked := ranker.Rank(evaluated, b.cfg.TopK)

	b.executor.BeginCycle()
	sellLines := b.processCandidates(ctx, ranked.SellBase)
	buyLines := b.processCandidates(ctx, ranked.BuyBase)

	baseSymbol := b.cfg.AssetSymbols[b.cfg.BaseAssetID]
	if baseSymbol == "" {
		baseSymbol = b.cfg.BaseAssetID
	}
	fmt.Println(b.renderer.Render(display.CycleStatus{
		Time:           time.Now(),
		RefPrice:       refPrice,
		Balance:        balance,
		BaseSymbol:     baseSymbol,
		SellTriggerPct: b.cfg.SellTriggerPct,
		BuyTriggerPct:  b.cfg.BuyTriggerPct,
		Sell:           sellLines,
		Buy:            buyLines,
	}))

	return nil
}

// fetchOffers queries both orderings of the pair concurrently. A failed
// direction degrades to an empty result for this cycle. The merge order is
// fixed (base-offered first) so ranking input stays deterministic.
func (b *Bot) fetchOffers(ctx context.Context) []domain.RawOffer {
	var baseOffered, quoteOffered []domain.RawOffer

	g := new(errgroup.Group)
	g.Go(func() error {
		offers, err := b.book.Offers(ctx, b.cfg.BaseAssetID, b.cfg.QuoteAssetID)
		if err != nil {
			b.logger.Warn("offer fetch failed, treating as empty",
				zap.String("offered", b.cfg.BaseAssetID), zap.Error(err))
			return nil
		}
		baseOffered = offers
		return nil
	})
	g.Go(func() error {
		offers, err := b.book.Offers(ctx, b.cfg.QuoteAssetID, b.cfg.BaseAssetID)
		if err != nil {
			b.logger.Warn("offer fetch failed, treating as empty",
				zap.String("offered", b.cfg.QuoteAssetID), zap.Error(err))
			return nil
		}
		quoteOffered = offers
		return nil
	})
	_ = g.Wait()

	return append(baseOffered, quoteOffered...)
}

// processCandidates walks one ranked direction in order, applying the trigger
// engine and executing what it selects.
func (b *Bot) processCandidates(ctx context.Context, offers []domain.EvaluatedOffer) []display.OfferLine {
	lines := make([]display.OfferLine, 0, len(offers))

	for _, offer := range offers {
		line := display.OfferLine{
			Offer: offer,
			Band:  domain.ClassifyBand(offer.Direction, offer.DeviationPct),
		}

		decision := b.trigger.Decide(offer)
		line.Decision = decision.String()

		if decision == trigger.DecisionExecute {
			attempt, err := b.executor.Execute(ctx, offer)
			switch {
			case errors.Is(err, executor.ErrAlreadyAttempted), errors.Is(err, executor.ErrDuplicateOffer):
				line.Decision = "skip: " + err.Error()
			case err != nil:
				// the wallet ran; only the recording is incomplete
				b.logger.Error("failed to record trade attempt",
					zap.String("offer_id", offer.Raw.ID), zap.Error(err))
				line.Decision = "executed: " + string(attempt.Outcome) + " (record incomplete)"
			default:
				line.Decision = "executed: " + string(attempt.Outcome)
			}
		}

		lines = append(lines, line)
	}

	return lines
}

func (b *Bot) stop(cause error) {
	if b.state == StateStopped {
		return
	}
	b.state = StateStopped
	b.logger.Error("stopping", zap.Error(cause))
	if err := b.journal.Note("stopped: " + cause.Error()); err != nil {
		b.logger.Error("failed to journal stop reason", zap.Error(err))
	}
}
