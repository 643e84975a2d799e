package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chiaswap/takebot/config"
	"github.com/chiaswap/takebot/internal"
	"github.com/chiaswap/takebot/internal/domain"
	"github.com/chiaswap/takebot/internal/journal"
	"github.com/chiaswap/takebot/internal/services/evaluator"
	"github.com/chiaswap/takebot/internal/services/executor"
	"github.com/chiaswap/takebot/internal/services/offerbook"
	"github.com/chiaswap/takebot/internal/services/offerpayload"
	"github.com/chiaswap/takebot/internal/services/pricer"
	"github.com/chiaswap/takebot/internal/services/trigger"
	"github.com/chiaswap/takebot/internal/services/wallet"
	"github.com/chiaswap/takebot/internal/storage/attempts"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	j, err := journal.New(cfg.LogDir)
	if err != nil {
		logger.Fatal("failed to open execution log", zap.Error(err))
	}
	defer j.Close()

	store, err := attempts.NewWALStore(attempts.DefaultDir)
	if err != nil {
		logger.Fatal("failed to open attempt store", zap.Error(err))
	}
	defer store.Close()

	fetcher, err := offerpayload.NewDexieFetcher(cfg.DexieBaseURL, cfg.OffersDir)
	if err != nil {
		logger.Fatal("failed to init payload fetcher", zap.Error(err))
	}

	registry := buildRegistry(cfg)
	w := wallet.NewChiaCLIWallet(cfg.ChiaCLIPath, cfg.WalletFingerprint)

	bot := internal.NewBot(
		cfg,
		pricer.NewCoinGeckoPricer("", cfg.PriceCoinID),
		offerbook.NewDexieSource(cfg.DexieBaseURL),
		w,
		evaluator.New(registry, cfg.BaseAssetID, cfg.QuoteAssetID),
		trigger.NewEngine(cfg.SellTriggerPct, cfg.BuyTriggerPct, cfg.MaxSellSize, cfg.MaxBuySize),
		executor.New(fetcher, w, j, store, logger),
		j,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("stopped on fatal condition", zap.Error(err))
		os.Exit(1)
	}
}

func buildRegistry(cfg config.Config) *domain.Registry {
	assets := make([]domain.Asset, 0, len(cfg.AssetSymbols))
	for id, symbol := range cfg.AssetSymbols {
		scale := decimal.NewFromInt(1)
		if id == cfg.BaseAssetID {
			scale = cfg.BaseUnitScale
		}
		assets = append(assets, domain.Asset{ID: id, Symbol: symbol, UnitScale: scale})
	}
	return domain.NewRegistry(assets, cfg.SmallestUnitFloor)
}
