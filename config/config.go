package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the process-wide configuration. Loaded once at startup,
// immutable afterwards.
type Config struct {
	// BaseAssetID offer-book identifier of the base asset (the priced one).
	BaseAssetID string
	// QuoteAssetID offer-book identifier of the quote asset.
	QuoteAssetID string
	// PriceCoinID reference price source identifier of the base asset.
	PriceCoinID string

	// AssetSymbols maps offer-book asset identifiers to display symbols.
	AssetSymbols map[string]string
	// BaseUnitScale smallest-unit-to-display-unit ratio of the base asset.
	BaseUnitScale decimal.Decimal
	// SmallestUnitFloor raw amounts below this value are assumed to be
	// expressed in display units already and are not rescaled.
	SmallestUnitFloor decimal.Decimal

	// MaxSellSize maximum base-asset amount to give away in one trade.
	MaxSellSize decimal.Decimal
	// MaxBuySize maximum quote-asset amount to spend in one trade.
	MaxBuySize decimal.Decimal
	// SellTriggerPct deviation at or above which a sell-base offer is taken.
	SellTriggerPct decimal.Decimal
	// BuyTriggerPct deviation at or below which a buy-base offer is taken.
	// Negative: a buy trigger is a discount.
	BuyTriggerPct decimal.Decimal

	PollInterval time.Duration
	// TopK ranked offers considered per direction each cycle.
	TopK int

	WalletFingerprint string
	ChiaCLIPath       string
	DexieBaseURL      string

	OffersDir string
	LogDir    string
}

type configYaml struct {
	BaseAssetID       string            `yaml:"base_asset_id"`
	QuoteAssetID      string            `yaml:"quote_asset_id"`
	PriceCoinID       string            `yaml:"price_coin_id"`
	AssetSymbols      map[string]string `yaml:"asset_symbols"`
	BaseUnitScale     string            `yaml:"base_unit_scale"`
	SmallestUnitFloor string            `yaml:"smallest_unit_floor"`
	MaxSellSize       string            `yaml:"max_sell_size"`
	MaxBuySize        string            `yaml:"max_buy_size"`
	SellTriggerPct    string            `yaml:"sell_trigger_pct"`
	BuyTriggerPct     string            `yaml:"buy_trigger_pct"`
	PollInterval      string            `yaml:"poll_interval"`
	TopK              int               `yaml:"top_k"`
	WalletFingerprint string            `yaml:"wallet_fingerprint"`
	ChiaCLIPath       string            `yaml:"chia_cli_path"`
	DexieBaseURL      string            `yaml:"dexie_base_url"`
	OffersDir         string            `yaml:"offers_dir"`
	LogDir            string            `yaml:"log_dir"`
}

const (
	defaultDexieBaseURL = "https://api.dexie.space/v1"
	defaultPollInterval = 15 * time.Second
	defaultTopK         = 5
	defaultOffersDir    = "offers"
	defaultLogDir       = "logs"
)

// Get loads configuration from the yaml file passed via -config, falling back
// to flags for the common knobs.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	fingerprint := flag.String("fingerprint", "", "wallet fingerprint")
	cliPath := flag.String("chia", "chia", "path to the chia executable")
	sellPct := flag.String("selltrigger", "6.0", "sell base asset if deviation is at least this percent above market")
	buyPct := flag.String("buytrigger", "-0.5", "buy base asset if deviation is at most this percent below market")
	interval := flag.Duration("pollinterval", defaultPollInterval, "offer book poll interval")
	flag.Parse()

	if *configPath != "" {
		return Load(*configPath)
	}

	cfg := defaults()
	cfg.WalletFingerprint = *fingerprint
	cfg.ChiaCLIPath = *cliPath
	cfg.PollInterval = *interval

	var err error
	if cfg.SellTriggerPct, err = decimal.NewFromString(*sellPct); err != nil {
		return Config{}, fmt.Errorf("invalid --selltrigger provided, --selltrigger=%s", *sellPct)
	}
	if cfg.BuyTriggerPct, err = decimal.NewFromString(*buyPct); err != nil {
		return Config{}, fmt.Errorf("invalid --buytrigger provided, --buytrigger=%s", *buyPct)
	}

	return cfg, cfg.validate()
}

func defaults() Config {
	return Config{
		BaseAssetID:  "xch",
		QuoteAssetID: "wusdc.b",
		PriceCoinID:  "chia",
		AssetSymbols: map[string]string{
			"xch":     "XCH",
			"wusdc.b": "wUSDC.b",
			// the wUSDC.b CAT id; some offers name the asset by it
			"fa4a180ac326e67ea289b869e3448256f6af05721f7cf934cb9901baa6b7a99d": "wUSDC.b",
		},
		BaseUnitScale:     decimal.NewFromInt(1_000_000_000_000),
		SmallestUnitFloor: decimal.NewFromInt(1000),
		MaxSellSize:       decimal.NewFromInt(8),
		MaxBuySize:        decimal.NewFromInt(20),
		SellTriggerPct:    decimal.NewFromInt(6),
		BuyTriggerPct:     decimal.RequireFromString("-0.5"),
		PollInterval:      defaultPollInterval,
		TopK:              defaultTopK,
		DexieBaseURL:      defaultDexieBaseURL,
		OffersDir:         defaultOffersDir,
		LogDir:            defaultLogDir,
	}
}

// Load reads and validates a yaml config file.
func Load(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configYaml
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := defaults()
	if tmp.BaseAssetID != "" {
		cfg.BaseAssetID = tmp.BaseAssetID
	}
	if tmp.QuoteAssetID != "" {
		cfg.QuoteAssetID = tmp.QuoteAssetID
	}
	if tmp.PriceCoinID != "" {
		cfg.PriceCoinID = tmp.PriceCoinID
	}
	if len(tmp.AssetSymbols) != 0 {
		cfg.AssetSymbols = tmp.AssetSymbols
	}
	if tmp.PollInterval != "" {
		interval, err := time.ParseDuration(tmp.PollInterval)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'poll_interval' param in yaml config (correct format is 15s): %w", err)
		}
		cfg.PollInterval = interval
	}
	if tmp.TopK != 0 {
		cfg.TopK = tmp.TopK
	}
	if tmp.DexieBaseURL != "" {
		cfg.DexieBaseURL = tmp.DexieBaseURL
	}
	if tmp.OffersDir != "" {
		cfg.OffersDir = tmp.OffersDir
	}
	if tmp.LogDir != "" {
		cfg.LogDir = tmp.LogDir
	}
	if tmp.ChiaCLIPath != "" {
		cfg.ChiaCLIPath = tmp.ChiaCLIPath
	}
	cfg.WalletFingerprint = tmp.WalletFingerprint

	decimals := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"base_unit_scale", tmp.BaseUnitScale, &cfg.BaseUnitScale},
		{"smallest_unit_floor", tmp.SmallestUnitFloor, &cfg.SmallestUnitFloor},
		{"max_sell_size", tmp.MaxSellSize, &cfg.MaxSellSize},
		{"max_buy_size", tmp.MaxBuySize, &cfg.MaxBuySize},
		{"sell_trigger_pct", tmp.SellTriggerPct, &cfg.SellTriggerPct},
		{"buy_trigger_pct", tmp.BuyTriggerPct, &cfg.BuyTriggerPct},
	}
	for _, d := range decimals {
		if d.value == "" {
			continue
		}
		v, err := decimal.NewFromString(d.value)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect '%s' param in yaml config (must be a decimal): %w", d.name, err)
		}
		*d.dst = v
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.BaseAssetID == "" || c.QuoteAssetID == "" {
		return fmt.Errorf("trading pair asset ids must not be empty")
	}
	if c.BaseAssetID == c.QuoteAssetID {
		return fmt.Errorf("base and quote asset must differ")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	if c.SellTriggerPct.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("sell_trigger_pct must be positive, got %s", c.SellTriggerPct)
	}
	if c.BuyTriggerPct.GreaterThanOrEqual(decimal.Zero) {
		return fmt.Errorf("buy_trigger_pct must be negative, got %s", c.BuyTriggerPct)
	}
	if c.MaxSellSize.LessThanOrEqual(decimal.Zero) || c.MaxBuySize.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("max trade sizes must be positive")
	}
	return nil
}
