package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYaml(t *testing.T) {
	path := writeConfig(t, `
base_asset_id: xch
quote_asset_id: wusdc.b
price_coin_id: chia
asset_symbols:
  xch: XCH
  wusdc.b: wUSDC.b
  fa4a180ac326e67ea289b869e3448256f6af05721f7cf934cb9901baa6b7a99d: wUSDC.b
max_sell_size: "8.0"
max_buy_size: "20.0"
sell_trigger_pct: "6.00"
buy_trigger_pct: "-0.50"
poll_interval: 15s
wallet_fingerprint: "123456789"
chia_cli_path: /home/me/chia-dir/chia
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "xch", cfg.BaseAssetID)
	require.Equal(t, "wUSDC.b", cfg.AssetSymbols["wusdc.b"])
	require.Len(t, cfg.AssetSymbols, 3)
	require.True(t, cfg.SellTriggerPct.Equal(decimal.NewFromInt(6)))
	require.True(t, cfg.BuyTriggerPct.Equal(decimal.RequireFromString("-0.5")))
	require.Equal(t, 15*time.Second, cfg.PollInterval)
	require.Equal(t, "123456789", cfg.WalletFingerprint)
	require.Equal(t, 5, cfg.TopK, "top_k defaults to 5")
	require.True(t, cfg.BaseUnitScale.Equal(decimal.NewFromInt(1_000_000_000_000)))
}

func TestDefaultAssetSymbolsCarryCATAlias(t *testing.T) {
	path := writeConfig(t, `
wallet_fingerprint: "123456789"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "wUSDC.b",
		cfg.AssetSymbols["fa4a180ac326e67ea289b869e3448256f6af05721f7cf934cb9901baa6b7a99d"],
		"offers may name the quote asset by its CAT id")
}

func TestLoadRejectsBadDecimal(t *testing.T) {
	path := writeConfig(t, `
sell_trigger_pct: "six percent"
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sell_trigger_pct")
}

func TestLoadRejectsPositiveBuyTrigger(t *testing.T) {
	path := writeConfig(t, `
buy_trigger_pct: "0.50"
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "buy_trigger_pct")
}

func TestLoadRejectsNegativeSellTrigger(t *testing.T) {
	path := writeConfig(t, `
sell_trigger_pct: "-6.0"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsSamePairSides(t *testing.T) {
	path := writeConfig(t, `
base_asset_id: xch
quote_asset_id: xch
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
