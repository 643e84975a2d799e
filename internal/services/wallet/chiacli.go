package wallet

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ChiaCLIWallet shells out to the chia CLI for offer acceptance and balance
// queries.
type ChiaCLIWallet struct {
	cliPath     string
	fingerprint string
}

// NewChiaCLIWallet creates a wallet bound to one fingerprint.
func NewChiaCLIWallet(cliPath, fingerprint string) *ChiaCLIWallet {
	return &ChiaCLIWallet{cliPath: cliPath, fingerprint: fingerprint}
}

// TakeOffer runs `chia wallet take_offer <path> -f <fingerprint>`, confirming
// the interactive prompt. Blocking; the CLI performs the actual exchange.
func (w *ChiaCLIWallet) TakeOffer(ctx context.Context, payloadPath string) error {
	cmd := exec.CommandContext(ctx, w.cliPath, "wallet", "take_offer", payloadPath, "-f", w.fingerprint)
	cmd.Stdin = strings.NewReader("y\n")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrapf(err, "take offer: %s", msg)
		}
		return errors.Wrap(err, "take offer")
	}
	return nil
}

// Balance parses the "Total Balance" line of `chia wallet show`.
func (w *ChiaCLIWallet) Balance(ctx context.Context) (decimal.Decimal, error) {
	cmd := exec.CommandContext(ctx, w.cliPath, "wallet", "show", "-w", "standard_wallet", "-f", w.fingerprint)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return decimal.Zero, errors.Wrapf(err, "wallet show: %s", msg)
		}
		return decimal.Zero, errors.Wrap(err, "wallet show")
	}

	balance, err := ParseBalanceOutput(stdout.String())
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ParseBalanceOutput extracts the total balance from `chia wallet show`
// output. Exported for tests.
func ParseBalanceOutput(out string) (decimal.Decimal, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Total Balance") {
			continue
		}
		// format: "   -Total Balance: 1.234 xch (...)"
		parts := strings.Split(line, ":")
		value := strings.TrimSpace(parts[len(parts)-1])
		fields := strings.Fields(value)
		if len(fields) == 0 {
			break
		}
		balance, err := decimal.NewFromString(fields[0])
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "parse balance %q", fields[0])
		}
		return balance, nil
	}
	return decimal.Zero, errors.New("no total balance line in wallet output")
}
