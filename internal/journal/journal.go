// Package journal keeps the append-only, human-readable execution log.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/chiaswap/takebot/internal/domain"
)

const fileName = "executed_offers.log"

// Journal writes one line per trade attempt to an append-only file. Each line
// is flushed to disk before the next one is accepted, so a crash loses at most
// the in-flight attempt.
type Journal struct {
	mu sync.Mutex
	f  *os.File
}

// New opens (or creates) the journal under dir.
func New(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}

	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open execution log")
	}

	return &Journal{f: f}, nil
}

// Append records one trade attempt.
func (j *Journal) Append(a domain.TradeAttempt) error {
	line := FormatAttempt(a)
	return j.write(a.Timestamp, line)
}

// Note records a free-form timestamped line, e.g. the fatal-stop reason.
func (j *Journal) Note(msg string) error {
	return j.write(time.Now(), msg)
}

// Close closes the underlying file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}

func (j *Journal) write(ts time.Time, line string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := fmt.Fprintf(j.f, "%s - %s\n", ts.Format(time.RFC3339), line); err != nil {
		return errors.Wrap(err, "append execution log")
	}
	// durable before the next record is accepted
	if err := j.f.Sync(); err != nil {
		return errors.Wrap(err, "sync execution log")
	}
	return nil
}

// FormatAttempt renders the log line body for one attempt.
func FormatAttempt(a domain.TradeAttempt) string {
	pct := a.DeviationPct.StringFixed(2)
	if a.DeviationPct.Sign() >= 0 {
		pct = "+" + pct
	}
	line := fmt.Sprintf("%s [%s] | %s %s -> %s %s | $%s (%s%%) | Offer ID: %s",
		a.Outcome, a.Direction,
		a.OfferedAmount.StringFixed(4), a.OfferedSymbol,
		a.RequestedAmount.StringFixed(4), a.RequestedSymbol,
		a.UnitPrice.StringFixed(4), pct,
		a.OfferID)
	if a.Outcome == domain.OutcomeFailure && a.Error != "" {
		line += " | ERROR: " + a.Error
	}
	return line
}
