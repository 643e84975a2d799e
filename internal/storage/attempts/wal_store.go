// Package attempts persists trade attempts in a WAL and answers whether an
// offer was already attempted in a previous cycle.
package attempts

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/chiaswap/takebot/internal/domain"
)

const (
	// DefaultDir default WAL location.
	DefaultDir = "./wal/attempts"

	segmentLimit = 1000
	maxSegments  = 100

	attemptKeyPrefix = "attempt_"
)

// WALStore is a durable, append-only store of trade attempts.
type WALStore struct {
	wal  *gowal.Wal
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewWALStore opens the store and rebuilds the seen-offer index from the
// persisted attempts.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "attempt_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init attempt WAL")
	}

	s := &WALStore{wal: wal, seen: make(map[string]struct{})}
	for m := range wal.Iterator() {
		if offerID, ok := strings.CutPrefix(m.Key, attemptKeyPrefix); ok {
			s.seen[offerID] = struct{}{}
		}
	}

	return s, nil
}

// Save appends one attempt and marks its offer as seen.
func (s *WALStore) Save(attempt domain.TradeAttempt) error {
	if s == nil || s.wal == nil {
		return errors.New("attempt store is not initialized")
	}
	if attempt.OfferID == "" {
		return errors.New("trade attempt offer id is required")
	}

	payload, err := json.Marshal(attempt)
	if err != nil {
		return errors.Wrap(err, "marshal trade attempt")
	}

	key := fmt.Sprintf("%s%s", attemptKeyPrefix, attempt.OfferID)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	if err := s.wal.Write(nextIndex, key, payload); err != nil {
		return errors.Wrap(err, "write trade attempt")
	}
	s.seen[attempt.OfferID] = struct{}{}

	return nil
}

// Seen reports whether an attempt for the offer was ever recorded.
func (s *WALStore) Seen(offerID string) bool {
	if s == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.seen[offerID]
	return ok
}

// All returns every persisted attempt in write order.
func (s *WALStore) All() ([]domain.TradeAttempt, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("attempt store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TradeAttempt
	for m := range s.wal.Iterator() {
		if !strings.HasPrefix(m.Key, attemptKeyPrefix) {
			continue
		}
		var attempt domain.TradeAttempt
		if err := json.Unmarshal(m.Value, &attempt); err != nil {
			return nil, errors.Wrap(err, "decode trade attempt")
		}
		out = append(out, attempt)
	}

	return out, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("attempt store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
