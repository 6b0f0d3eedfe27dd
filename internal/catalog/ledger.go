// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curio/internal/cache"
)

// Ledger remembers which events have been applied so redelivered messages
// are skipped. Entries expire after the ledger's TTL.
//
// The consumer checks Seen before applying and calls Mark only after the
// write succeeded, so a crash between the two causes a harmless re-apply
// of an idempotent upsert or delete.
type Ledger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
	Close() error
}

// MemoryLedger keeps event IDs in a bounded TTL LRU. Entries are lost on
// restart.
type MemoryLedger struct {
	seen *cache.LRU[struct{}]
}

// NewMemoryLedger creates a ledger holding at most capacity IDs.
func NewMemoryLedger(capacity int, ttl time.Duration, opts ...cache.Option) *MemoryLedger {
	return &MemoryLedger{seen: cache.NewLRU[struct{}](capacity, ttl, opts...)}
}

// Seen implements Ledger.
func (l *MemoryLedger) Seen(_ context.Context, eventID string) (bool, error) {
	return l.seen.Contains(eventID), nil
}

// Mark implements Ledger.
func (l *MemoryLedger) Mark(_ context.Context, eventID string) error {
	l.seen.Add(eventID, struct{}{})
	return nil
}

// Sweep drops expired IDs and returns how many were removed.
func (l *MemoryLedger) Sweep() int {
	return l.seen.CleanupExpired()
}

// Close implements Ledger.
func (l *MemoryLedger) Close() error {
	l.seen.Clear()
	return nil
}

// BadgerLedger persists event IDs in Badger with a native TTL, so dedupe
// survives restarts.
type BadgerLedger struct {
	db     *badger.DB
	owned  bool
	prefix []byte
	ttl    time.Duration

	mu     sync.RWMutex
	closed bool
}

const ledgerKeyPrefix = "evt:"

// OpenBadgerLedger opens (or creates) a Badger directory at path.
func OpenBadgerLedger(path string, ttl time.Duration, logger zerolog.Logger) (*BadgerLedger, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(&badgerLogger{logger: logger}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open dedupe ledger at %s: %w", path, err)
	}
	l := NewBadgerLedger(db, ttl)
	l.owned = true
	return l, nil
}

// NewBadgerLedger uses an already opened db. The caller keeps ownership and
// Close leaves db open.
func NewBadgerLedger(db *badger.DB, ttl time.Duration) *BadgerLedger {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &BadgerLedger{db: db, prefix: []byte(ledgerKeyPrefix), ttl: ttl}
}

func (l *BadgerLedger) key(eventID string) []byte {
	k := make([]byte, 0, len(l.prefix)+len(eventID))
	k = append(k, l.prefix...)
	return append(k, eventID...)
}

// Seen implements Ledger.
func (l *BadgerLedger) Seen(_ context.Context, eventID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false, ErrLedgerClosed
	}

	var seen bool
	err := l.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(l.key(eventID))
		switch {
		case err == nil:
			seen = true
			return nil
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("ledger lookup %s: %w", eventID, err)
	}
	return seen, nil
}

// Mark implements Ledger.
func (l *BadgerLedger) Mark(_ context.Context, eventID string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLedgerClosed
	}

	err := l.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(l.key(eventID), nil).WithTTL(l.ttl))
	})
	if err != nil {
		return fmt.Errorf("ledger mark %s: %w", eventID, err)
	}
	return nil
}

// Close implements Ledger.
func (l *BadgerLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.owned {
		return l.db.Close()
	}
	return nil
}

// badgerLogger routes Badger's printf-style logging into zerolog. Info is
// demoted to debug because Badger is chatty at startup.
type badgerLogger struct {
	logger zerolog.Logger
}

func (b *badgerLogger) Errorf(format string, args ...any) {
	b.logger.Error().Msgf(format, args...)
}

func (b *badgerLogger) Warningf(format string, args ...any) {
	b.logger.Warn().Msgf(format, args...)
}

func (b *badgerLogger) Infof(format string, args ...any) {
	b.logger.Debug().Msgf(format, args...)
}

func (b *badgerLogger) Debugf(format string, args ...any) {
	b.logger.Trace().Msgf(format, args...)
}

var (
	_ Ledger        = (*MemoryLedger)(nil)
	_ Ledger        = (*BadgerLedger)(nil)
	_ badger.Logger = (*badgerLogger)(nil)
)
