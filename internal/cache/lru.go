// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package cache

import (
	"sync"
	"time"
)

// Defaults applied by NewLRU when capacity or ttl is not positive.
const (
	DefaultCapacity = 10000
	DefaultTTL      = 5 * time.Minute
)

type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// LRU is a thread-safe least recently used cache with per-entry TTL.
//
// Lookups, inserts and evictions are O(1): a map indexes the nodes of a
// doubly-linked list whose head is the most recently used entry. Expired
// entries are dropped lazily on access or in bulk by CleanupExpired.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*lruEntry[V]

	// head.next is the most recently used entry, tail.prev the least.
	head *lruEntry[V]
	tail *lruEntry[V]
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewLRU creates a cache holding at most capacity entries, each living ttl.
func NewLRU[V any](capacity int, ttl time.Duration, opts ...Option) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[string]*lruEntry[V]),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key if present and not expired, and marks it
// as most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.lookup(key); ok {
		c.moveToFront(entry)
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present without touching recency.
func (c *LRU[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lookup(key)
	return ok
}

// Add inserts or replaces key, resetting its TTL.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insert(key, value)
}

// GetOrAdd returns the live value for key, or stores and returns the result
// of create. The boolean is true when the value already existed. A hit also
// refreshes the entry's TTL.
func (c *LRU[V]) GetOrAdd(key string, create func() V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.lookup(key); ok {
		entry.expiresAt = c.now().Add(c.ttl)
		c.moveToFront(entry)
		return entry.value, true
	}
	v := create()
	c.insert(key, v)
	return v, false
}

// Len returns the number of stored entries, including expired ones not yet
// collected.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear drops every entry.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruEntry[V])
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes expired entries and returns how many were removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.unlink(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// The helpers below must be called with mu held.

func (c *LRU[V]) lookup(key string) (*lruEntry[V], bool) {
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.unlink(entry)
		return nil, false
	}
	return entry, true
}

func (c *LRU[V]) insert(key string, value V) {
	expiresAt := c.now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		if oldest == c.head {
			break
		}
		c.unlink(oldest)
	}
}

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) unlink(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
