// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package state provides the in-memory application state store used by the
// admin client. It keeps one value per content domain, notifies subscribers
// on change, and carries a small time-bounded read cache consulted by the
// content gateway before it goes to the network.
//
// The store is constructor-injected everywhere it is needed rather than
// shared as a package-level singleton, and all methods are safe for
// concurrent use.
package state

import (
	"sync"
	"time"
)

// Wildcard is the subscription key that receives a notification for every
// change, regardless of which domain changed.
const Wildcard = "*"

// DefaultCacheTTL is how long a cached collection stays valid.
const DefaultCacheTTL = 5 * time.Minute

// Domain names for the content collections held in the store.
const (
	DomainUser      = "user"
	DomainPosts     = "posts"
	DomainServicios = "servicios"
	DomainCasos     = "casos"
	DomainSettings  = "settings"
	DomainMedia     = "media"
)

// Change describes a single state mutation delivered to wildcard subscribers.
type Change struct {
	Key      string
	NewValue any
	OldValue any
}

// Listener receives the new and previous value for a subscribed key.
type Listener func(newValue, oldValue any)

// cacheEntry wraps a cached value with its insertion time. Validity is
// checked lazily on read; there is no background sweep.
type cacheEntry struct {
	data      any
	timestamp time.Time
}

// subscription pairs a listener with a registration order token so that
// notification order matches insertion order.
type subscription struct {
	id int64
	fn Listener
}

// Store is the reactive key-value state container.
type Store struct {
	mu        sync.Mutex
	state     map[string]any
	listeners map[string][]subscription
	nextSub   int64

	cache    map[string]cacheEntry
	cacheTTL time.Duration

	// now is swappable in tests to control cache expiry.
	now func() time.Time
}

// New creates a Store with the initial domain shape and the default cache TTL.
func New() *Store {
	return NewWithTTL(DefaultCacheTTL)
}

// NewWithTTL creates a Store with a custom cache TTL.
func NewWithTTL(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Store{
		state:     initialState(),
		listeners: make(map[string][]subscription),
		cache:     make(map[string]cacheEntry),
		cacheTTL:  ttl,
		now:       time.Now,
	}
}

// initialState returns the empty shape every domain starts from.
func initialState() map[string]any {
	return map[string]any{
		DomainUser:      nil,
		DomainPosts:     nil,
		DomainServicios: nil,
		DomainCasos:     nil,
		DomainSettings:  nil,
		DomainMedia:     nil,
	}
}

// Get returns the current value for a domain key. Absent keys yield nil.
func (s *Store) Get(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[key]
}

// Snapshot returns a copy of the entire state mapping.
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// Set replaces the value for a key and synchronously notifies listeners
// registered for that key, then wildcard listeners, in insertion order.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	old := s.state[key]
	s.state[key] = value
	exact := append([]subscription(nil), s.listeners[key]...)
	wild := append([]subscription(nil), s.listeners[Wildcard]...)
	s.mu.Unlock()

	// Listeners run outside the lock so they may call back into the store.
	for _, sub := range exact {
		sub.fn(value, old)
	}
	for _, sub := range wild {
		sub.fn(Change{Key: key, NewValue: value, OldValue: old}, nil)
	}
}

// Update computes a new value for the key by applying fn to the current
// value, then stores it via Set.
func (s *Store) Update(key string, fn func(old any) any) {
	s.mu.Lock()
	old := s.state[key]
	s.mu.Unlock()

	s.Set(key, fn(old))
}

// Subscribe registers a listener for a key (or Wildcard for all keys) and
// returns an unsubscribe function. Multiple listeners per key are invoked
// in the order they were registered.
func (s *Store) Subscribe(key string, fn Listener) func() {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.listeners[key] = append(s.listeners[key], subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.listeners[key]
		for i, sub := range subs {
			if sub.id == id {
				s.listeners[key] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// SetCache stores a value in the read cache stamped with the current time.
func (s *Store) SetCache(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{data: data, timestamp: s.now()}
}

// GetCache returns the cached value for a key if it is present and not
// older than the TTL. Expired entries are evicted on read.
func (s *Store) GetCache(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.timestamp) >= s.cacheTTL {
		delete(s.cache, key)
		return nil, false
	}
	return entry.data, true
}

// ClearCache removes the named cache entries, or every entry if no keys
// are given.
func (s *Store) ClearCache(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keys) == 0 {
		s.cache = make(map[string]cacheEntry)
		return
	}
	for _, k := range keys {
		delete(s.cache, k)
	}
}

// Reset restores the initial empty state, clears the cache, and fires a
// wildcard notification with a nil previous value. Used on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = initialState()
	s.cache = make(map[string]cacheEntry)
	snapshot := make(map[string]any, len(s.state))
	for k, v := range s.state {
		snapshot[k] = v
	}
	wild := append([]subscription(nil), s.listeners[Wildcard]...)
	s.mu.Unlock()

	for _, sub := range wild {
		sub.fn(Change{Key: Wildcard, NewValue: snapshot, OldValue: nil}, nil)
	}
}

// SetClock overrides the store's time source. Tests use this to advance
// time past the cache TTL without sleeping.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
