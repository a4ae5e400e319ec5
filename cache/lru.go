// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache provides an expiring LRU cache.
package cache

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a golang-lru cache whose entries expire after a fixed ttl.
// A zero ttl means entries never expire.
type LRU struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time

	hit, miss atomic.Int64
}

type entry struct {
	value   any
	expires time.Time
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int, ttl time.Duration) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: cache, ttl: ttl, now: time.Now}, nil
}

// Get returns a live entry.
func (l *LRU) Get(key any) (any, bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		l.miss.Add(1)
		return nil, false
	}
	e := v.(*entry)
	if l.ttl > 0 && !l.now().Before(e.expires) {
		l.cache.Remove(key)
		l.miss.Add(1)
		return nil, false
	}
	l.hit.Add(1)
	return e.value, true
}

// Add inserts or refreshes an entry.
func (l *LRU) Add(key, value any) {
	l.cache.Add(key, &entry{value: value, expires: l.now().Add(l.ttl)})
}

func (l *LRU) Remove(key any) { l.cache.Remove(key) }

func (l *LRU) Purge() { l.cache.Purge() }

func (l *LRU) Len() int { return l.cache.Len() }

// Loader defines loader to load value.
type Loader func(key any) (any, error)

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return nil, err
	}

	l.Add(key, v)
	return v, nil
}

// Stats returns the number of hits and misses so far.
func (l *LRU) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
