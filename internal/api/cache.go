// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ResponseCache keeps successful response bodies for the current session only
type ResponseCache struct {
	cache *ttlcache.Cache[string, []byte]
	// Note: ttlcache is thread-safe, no additional mutex needed
}

// NewResponseCache creates a session cache. A zero ttl returns nil, which disables caching.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}

	cache := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithCapacity[string, []byte](500),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)

	go cache.Start()

	return &ResponseCache{cache: cache}
}

// Get returns the cached body for a request path
func (r *ResponseCache) Get(path string) ([]byte, bool) {
	if r == nil {
		return nil, false
	}
	item := r.cache.Get(path)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set stores a body for a request path with the default TTL
func (r *ResponseCache) Set(path string, body []byte) {
	if r == nil {
		return
	}
	r.cache.Set(path, body, ttlcache.DefaultTTL)
}

// Len returns the number of live entries
func (r *ResponseCache) Len() int {
	if r == nil {
		return 0
	}
	return r.cache.Len()
}

// Close stops the expiration loop
func (r *ResponseCache) Close() {
	if r == nil {
		return
	}
	r.cache.Stop()
}
