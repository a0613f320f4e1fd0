// Package cache memoizes aggregated results keyed by content fingerprint.
// Concurrent requests for the same fingerprint share a single computation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/veridict/veridict/internal/model"
)

// Fingerprint derives the stable cache key from text: case and whitespace
// differences collapse to the same key.
func Fingerprint(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}

// ComputeFunc produces the result for a fingerprint on cache miss
type ComputeFunc func(ctx context.Context) (*model.AggregatedResult, error)

// ResultCache is a bounded LRU of aggregated results with single-flight
// computation per key. Entries have no TTL: a fingerprint always maps to
// the same result barring a model change.
type ResultCache struct {
	entries *lru.Cache[string, *model.AggregatedResult]
	flight  singleflight.Group
}

// New creates a ResultCache holding up to capacity entries
func New(capacity int) (*ResultCache, error) {
	entries, err := lru.New[string, *model.AggregatedResult](capacity)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: entries}, nil
}

// GetOrCompute returns the cached result for key, or runs compute exactly
// once across all concurrent callers and stores its result. A compute
// error is shared with every waiter and nothing is stored.
//
// The returned value is a shallow copy so callers can see a per-request
// CacheHit flag without mutating the shared entry.
func (c *ResultCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (*model.AggregatedResult, bool, error) {
	if cached, ok := c.entries.Get(key); ok {
		return withHit(cached), true, nil
	}

	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// a racing flight may have stored the entry between our Get and Do
		if cached, ok := c.entries.Get(key); ok {
			return withHit(cached), nil
		}
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}

	result := v.(*model.AggregatedResult)
	return result, result.CacheHit, nil
}

// Get returns the cached result without computing
func (c *ResultCache) Get(key string) (*model.AggregatedResult, bool) {
	if cached, ok := c.entries.Get(key); ok {
		return withHit(cached), true
	}
	return nil, false
}

// Len reports how many results are currently cached
func (c *ResultCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

func withHit(r *model.AggregatedResult) *model.AggregatedResult {
	copied := *r
	copied.CacheHit = true
	return &copied
}
