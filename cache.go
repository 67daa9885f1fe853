package hatchclient

import (
	"encoding/json"
	"hash/fnv"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// ResponseCache is a short-lived, sharded in-memory cache of response
// bodies. An entry is fresh while now - storedAt < ttl. Entries are only
// removed by overwrite, ClearPattern or Clear; stale entries remain
// available through GetStale.
type ResponseCache struct {
	shards    []*cacheShard
	numShards int
	ttl       time.Duration
	now       func() time.Time
}

type cacheShard struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
}

type cacheEntry struct {
	payload  json.RawMessage
	storedAt time.Time
}

// NewResponseCache creates a cache with the given TTL. A nil clock means
// time.Now.
func NewResponseCache(ttl time.Duration, now func() time.Time) *ResponseCache {
	if now == nil {
		now = time.Now
	}
	numShards := 16
	shards := make([]*cacheShard, numShards)
	for i := range shards {
		shards[i] = &cacheShard{
			store: make(map[string]cacheEntry),
		}
	}
	return &ResponseCache{
		shards:    shards,
		numShards: numShards,
		ttl:       ttl,
		now:       now,
	}
}

func (c *ResponseCache) getShard(key string) *cacheShard {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	return c.shards[hash.Sum32()%uint32(c.numShards)]
}

// TTL returns the freshness window.
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the payload stored under key if it is still fresh.
func (c *ResponseCache) Get(key string) (json.RawMessage, bool) {
	shard := c.getShard(key)
	shard.mu.RLock()
	entry, ok := shard.store[key]
	shard.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.payload, true
}

// GetStale returns the payload stored under key regardless of age, with
// the time it was stored.
func (c *ResponseCache) GetStale(key string) (json.RawMessage, time.Time, bool) {
	shard := c.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entry, ok := shard.store[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return entry.payload, entry.storedAt, true
}

func (c *ResponseCache) Set(key string, payload json.RawMessage) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.store[key] = cacheEntry{payload: payload, storedAt: c.now()}
}

// ClearPattern removes every entry whose key contains pattern and returns
// how many were removed.
func (c *ResponseCache) ClearPattern(pattern string) int {
	removed := 0
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key := range shard.store {
			if strings.Contains(key, pattern) {
				delete(shard.store, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

func (c *ResponseCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.store = make(map[string]cacheEntry)
		shard.mu.Unlock()
	}
}

// Len counts stored entries, fresh or stale.
func (c *ResponseCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.store)
		shard.mu.RUnlock()
	}
	return total
}

// CacheKey derives the cache key for a request: method, path, sorted query
// parameters and the serialized body.
func CacheKey(method, path string, opts *RequestOptions) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte(' ')
	b.WriteString(path)

	if opts == nil {
		return b.String()
	}
	if q := encodeParams(opts.Params); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if opts.Body != nil {
		if body, err := encodeBody(opts.Body); err == nil && len(body) > 0 {
			b.WriteByte('|')
			b.Write(body)
		}
	}
	return b.String()
}

func encodeParams(p Params) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, p[k])
	}
	return values.Encode()
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}

// collectionPath trims trailing numeric segments so that a mutation of
// /auth/post/7 invalidates reads of /auth/post as well.
func collectionPath(path string) string {
	path = strings.SplitN(path, "?", 2)[0]
	for {
		i := strings.LastIndexByte(path, '/')
		if i <= 0 || !isNumeric(path[i+1:]) {
			return path
		}
		path = path[:i]
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
