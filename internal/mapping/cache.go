// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/propmap/propmap/pkg/types"
)

// CacheKey identifies one memoized conversion. Digest is the content hash of
// the field definition and the engine settings that shape its descriptors.
type CacheKey struct {
	FieldID     int
	TemplateID  int
	ChannelID   int
	ContentType string
	Shape       types.Shape
	Digest      string
}

// NewCacheKey builds the key of a field conversion.
func NewCacheKey(fieldID int, ctx types.MappingContext, shape types.Shape) CacheKey {
	return CacheKey{
		FieldID:     fieldID,
		TemplateID:  ctx.TemplateID,
		ChannelID:   ctx.ChannelID,
		ContentType: ctx.ContentType,
		Shape:       shape,
	}
}

// slot drops the digest. A slot holds at most one conversion.
func (k CacheKey) slot() CacheKey {
	k.Digest = ""
	return k
}

// FieldDigest hashes a field definition together with variant, the engine
// settings its descriptors depend on.
func FieldDigest(f *types.SourceField, variant string) string {
	data, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(variant))
	return hex.EncodeToString(h.Sum(nil))
}

type cacheEntry struct {
	digest string
	result *Result
}

// Cache memoizes conversion results. It stores descriptors only; issues
// belong to the call that produced them and are never cached.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]cacheEntry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[CacheKey]cacheEntry),
	}
}

// Get returns a copy of the cached result with an empty issue list. The
// entry must carry the same digest as key.
func (c *Cache) Get(key CacheKey) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key.slot()]
	if !ok || e.digest != key.Digest {
		return nil, false
	}
	return e.result.withoutIssues(), true
}

// Put stores a copy of result under key, replacing the conversion held for
// the same field, context and shape.
func (c *Cache) Put(key CacheKey, result *Result) {
	if result == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key.slot()] = cacheEntry{digest: key.Digest, result: result.withoutIssues()}
}

// Has checks if a result is cached for key.
func (c *Cache) Has(key CacheKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key.slot()]
	return ok && e.digest == key.Digest
}

// Invalidate removes the entry for the field, context and shape of key,
// whatever its digest.
func (c *Cache) Invalidate(key CacheKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot := key.slot()
	if _, ok := c.entries[slot]; ok {
		delete(c.entries, slot)
		return true
	}
	return false
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear removes all cached results.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]cacheEntry)
}
