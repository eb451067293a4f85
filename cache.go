// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	_ Cache = (*LRUCache)(nil)
)

var actionsSeq uint64

// CacheKey identifies the content of a source file and the settings it was
// parsed with.
type CacheKey struct {
	Name   string
	Size   int
	Hash   uint64
	Config uint64
}

// NewCacheKey returns the key of buf coming from a file named name. The
// Config field is left zero.
func NewCacheKey(name string, buf []byte) CacheKey {
	return CacheKey{Name: name, Size: len(buf), Hash: spooky.Hash64(buf)}
}

func (c *Config) cacheKey(name string, buf []byte) CacheKey {
	k := NewCacheKey(name, buf)
	k.Config = c.fingerprint
	return k
}

// settingsHash hashes the settings the parse result of a file depends on.
// Configs with custom actions never share a hash.
func (c *Config) settingsHash() uint64 {
	var b strings.Builder
	fmt.Fprintf(&b, "depth %d budget %d\n", c.maxDepth, c.budget)
	keys := maps.Keys(c.operators)
	slices.Sort(keys)
	for _, k := range keys {
		op := c.operators[k]
		fmt.Fprintf(&b, "%s %d %v\n", k, op.Precedence, op.Assoc)
	}
	if c.actions != nil {
		fmt.Fprintf(&b, "actions %d\n", atomic.AddUint64(&actionsSeq, 1))
	}
	return spooky.Hash64([]byte(b.String()))
}

// Cache stores parsed files. Implementations must be safe for concurrent use
// by multiple goroutines. A Cache can be shared by Configs, ParseFile keys the
// entries by the settings of the Config as well.
type Cache interface {
	Get(CacheKey) (*File, bool)
	Put(CacheKey, *File)
}

// LRUCache is a Cache retaining a bounded number of the most recently used
// files.
type LRUCache struct {
	c *lru.Cache[CacheKey, *File]

	hits   int
	misses int
	sync.Mutex
}

// NewLRUCache returns a newly created LRUCache holding up to size files.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[CacheKey, *File](size)
	if err != nil {
		return nil, err
	}

	return &LRUCache{c: c}, nil
}

// Get implements Cache.
func (c *LRUCache) Get(k CacheKey) (*File, bool) {
	f, ok := c.c.Get(k)
	c.Lock()
	switch {
	case ok:
		c.hits++
	default:
		c.misses++
	}
	c.Unlock()
	return f, ok
}

// Put implements Cache.
func (c *LRUCache) Put(k CacheKey, f *File) { c.c.Add(k, f) }

// Len reports the number of cached files.
func (c *LRUCache) Len() int { return c.c.Len() }

// Stats reports the number of cache hits and misses.
func (c *LRUCache) Stats() (hits, misses int) {
	c.Lock()
	defer c.Unlock()

	return c.hits, c.misses
}
