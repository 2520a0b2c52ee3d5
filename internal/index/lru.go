// Package index provides the in-memory auxiliary structures the
// recommendation engine maintains over the gig catalog: an LRU cache, a
// prefix trie, an AVL ranking tree, a trending list and a user-gig
// similarity graph. All of them are disposable views rebuilt from catalog
// snapshots; none hold authoritative state.
package index

import "container/list"

// LRUCache is a bounded key/value map with least-recently-used eviction.
// Get and Set are O(1). Not safe for concurrent use; the owning index
// serializes access.
type LRUCache struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type lruEntry struct {
	key   string
	value interface{}
}

// NewLRUCache creates a cache holding at most capacity entries. Capacity
// must be positive.
func NewLRUCache(capacity int) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached value and whether it was present. A hit promotes
// the entry to most-recently-used.
func (c *LRUCache) Get(key string) (interface{}, bool) {
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).value, true
}

// Set inserts or updates a key. Inserting past capacity evicts the
// least-recently-used entry first.
func (c *LRUCache) Set(key string, value interface{}) {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruEntry).value = value
		c.order.MoveToFront(elem)
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	elem := c.order.PushFront(&lruEntry{key: key, value: value})
	c.entries[key] = elem
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	return len(c.entries)
}

// Contains reports presence without promoting the entry.
func (c *LRUCache) Contains(key string) bool {
	_, ok := c.entries[key]
	return ok
}

func (c *LRUCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.entries, oldest.Value.(*lruEntry).key)
}
