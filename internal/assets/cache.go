package assets

import "sync"

type cacheEntry struct {
	data []byte
	tags map[string]struct{}
}

// Cache is an in-memory cache of lump contents keyed by lump number.
// Each entry is held by one or more tags and stays cached until the last
// of them lets go, so everything loaded for one level can be released
// together without evicting data another level still uses.
type Cache struct {
	data map[int]cacheEntry
	mu   sync.Mutex

	// Stats
	hits     int
	misses   int
	releases int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[int]cacheEntry),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key int) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return entry.data, ok
}

// Set stores an item in cache and adds tag to its holders. Data for a key
// that is already cached replaces the old contents.
func (c *Cache) Set(key int, data []byte, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.data[key]
	if !ok {
		entry.tags = make(map[string]struct{})
	}
	entry.data = data
	entry.tags[tag] = struct{}{}
	c.data[key] = entry
}

// Release drops tag's hold on one item and reports whether the item was
// evicted.
func (c *Cache) Release(key int, tag string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.data[key]
	if !ok {
		return false
	}
	return c.drop(key, entry, tag)
}

// ReleaseTag drops tag's hold on every item and returns how many items
// were evicted.
func (c *Cache) ReleaseTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.data {
		if c.drop(key, entry, tag) {
			n++
		}
	}
	return n
}

// Holders returns the number of tags holding key.
func (c *Cache) Holders(key int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data[key].tags)
}

func (c *Cache) drop(key int, entry cacheEntry, tag string) bool {
	if _, ok := entry.tags[tag]; !ok {
		return false
	}
	delete(entry.tags, tag)
	if len(entry.tags) > 0 {
		return false
	}
	delete(c.data, key)
	c.releases++
	return true
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[int]cacheEntry)
	c.hits = 0
	c.misses = 0
	c.releases = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses, releases int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.releases
}
