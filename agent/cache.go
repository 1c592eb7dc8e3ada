package agent

// CacheManager is the key/value facade over a Store. The cache is unbounded,
// has no TTL, and lives for the lifetime of the owning Agent.
type CacheManager struct {
	store Store
}

// NewCacheManager creates a CacheManager over store.
func NewCacheManager(store Store) *CacheManager {
	return &CacheManager{store: store}
}

// Set stores a value under key, overwriting any previous value.
func (c *CacheManager) Set(key string, value interface{}) {
	c.store.SetCache(key, value)
}

// Get looks up a key. The second result reports presence; a miss never
// mutates the cache.
func (c *CacheManager) Get(key string) (interface{}, bool) {
	return c.store.GetCache(key)
}

// All returns a copy of the entire cache.
func (c *CacheManager) All() map[string]interface{} {
	return c.store.CacheAll()
}

// Clear resets the cache, leaving any history on the shared store intact.
func (c *CacheManager) Clear() {
	c.store.Clear(false, true)
}
