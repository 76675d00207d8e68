package suggest

import (
	"container/list"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

// CachedSuggester wraps an ISuggester with a bounded LRU keyed by query.
// Every insert flushes the whole cache: substring matching means a new name
// can surface under prefixes sharing none of its leading runes, so per-prefix
// invalidation would serve stale replies.
type CachedSuggester struct {
	inner      ISuggester
	maxQueries int

	mu      sync.Mutex
	order   *list.List
	entries map[string]*list.Element
	hits    int
}

type cacheEntry struct {
	key     string
	results []string
}

// NewCachedSuggester caches up to maxQueries distinct queries against inner.
func NewCachedSuggester(inner ISuggester, maxQueries int) *CachedSuggester {
	return &CachedSuggester{
		inner:      inner,
		maxQueries: maxQueries,
		order:      list.New(),
		entries:    make(map[string]*list.Element, maxQueries),
	}
}

func cacheKey(prefix string, limit int) string {
	return strconv.Itoa(limit) + ":" + prefix
}

// Insert forwards to the inner index and drops every cached reply.
func (c *CachedSuggester) Insert(name string) {
	c.inner.Insert(name)
	c.mu.Lock()
	n := len(c.entries)
	c.order.Init()
	c.entries = make(map[string]*list.Element, c.maxQueries)
	c.mu.Unlock()
	if n > 0 {
		log.Debugf("suggestion cache flushed after insert (%d queries dropped)", n)
	}
}

// PrefixSearch is a passthrough; only full suggestion replies are cached.
func (c *CachedSuggester) PrefixSearch(prefix string) []string {
	return c.inner.PrefixSearch(prefix)
}

// Suggestions serves from cache when the exact prefix and limit were asked
// before, otherwise queries the inner index and remembers the reply.
func (c *CachedSuggester) Suggestions(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	key := cacheKey(prefix, limit)

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		results := el.Value.(*cacheEntry).results
		c.hits++
		c.mu.Unlock()
		return results
	}
	c.mu.Unlock()

	results := c.inner.Suggestions(prefix, limit)

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		if len(c.entries) >= c.maxQueries {
			c.evictOldest()
		}
		c.entries[key] = c.order.PushFront(&cacheEntry{key: key, results: results})
	}
	c.mu.Unlock()
	return results
}

// Size reports the inner index size.
func (c *CachedSuggester) Size() int {
	return c.inner.Size()
}

// Stats reports cache occupancy and hit count.
func (c *CachedSuggester) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]int{
		"cachedQueries": len(c.entries),
		"maxQueries":    c.maxQueries,
		"cacheHits":     c.hits,
	}
}

func (c *CachedSuggester) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*cacheEntry)
	c.order.Remove(el)
	delete(c.entries, entry.key)
}
