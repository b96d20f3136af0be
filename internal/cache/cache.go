package cache

import (
	"sync"
	"untile/pkg/model"
)

// ResultCache keeps descrambled pages keyed by the url they were served from and the variant they were rendered
// as, the variant covering everything besides the url that changes the result. Entries live until they are
// invalidated, either one url at a time or all at once.
type ResultCache struct {
	mu    sync.RWMutex
	pages map[string]map[string]model.OutputPage
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		pages: make(map[string]map[string]model.OutputPage),
	}
}

func (c *ResultCache) Get(url, variant string) (model.OutputPage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page, found := c.pages[url][variant]
	return page, found
}

func (c *ResultCache) Put(url, variant string, page model.OutputPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pages[url] == nil {
		c.pages[url] = make(map[string]model.OutputPage)
	}
	c.pages[url][variant] = page
}

// Invalidate drops every variant cached for url and reports whether anything was cached
func (c *ResultCache) Invalidate(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, found := c.pages[url]
	delete(c.pages, url)
	return found
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.pages = make(map[string]map[string]model.OutputPage)
	c.mu.Unlock()
}

// Len returns the number of cached urls
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
