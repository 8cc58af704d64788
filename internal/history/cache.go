package history

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"bookfind/internal/apiclient"
	"bookfind/internal/search"
	"bookfind/pkg/domain"
)

// Cache lazily fetches and memoizes per-entry result sets of past searches.
// The entry list itself is never cached: it is cheap and must reflect
// server-side truth, including deletions made elsewhere.
type Cache struct {
	client *apiclient.Client
	group  singleflight.Group

	mu       sync.Mutex
	details  map[int]domain.HistoryDetail
	expanded map[int]bool
	// gen is bumped on delete so a fetch that loses the race cannot
	// repopulate the cache with a dead entry's detail.
	gen map[int]uint64
}

// NewCache builds a history cache over the service client.
func NewCache(client *apiclient.Client) *Cache {
	return &Cache{
		client:   client,
		details:  make(map[int]domain.HistoryDetail),
		expanded: make(map[int]bool),
		gen:      make(map[int]uint64),
	}
}

// ListEntries fetches the current history summary from the service.
func (c *Cache) ListEntries(ctx context.Context) ([]domain.HistoryEntry, error) {
	return c.client.SearchHistory(ctx)
}

// Expand returns the detail for entryID, fetching it on first use.
// Concurrent expands for the same entry coalesce onto a single network
// call; every caller gets the same detail or the same failure.
func (c *Cache) Expand(ctx context.Context, entryID int) (domain.HistoryDetail, error) {
	c.mu.Lock()
	if detail, ok := c.details[entryID]; ok {
		c.expanded[entryID] = true
		c.mu.Unlock()
		return detail, nil
	}
	gen := c.gen[entryID]
	c.mu.Unlock()

	v, err, _ := c.group.Do(strconv.Itoa(entryID), func() (any, error) {
		query, raw, err := c.client.SearchHistoryDetail(ctx, entryID)
		if err != nil {
			return nil, err
		}
		return domain.HistoryDetail{
			EntryID: entryID,
			Query:   query,
			Results: search.Transform(raw),
		}, nil
	})
	if err != nil {
		return domain.HistoryDetail{}, err
	}
	detail := v.(domain.HistoryDetail)

	c.mu.Lock()
	if c.gen[entryID] == gen {
		c.details[entryID] = detail
		c.expanded[entryID] = true
	}
	c.mu.Unlock()
	return detail, nil
}

// Collapse toggles the view state only. The detail stays cached so
// re-expanding is instant.
func (c *Cache) Collapse(entryID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded[entryID] = false
}

// Expanded reports whether entryID is currently expanded.
func (c *Cache) Expanded(entryID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[entryID]
}

// Delete removes the entry on the server; only on success are the local
// detail and view state evicted, in the same step as the generation bump.
// The singleflight key is forgotten in the same step, so an expand issued
// after the delete starts a fresh fetch instead of attaching to a fetch
// that predates it. A failed delete leaves all local state untouched.
func (c *Cache) Delete(ctx context.Context, entryID int) error {
	if err := c.client.DeleteSearchHistory(ctx, entryID); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.details, entryID)
	delete(c.expanded, entryID)
	c.gen[entryID]++
	c.group.Forget(strconv.Itoa(entryID))
	c.mu.Unlock()
	return nil
}

// Cached reports whether a detail for entryID is held locally. Exposed for
// callers that render an explicit load affordance.
func (c *Cache) Cached(entryID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.details[entryID]
	return ok
}
