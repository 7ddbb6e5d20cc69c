package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/pkg/bloom"
)

// Cache is a process-local stand-in for the redis cache. It mirrors the
// same shape: a likers set fronted by a bloom prefilter, a trending score
// board, and best-effort locks. Useful for tests and single-node runs.
type Cache struct {
	mu         sync.Mutex
	likeFilter *bloom.Filter
	likers     map[int64]map[string]bool
	likeCounts map[int64]int64
	trending   map[int64]int64
	locks      map[string]time.Time
}

func NewCache() *Cache {
	return &Cache{
		likeFilter: bloom.NewFilterWithExpectedItems(100000, 0.01),
		likers:     make(map[int64]map[string]bool),
		likeCounts: make(map[int64]int64),
		trending:   make(map[int64]int64),
		locks:      make(map[string]time.Time),
	}
}

func likerKey(itemID int64, account string) string {
	return fmt.Sprintf("%d:%s", itemID, account)
}

func (c *Cache) AddLiker(ctx context.Context, itemID int64, account string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.likers[itemID]
	if !ok {
		set = make(map[string]bool)
		c.likers[itemID] = set
	}
	set[account] = true
	c.likeFilter.Add(likerKey(itemID, account))
	return nil
}

func (c *Cache) HasLiked(ctx context.Context, itemID int64, account string) (bool, error) {
	if !c.likeFilter.Contains(likerKey(itemID, account)) {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.likers[itemID][account], nil
}

func (c *Cache) GetLikeCount(ctx context.Context, itemID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.likeCounts[itemID], nil
}

func (c *Cache) SetLikeCount(ctx context.Context, itemID int64, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.likeCounts[itemID] = count
	return nil
}

func (c *Cache) RecordTrendingLike(ctx context.Context, itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trending[itemID]++
	return nil
}

func (c *Cache) SetTrendingScore(ctx context.Context, itemID int64, score int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trending[itemID] = score
	return nil
}

func (c *Cache) GetTrendingItems(ctx context.Context, limit int) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, 0, len(c.trending))
	for id := range c.trending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if c.trending[ids[i]] != c.trending[ids[j]] {
			return c.trending[ids[i]] > c.trending[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (c *Cache) DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if deadline, held := c.locks[key]; held && now.Before(deadline) {
		return false, nil
	}
	c.locks[key] = now.Add(expiration)
	return true, nil
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
	return nil
}
