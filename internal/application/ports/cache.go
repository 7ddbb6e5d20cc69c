package ports

import (
	"context"
	"time"
)

// Cache accelerates engagement reads and serializes settlements. Redis holds a
// likers set per item fronted by a bloom filter, a trending ZSET, and the
// distributed purchase locks. Postgres stays the source of truth; everything
// here is rebuildable.
type Cache interface {
	AddLiker(ctx context.Context, itemID int64, account string) error
	// HasLiked may report false for a like that only exists in the database;
	// it never confirms a like that was not recorded.
	HasLiked(ctx context.Context, itemID int64, account string) (bool, error)
	GetLikeCount(ctx context.Context, itemID int64) (int64, error)
	SetLikeCount(ctx context.Context, itemID int64, count int64) error

	RecordTrendingLike(ctx context.Context, itemID int64) error
	SetTrendingScore(ctx context.Context, itemID int64, score int64) error
	GetTrendingItems(ctx context.Context, limit int) ([]int64, error)

	DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
