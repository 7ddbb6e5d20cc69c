package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/bloom"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

const trendingKey = "market:trending"

// Cache accelerates engagement lookups. Likers live in one set per item,
// pre-screened by a shared bloom filter over "itemID:account" pairs; trending
// is a ZSET scored by likes. All of it is rebuildable from postgres.
type Cache struct {
	client      *redis.Client
	likesFilter *bloom.RedisBloomFilter
	logger      *logger.Logger
}

func NewCache(conn *Connection, log *logger.Logger) *Cache {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &Cache{
		client:      client,
		likesFilter: bloom.NewRedisBloomFilter(client, "bloom:likes", 1000000, 0.01),
		logger:      log,
	}
}

func likePair(itemID int64, account string) string {
	return fmt.Sprintf("%d:%s", itemID, account)
}

func (c *Cache) AddLiker(ctx context.Context, itemID int64, account string) error {
	key := fmt.Sprintf("item:%d:likers", itemID)
	if err := c.client.SAdd(ctx, key, account).Err(); err != nil {
		return err
	}
	return c.likesFilter.Add(ctx, likePair(itemID, account))
}

func (c *Cache) HasLiked(ctx context.Context, itemID int64, account string) (bool, error) {
	// The bloom filter answers most "never liked" cases without touching the
	// set; a positive is confirmed against the set since blooms false-positive.
	maybe, err := c.likesFilter.Contains(ctx, likePair(itemID, account))
	if err != nil {
		return false, err
	}
	if !maybe {
		return false, nil
	}

	key := fmt.Sprintf("item:%d:likers", itemID)
	return c.client.SIsMember(ctx, key, account).Result()
}

func (c *Cache) GetLikeCount(ctx context.Context, itemID int64) (int64, error) {
	key := fmt.Sprintf("item:%d:likes", itemID)
	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (c *Cache) SetLikeCount(ctx context.Context, itemID int64, count int64) error {
	key := fmt.Sprintf("item:%d:likes", itemID)
	return c.client.Set(ctx, key, count, 0).Err()
}

func (c *Cache) RecordTrendingLike(ctx context.Context, itemID int64) error {
	return c.client.ZIncrBy(ctx, trendingKey, 1, strconv.FormatInt(itemID, 10)).Err()
}

func (c *Cache) SetTrendingScore(ctx context.Context, itemID int64, score int64) error {
	return c.client.ZAdd(ctx, trendingKey, redis.Z{
		Score:  float64(score),
		Member: strconv.FormatInt(itemID, 10),
	}).Err()
}

func (c *Cache) GetTrendingItems(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		return nil, nil
	}

	members, err := c.client.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			c.logger.Warn("Skipping malformed trending member", "member", member)
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (c *Cache) DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	lockType := key
	if i := strings.IndexByte(key, ':'); i > 0 {
		lockType = key[:i]
	}
	monitoring.RedisLockAttemptsTotal.WithLabelValues(lockType).Inc()

	lockKey := fmt.Sprintf("lock:%s", key)
	result, err := c.client.SetNX(ctx, lockKey, "1", expiration).Result()
	switch {
	case err != nil:
		monitoring.RedisLockFailureTotal.WithLabelValues(lockType, "redis_error").Inc()
	case result:
		monitoring.RedisLockSuccessTotal.WithLabelValues(lockType).Inc()
	default:
		monitoring.RedisLockFailureTotal.WithLabelValues(lockType, "already_locked").Inc()
	}
	return result, err
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	lockKey := fmt.Sprintf("lock:%s", key)
	return c.client.Del(ctx, lockKey).Err()
}
