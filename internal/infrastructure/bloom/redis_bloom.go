package bloom

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/redis/go-redis/v9"
)

// RedisBloomFilter keeps its bits in a single redis string, shared by every
// service instance. Used to pre-screen (item, account) like pairs before
// touching the authoritative set.
type RedisBloomFilter struct {
	client *redis.Client
	key    string
	bits   uint64
	hashes uint64
}

func NewRedisBloomFilter(client *redis.Client, key string, expectedElements uint64, falsePositiveRate float64) *RedisBloomFilter {
	bits, hashes := optimalParameters(expectedElements, falsePositiveRate)

	return &RedisBloomFilter{
		client: client,
		key:    key,
		bits:   bits,
		hashes: hashes,
	}
}

func (bf *RedisBloomFilter) Add(ctx context.Context, element string) error {
	pipe := bf.client.Pipeline()

	for _, pos := range bf.positions(element) {
		pipe.SetBit(ctx, bf.key, int64(pos), 1)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (bf *RedisBloomFilter) Contains(ctx context.Context, element string) (bool, error) {
	positions := bf.positions(element)

	pipe := bf.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(positions))
	for i, pos := range positions {
		cmds[i] = pipe.GetBit(ctx, bf.key, int64(pos))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false, nil
		}
	}

	return true, nil
}

func (bf *RedisBloomFilter) Clear(ctx context.Context) error {
	return bf.client.Del(ctx, bf.key).Err()
}

// positions derives k bit positions via double hashing: fnv for the base,
// sha256 for the step.
func (bf *RedisBloomFilter) positions(element string) []uint64 {
	h := fnv.New64a()
	h.Write([]byte(element))
	h1 := h.Sum64()

	sum := sha256.Sum256([]byte(element))
	h2 := binary.BigEndian.Uint64(sum[:8])

	positions := make([]uint64, bf.hashes)
	for i := uint64(0); i < bf.hashes; i++ {
		positions[i] = (h1 + i*h2) % bf.bits
	}

	return positions
}

func optimalParameters(expectedElements uint64, falsePositiveRate float64) (bits, hashes uint64) {
	mFloat := -float64(expectedElements) * math.Log(falsePositiveRate) / (math.Log(2) * math.Log(2))
	bits = uint64(math.Ceil(mFloat))

	kFloat := (float64(bits) / float64(expectedElements)) * math.Log(2)
	hashes = uint64(math.Round(kFloat))
	if hashes == 0 {
		hashes = 1
	}

	return bits, hashes
}
