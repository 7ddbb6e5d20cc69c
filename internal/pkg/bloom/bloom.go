package bloom

import (
	"hash/fnv"
	"math"
	"sync"
)

// Filter is an in-process bloom filter used as a cheap prefilter for
// membership checks. Negative answers are exact, positive answers may
// be false and must be confirmed against the backing store.
type Filter struct {
	words     []uint64
	size      uint
	hashCount uint
	mutex     sync.RWMutex
}

func NewFilter(size, hashCount uint) *Filter {
	return &Filter{
		words:     make([]uint64, (size+63)/64),
		size:      size,
		hashCount: hashCount,
	}
}

func NewFilterWithExpectedItems(expectedItems uint, falsePositiveProb float64) *Filter {
	size := optimalSize(expectedItems, falsePositiveProb)
	hashCount := optimalHashCount(size, expectedItems)

	return NewFilter(size, hashCount)
}

func (f *Filter) Add(item string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for i := uint(0); i < f.hashCount; i++ {
		position := f.hash(item, i)
		f.words[position/64] |= 1 << (position % 64)
	}
}

func (f *Filter) Contains(item string) bool {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	for i := uint(0); i < f.hashCount; i++ {
		position := f.hash(item, i)
		if f.words[position/64]&(1<<(position%64)) == 0 {
			return false
		}
	}

	return true
}

func (f *Filter) Clear() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.words = make([]uint64, (f.size+63)/64)
}

func (f *Filter) hash(item string, seed uint) uint {
	h := fnv.New64a()
	h.Write([]byte(item))
	h.Write([]byte{byte(seed)})
	return uint(h.Sum64() % uint64(f.size))
}

func optimalSize(expectedItems uint, falsePositiveProb float64) uint {
	return uint(math.Ceil(-float64(expectedItems) * math.Log(falsePositiveProb) / math.Pow(math.Log(2), 2)))
}

func optimalHashCount(size, expectedItems uint) uint {
	return uint(math.Max(1, math.Round(float64(size)/float64(expectedItems)*math.Log(2))))
}
