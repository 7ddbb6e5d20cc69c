package memory

import (
	"sync"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

// Store is the in-memory marketplace registry plus account ledger. One mutex
// serializes whole operations: a transaction holds it from Begin to
// Commit/Rollback, so no partial mutation is ever observable. Used as the
// test backend and for single-node development runs.
type Store struct {
	mu sync.Mutex

	items    []*market.Item
	offers   map[int64][]*market.Offer
	likers   map[int64][]string
	balances map[string]int64
}

type storeState struct {
	items    []*market.Item
	offers   map[int64][]*market.Offer
	likers   map[int64][]string
	balances map[string]int64
}

func NewStore() *Store {
	return &Store{
		offers:   make(map[int64][]*market.Offer),
		likers:   make(map[int64][]string),
		balances: make(map[string]int64),
	}
}

func (s *Store) snapshot() *storeState {
	state := &storeState{
		items:    make([]*market.Item, len(s.items)),
		offers:   make(map[int64][]*market.Offer, len(s.offers)),
		likers:   make(map[int64][]string, len(s.likers)),
		balances: make(map[string]int64, len(s.balances)),
	}

	for i, item := range s.items {
		copied := *item
		state.items[i] = &copied
	}
	for id, offers := range s.offers {
		copied := make([]*market.Offer, len(offers))
		for i, offer := range offers {
			o := *offer
			copied[i] = &o
		}
		state.offers[id] = copied
	}
	for id, likers := range s.likers {
		state.likers[id] = append([]string(nil), likers...)
	}
	for account, balance := range s.balances {
		state.balances[account] = balance
	}

	return state
}

func (s *Store) restore(state *storeState) {
	s.items = state.items
	s.offers = state.offers
	s.likers = state.likers
	s.balances = state.balances
}

// withLock runs fn under the store mutex unless the caller already holds it
// as part of an open transaction.
func (s *Store) withLock(held bool, fn func()) {
	if !held {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}
