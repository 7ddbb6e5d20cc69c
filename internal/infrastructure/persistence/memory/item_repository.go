package memory

import (
	"context"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

type ItemRepository struct {
	store *Store
	isTx  bool
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *market.Item) (int64, error) {
	var id int64

	r.store.withLock(r.isTx, func() {
		id = int64(len(r.store.items)) + 1
		copied := *item
		copied.ID = id
		r.store.items = append(r.store.items, &copied)
	})

	item.ID = id
	return id, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id int64) (*market.Item, error) {
	var item *market.Item

	r.store.withLock(r.isTx, func() {
		if id >= 1 && id <= int64(len(r.store.items)) {
			copied := *r.store.items[id-1]
			item = &copied
		}
	})

	if item == nil {
		return nil, domainErrors.ErrItemNotFound
	}
	return item, nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item *market.Item) error {
	var found bool

	r.store.withLock(r.isTx, func() {
		if item.ID >= 1 && item.ID <= int64(len(r.store.items)) {
			copied := *item
			r.store.items[item.ID-1] = &copied
			found = true
		}
	})

	if !found {
		return domainErrors.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) ListItems(ctx context.Context) ([]*market.Item, error) {
	var items []*market.Item

	r.store.withLock(r.isTx, func() {
		items = make([]*market.Item, len(r.store.items))
		for i, item := range r.store.items {
			copied := *item
			items[i] = &copied
		}
	})

	return items, nil
}

func (r *ItemRepository) SearchItems(ctx context.Context, q market.Query) ([]*market.Item, error) {
	items, err := r.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return market.FilterAndSort(items, q), nil
}

func (r *ItemRepository) AddLike(ctx context.Context, itemID int64, account string) (bool, error) {
	var added, found bool

	r.store.withLock(r.isTx, func() {
		if itemID < 1 || itemID > int64(len(r.store.items)) {
			return
		}
		found = true

		for _, liker := range r.store.likers[itemID] {
			if liker == account {
				return
			}
		}

		r.store.likers[itemID] = append(r.store.likers[itemID], account)
		r.store.items[itemID-1].Likes++
		added = true
	})

	if !found {
		return false, domainErrors.ErrItemNotFound
	}
	return added, nil
}

func (r *ItemRepository) HasLiked(ctx context.Context, itemID int64, account string) (bool, error) {
	var liked bool

	r.store.withLock(r.isTx, func() {
		for _, liker := range r.store.likers[itemID] {
			if liker == account {
				liked = true
				return
			}
		}
	})

	return liked, nil
}

func (r *ItemRepository) GetLikers(ctx context.Context, itemID int64) ([]string, error) {
	var likers []string

	r.store.withLock(r.isTx, func() {
		likers = append([]string(nil), r.store.likers[itemID]...)
	})

	return likers, nil
}
