package queries

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

// ItemQueries serves the read-only projections over the registry. Nothing
// here mutates state; every call recomputes from the current registry
// contents (plus rebuildable cache data for like counts and trending).
type ItemQueries struct {
	items  ports.ItemRepository
	offers ports.OfferRepository
	cache  ports.Cache
	log    *logger.Logger
}

func NewItemQueries(items ports.ItemRepository, offers ports.OfferRepository, cache ports.Cache, log *logger.Logger) *ItemQueries {
	return &ItemQueries{
		items:  items,
		offers: offers,
		cache:  cache,
		log:    log,
	}
}

func (q *ItemQueries) GetItem(ctx context.Context, id int64) (*market.Item, error) {
	return q.items.GetItemByID(ctx, id)
}

func (q *ItemQueries) Browse(ctx context.Context, query market.Query) ([]*market.Item, error) {
	return q.items.SearchItems(ctx, query)
}

func (q *ItemQueries) ItemsForSale(ctx context.Context) ([]*market.Item, error) {
	return q.items.SearchItems(ctx, market.Query{ForSaleOnly: true})
}

func (q *ItemQueries) ItemsByOwner(ctx context.Context, owner string) ([]*market.Item, error) {
	return q.items.SearchItems(ctx, market.Query{Owner: owner})
}

func (q *ItemQueries) ItemsByRarity(ctx context.Context, rarity market.Rarity) ([]*market.Item, error) {
	return q.items.SearchItems(ctx, market.Query{Rarity: rarity})
}

func (q *ItemQueries) ListOffers(ctx context.Context, itemID int64) ([]*market.Offer, error) {
	if _, err := q.items.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return q.offers.GetOffersByItemID(ctx, itemID)
}

func (q *ItemQueries) GetLikers(ctx context.Context, itemID int64) ([]string, error) {
	if _, err := q.items.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return q.items.GetLikers(ctx, itemID)
}

// GetLikeCount prefers the cached counter and falls back to the registry.
func (q *ItemQueries) GetLikeCount(ctx context.Context, itemID int64) (int64, error) {
	count, err := q.cache.GetLikeCount(ctx, itemID)
	if err == nil && count > 0 {
		return count, nil
	}
	if err != nil {
		q.log.Warn("Like count cache read failed", "error", err, "item_id", itemID)
	}

	item, err := q.items.GetItemByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return item.Likes, nil
}

// Trending returns the most-liked items from the cache snapshot, resolved
// against the registry. Items deleted from the snapshot window are skipped.
func (q *ItemQueries) Trending(ctx context.Context, limit int) ([]*market.Item, error) {
	ids, err := q.cache.GetTrendingItems(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*market.Item, 0, len(ids))
	for _, id := range ids {
		item, err := q.items.GetItemByID(ctx, id)
		if err != nil {
			q.log.Warn("Trending item lookup failed", "error", err, "item_id", id)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}
