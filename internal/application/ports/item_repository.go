package ports

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, item *market.Item) (int64, error)
	GetItemByID(ctx context.Context, id int64) (*market.Item, error)
	UpdateItem(ctx context.Context, item *market.Item) error
	ListItems(ctx context.Context) ([]*market.Item, error)
	SearchItems(ctx context.Context, q market.Query) ([]*market.Item, error)

	AddLike(ctx context.Context, itemID int64, account string) (bool, error)
	HasLiked(ctx context.Context, itemID int64, account string) (bool, error)
	GetLikers(ctx context.Context, itemID int64) ([]string, error)
}
