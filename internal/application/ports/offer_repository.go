package ports

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

type OfferRepository interface {
	// UpsertOffer stores an offer, replacing any previous offer by the same
	// buyer on the same item.
	UpsertOffer(ctx context.Context, offer *market.Offer) error
	GetOffersByItemID(ctx context.Context, itemID int64) ([]*market.Offer, error)
	// DeleteOffer removes one buyer's offer and reports whether it existed.
	DeleteOffer(ctx context.Context, itemID int64, buyer string) (bool, error)
	// DeleteOffersByItemID clears every pending offer on an item.
	DeleteOffersByItemID(ctx context.Context, itemID int64) error
}
