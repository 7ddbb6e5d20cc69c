package memory

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

type OfferRepository struct {
	store *Store
	isTx  bool
}

func (r *OfferRepository) UpsertOffer(ctx context.Context, offer *market.Offer) error {
	r.store.withLock(r.isTx, func() {
		copied := *offer
		offers := r.store.offers[offer.ItemID]

		for i, existing := range offers {
			if existing.Buyer == offer.Buyer {
				offers[i] = &copied
				return
			}
		}

		r.store.offers[offer.ItemID] = append(offers, &copied)
	})

	return nil
}

func (r *OfferRepository) GetOffersByItemID(ctx context.Context, itemID int64) ([]*market.Offer, error) {
	var offers []*market.Offer

	r.store.withLock(r.isTx, func() {
		offers = make([]*market.Offer, 0, len(r.store.offers[itemID]))
		for _, offer := range r.store.offers[itemID] {
			copied := *offer
			offers = append(offers, &copied)
		}
	})

	return offers, nil
}

func (r *OfferRepository) DeleteOffer(ctx context.Context, itemID int64, buyer string) (bool, error) {
	var removed bool

	r.store.withLock(r.isTx, func() {
		offers := r.store.offers[itemID]
		for i, offer := range offers {
			if offer.Buyer == buyer {
				r.store.offers[itemID] = append(offers[:i:i], offers[i+1:]...)
				removed = true
				return
			}
		}
	})

	return removed, nil
}

func (r *OfferRepository) DeleteOffersByItemID(ctx context.Context, itemID int64) error {
	r.store.withLock(r.isTx, func() {
		delete(r.store.offers, itemID)
	})

	return nil
}
