package market

import (
	"time"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

// Offer is a buyer's standing bid on an item. A buyer holds at most one live
// offer per item; placing another replaces the previous one.
type Offer struct {
	ItemID    int64
	Buyer     string
	Price     int64
	CreatedAt time.Time
}

func NewOffer(item *Item, buyer string, price int64, createdAt time.Time) (*Offer, error) {
	if price <= 0 {
		return nil, domainErrors.ErrInvalidOfferPrice
	}
	if item.IsOwnedBy(buyer) {
		return nil, domainErrors.ErrOwnerCannotOffer
	}

	return &Offer{
		ItemID:    item.ID,
		Buyer:     buyer,
		Price:     price,
		CreatedAt: createdAt,
	}, nil
}

// FindOffer scans offers in insertion order and returns the first one placed
// by the given buyer.
func FindOffer(offers []*Offer, buyer string) (*Offer, error) {
	for _, offer := range offers {
		if offer.Buyer == buyer {
			return offer, nil
		}
	}
	return nil, domainErrors.ErrNoMatchingOffer
}
