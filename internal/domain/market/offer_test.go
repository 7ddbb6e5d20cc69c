package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestNewOffer(t *testing.T) {
	item := newTestItem(t)
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	offer, err := NewOffer(item, "bob", 300, now)
	require.NoError(t, err)
	assert.Equal(t, item.ID, offer.ItemID)
	assert.Equal(t, "bob", offer.Buyer)
	assert.Equal(t, int64(300), offer.Price)

	_, err = NewOffer(item, "bob", 0, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOfferPrice)

	_, err = NewOffer(item, "bob", -5, now)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOfferPrice)

	_, err = NewOffer(item, "alice", 300, now)
	assert.ErrorIs(t, err, domainErrors.ErrOwnerCannotOffer)
}

func TestFindOffer(t *testing.T) {
	now := time.Now().UTC()
	offers := []*Offer{
		{ItemID: 1, Buyer: "bob", Price: 300, CreatedAt: now},
		{ItemID: 1, Buyer: "carol", Price: 350, CreatedAt: now},
	}

	offer, err := FindOffer(offers, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(350), offer.Price)

	_, err = FindOffer(offers, "dave")
	assert.ErrorIs(t, err, domainErrors.ErrNoMatchingOffer)

	_, err = FindOffer(nil, "bob")
	assert.ErrorIs(t, err, domainErrors.ErrNoMatchingOffer)
}
