package use_cases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/application/use_cases"
	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestAcceptOfferSettlesAtOfferPrice(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 1000)
	f.makeOffer(t, "bob", itemID, 300)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)

	result, err := uc.ExecuteAccept(context.Background(), "alice", itemID, "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", result.Buyer)
	assert.Equal(t, int64(300), result.Price)
	assert.Equal(t, int64(6), result.MarketplaceFee)
	assert.Equal(t, int64(294), result.SellerRevenue)

	// The buyer funds both legs of the settlement.
	assert.Equal(t, int64(700), f.balance(t, "bob"))
	assert.Equal(t, int64(294), f.balance(t, "alice"))
	assert.Equal(t, int64(6), f.balance(t, feeAccount))

	item, err := f.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, "bob", item.Owner)
	assert.False(t, item.ForSale)
}

func TestAcceptOfferClearsEveryOffer(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 1000)
	f.makeOffer(t, "bob", itemID, 300)
	f.makeOffer(t, "carol", itemID, 280)
	f.makeOffer(t, "dave", itemID, 310)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)

	_, err := uc.ExecuteAccept(context.Background(), "alice", itemID, "bob")
	require.NoError(t, err)

	offers, err := f.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Empty(t, offers, "settlement invalidates losing offers too")
}

func TestAcceptOfferRequiresOwner(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 1000)
	f.makeOffer(t, "bob", itemID, 300)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)

	_, err := uc.ExecuteAccept(context.Background(), "carol", itemID, "bob")
	assert.ErrorIs(t, err, domainErrors.ErrNotOwner)

	item, getErr := f.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, getErr)
	assert.Equal(t, "alice", item.Owner)
	assert.Equal(t, int64(1000), f.balance(t, "bob"))

	offers, offerErr := f.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, offerErr)
	assert.Len(t, offers, 1)
}

func TestAcceptOfferRequiresListedItem(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 2000)
	f.makeOffer(t, "bob", itemID, 300)

	purchase := use_cases.NewPurchaseUseCase(f.uow, f.cache, feeAccount, f.log)
	_, err := purchase.ExecutePurchase(context.Background(), "bob", itemID, 500)
	require.NoError(t, err)

	// bob now owns the item and it is delisted; carol bids on it anyway.
	f.credit(t, "carol", 1000)
	f.makeOffer(t, "carol", itemID, 400)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)
	_, err = uc.ExecuteAccept(context.Background(), "bob", itemID, "carol")
	assert.ErrorIs(t, err, domainErrors.ErrNotForSale)
}

func TestAcceptOfferNoMatchingOffer(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 1000)
	f.makeOffer(t, "bob", itemID, 300)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)

	_, err := uc.ExecuteAccept(context.Background(), "alice", itemID, "carol")
	assert.ErrorIs(t, err, domainErrors.ErrNoMatchingOffer)
}

func TestAcceptOfferInsufficientBuyerFunds(t *testing.T) {
	f, itemID := newMarketFixture(t, 500)
	f.credit(t, "bob", 100)
	f.makeOffer(t, "bob", itemID, 300)

	uc := use_cases.NewAcceptOfferUseCase(f.uow, f.cache, feeAccount, f.log)

	_, err := uc.ExecuteAccept(context.Background(), "alice", itemID, "bob")
	require.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)

	item, getErr := f.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, getErr)
	assert.Equal(t, "alice", item.Owner)
	assert.True(t, item.ForSale)
	assert.Equal(t, int64(100), f.balance(t, "bob"))

	offers, offerErr := f.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, offerErr)
	assert.Len(t, offers, 1, "failed settlement keeps the standing bid")
}
