package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestListForSaleCommand(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewListingHandler(env.uow, env.log)

	err := handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  500,
	})
	assert.ErrorIs(t, err, domainErrors.ErrNotOwner)

	err = handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  0,
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPrice)

	require.NoError(t, handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  500,
	}))

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, item.ForSale)
	assert.Equal(t, int64(500), item.Price)
}

func TestSetPriceCommand(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewListingHandler(env.uow, env.log)

	err := handler.HandleSetPrice(context.Background(), commands.SetPriceCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  900,
	})
	assert.ErrorIs(t, err, domainErrors.ErrNotForSale)

	require.NoError(t, handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  500,
	}))
	require.NoError(t, handler.HandleSetPrice(context.Background(), commands.SetPriceCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  900,
	}))

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), item.Price)
	assert.True(t, item.ForSale)
}

func TestTransferCommand(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewListingHandler(env.uow, env.log)

	err := handler.HandleTransfer(context.Background(), commands.TransferCommand{
		Caller:    "alice",
		ItemID:    itemID,
		Recipient: "alice",
	})
	assert.ErrorIs(t, err, domainErrors.ErrSelfTransfer)

	err = handler.HandleTransfer(context.Background(), commands.TransferCommand{
		Caller:    "bob",
		ItemID:    itemID,
		Recipient: "carol",
	})
	assert.ErrorIs(t, err, domainErrors.ErrNotOwner)

	require.NoError(t, handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  500,
	}))
	require.NoError(t, handler.HandleTransfer(context.Background(), commands.TransferCommand{
		Caller:    "alice",
		ItemID:    itemID,
		Recipient: "bob",
	}))

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, "bob", item.Owner)
	assert.False(t, item.ForSale, "transfer delists")
	assert.Zero(t, item.Price)
}

func TestTransferRemovesRecipientsOwnOffer(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	offerHandler := commands.NewOfferHandler(env.uow, env.clock, env.log)
	require.NoError(t, offerHandler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  300,
	}))
	require.NoError(t, offerHandler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "carol",
		ItemID: itemID,
		Price:  250,
	}))

	handler := commands.NewListingHandler(env.uow, env.log)
	require.NoError(t, handler.HandleTransfer(context.Background(), commands.TransferCommand{
		Caller:    "alice",
		ItemID:    itemID,
		Recipient: "bob",
	}))

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, "bob", item.Owner)

	offers, err := env.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, offers, 1, "new owner's bid is gone, carol's stays")
	assert.Equal(t, "carol", offers[0].Buyer)
}

func TestListingUnknownItem(t *testing.T) {
	env := newTestEnv(t)

	handler := commands.NewListingHandler(env.uow, env.log)
	err := handler.HandleListForSale(context.Background(), commands.ListForSaleCommand{
		Caller: "alice",
		ItemID: 42,
		Price:  500,
	})
	assert.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}
