package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestMakeOffer(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewOfferHandler(env.uow, env.clock, env.log)

	err := handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "alice",
		ItemID: itemID,
		Price:  300,
	})
	assert.ErrorIs(t, err, domainErrors.ErrOwnerCannotOffer)

	err = handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  0,
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOfferPrice)

	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  300,
	}))

	offers, err := env.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "bob", offers[0].Buyer)
	assert.Equal(t, int64(300), offers[0].Price)
}

func TestMakeOfferReplacesPreviousBid(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewOfferHandler(env.uow, env.clock, env.log)

	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  300,
	}))
	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "carol",
		ItemID: itemID,
		Price:  320,
	}))
	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  350,
	}))

	offers, err := env.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, offers, 2, "a repeat bid replaces, never stacks")
	assert.Equal(t, "bob", offers[0].Buyer)
	assert.Equal(t, int64(350), offers[0].Price, "replacement keeps the original slot")
	assert.Equal(t, "carol", offers[1].Buyer)
}

func TestDeclineOffer(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewOfferHandler(env.uow, env.clock, env.log)

	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Price:  300,
	}))
	require.NoError(t, handler.HandleMakeOffer(context.Background(), commands.MakeOfferCommand{
		Caller: "carol",
		ItemID: itemID,
		Price:  320,
	}))

	err := handler.HandleDeclineOffer(context.Background(), commands.DeclineOfferCommand{
		Caller: "bob",
		ItemID: itemID,
		Buyer:  "carol",
	})
	assert.ErrorIs(t, err, domainErrors.ErrNotOwner, "only the owner declines")

	err = handler.HandleDeclineOffer(context.Background(), commands.DeclineOfferCommand{
		Caller: "alice",
		ItemID: itemID,
		Buyer:  "dave",
	})
	assert.ErrorIs(t, err, domainErrors.ErrNoMatchingOffer)

	require.NoError(t, handler.HandleDeclineOffer(context.Background(), commands.DeclineOfferCommand{
		Caller: "alice",
		ItemID: itemID,
		Buyer:  "bob",
	}))

	offers, err := env.uow.Offers().GetOffersByItemID(context.Background(), itemID)
	require.NoError(t, err)
	require.Len(t, offers, 1, "only the matched offer is removed")
	assert.Equal(t, "carol", offers[0].Buyer)
}
