package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestLikeRoutesFullFeeToCreator(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")
	env.credit(t, "bob", 100)

	handler := commands.NewEngagementHandler(env.uow, env.cache, feeAccount, env.log)

	resp, err := handler.HandleLike(context.Background(), commands.LikeCommand{
		Caller: "bob",
		ItemID: itemID,
		Fee:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Likes)

	// Likes carry no marketplace cut.
	assert.Equal(t, int64(90), env.balance(t, "bob"))
	assert.Equal(t, int64(10), env.balance(t, "alice"))
	assert.Zero(t, env.balance(t, feeAccount))

	likers, err := env.uow.Items().GetLikers(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, likers)
}

func TestLikeIsOncePerAccount(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")
	env.credit(t, "bob", 100)

	handler := commands.NewEngagementHandler(env.uow, env.cache, feeAccount, env.log)

	_, err := handler.HandleLike(context.Background(), commands.LikeCommand{Caller: "bob", ItemID: itemID, Fee: 10})
	require.NoError(t, err)

	_, err = handler.HandleLike(context.Background(), commands.LikeCommand{Caller: "bob", ItemID: itemID, Fee: 10})
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateLike)

	// The duplicate attempt moved no money.
	assert.Equal(t, int64(90), env.balance(t, "bob"))
	assert.Equal(t, int64(10), env.balance(t, "alice"))

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Likes)
}

func TestLikeInsufficientBalanceLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")
	env.credit(t, "bob", 5)

	handler := commands.NewEngagementHandler(env.uow, env.cache, feeAccount, env.log)

	_, err := handler.HandleLike(context.Background(), commands.LikeCommand{Caller: "bob", ItemID: itemID, Fee: 10})
	require.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)

	item, err := env.uow.Items().GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Zero(t, item.Likes, "failed like rolled back the counter")

	liked, err := env.uow.Items().HasLiked(context.Background(), itemID, "bob")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestTipSplitsBetweenCreatorAndMarketplace(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")
	env.credit(t, "bob", 1000)

	handler := commands.NewEngagementHandler(env.uow, env.cache, feeAccount, env.log)

	require.NoError(t, handler.HandleTip(context.Background(), commands.TipCommand{
		Caller: "bob",
		ItemID: itemID,
		Amount: 100,
	}))

	assert.Equal(t, int64(900), env.balance(t, "bob"))
	assert.Equal(t, int64(99), env.balance(t, "alice"))
	assert.Equal(t, int64(1), env.balance(t, feeAccount))

	// Tips repeat freely.
	require.NoError(t, handler.HandleTip(context.Background(), commands.TipCommand{
		Caller: "bob",
		ItemID: itemID,
		Amount: 100,
	}))
	assert.Equal(t, int64(800), env.balance(t, "bob"))
}

func TestTipRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)
	itemID := env.mint(t, "alice")

	handler := commands.NewEngagementHandler(env.uow, env.cache, feeAccount, env.log)

	err := handler.HandleTip(context.Background(), commands.TipCommand{Caller: "bob", ItemID: itemID, Amount: 0})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)

	err = handler.HandleTip(context.Background(), commands.TipCommand{Caller: "bob", ItemID: itemID, Amount: -5})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
}
