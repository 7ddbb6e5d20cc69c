package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/clock"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

const feeAccount = "marketplace_fees"

type testEnv struct {
	store *memory.Store
	uow   *memory.UnitOfWork
	cache *memory.Cache
	clock *clock.MockClock
	log   *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	return &testEnv{
		store: store,
		uow:   memory.NewUnitOfWork(store),
		cache: memory.NewCache(),
		clock: clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		log:   logger.NewLogger(),
	}
}

func (e *testEnv) credit(t *testing.T, account string, amount int64) {
	t.Helper()
	require.NoError(t, e.uow.Gateway().Credit(context.Background(), account, amount))
}

func (e *testEnv) balance(t *testing.T, account string) int64 {
	t.Helper()
	balance, err := e.uow.Gateway().GetBalance(context.Background(), account)
	require.NoError(t, err)
	return balance
}

func (e *testEnv) mint(t *testing.T, creator string) int64 {
	t.Helper()

	handler := commands.NewMintHandler(e.uow, feeAccount, e.clock, e.log)
	resp, err := handler.Handle(context.Background(), commands.MintCommand{
		Caller:    creator,
		Name:      "Ethereal Orb",
		Rarity:    "rare",
		Fee:       0,
		Whitelist: []string{creator},
	})
	require.NoError(t, err)
	return resp.ItemID
}

func TestMintAssignsSequentialIDs(t *testing.T) {
	env := newTestEnv(t)

	first := env.mint(t, "alice")
	second := env.mint(t, "alice")

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	item, err := env.uow.Items().GetItemByID(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, "alice", item.Owner)
	assert.Equal(t, "alice", item.Creator)
	assert.False(t, item.ForSale)
}

func TestMintChargesFee(t *testing.T) {
	env := newTestEnv(t)
	env.credit(t, "alice", 1000)

	handler := commands.NewMintHandler(env.uow, feeAccount, env.clock, env.log)
	resp, err := handler.Handle(context.Background(), commands.MintCommand{
		Caller: "alice",
		Name:   "Gilded Crown",
		Rarity: "legendary",
		Fee:    250,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ItemID)

	assert.Equal(t, int64(750), env.balance(t, "alice"))
	assert.Equal(t, int64(250), env.balance(t, feeAccount))
}

func TestMintWhitelistedCreatorSkipsFee(t *testing.T) {
	env := newTestEnv(t)

	handler := commands.NewMintHandler(env.uow, feeAccount, env.clock, env.log)
	resp, err := handler.Handle(context.Background(), commands.MintCommand{
		Caller:    "alice",
		Name:      "Lunar Garden",
		Rarity:    "common",
		Fee:       250,
		Whitelist: []string{"alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ItemID)

	assert.Zero(t, env.balance(t, "alice"))
	assert.Zero(t, env.balance(t, feeAccount))
}

func TestMintInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.credit(t, "alice", 100)

	handler := commands.NewMintHandler(env.uow, feeAccount, env.clock, env.log)
	_, err := handler.Handle(context.Background(), commands.MintCommand{
		Caller: "alice",
		Name:   "Frozen Relic",
		Rarity: "epic",
		Fee:    250,
	})
	require.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)

	// The aborted mint left no item behind.
	_, err = env.uow.Items().GetItemByID(context.Background(), 1)
	assert.ErrorIs(t, err, domainErrors.ErrItemNotFound)
	assert.Equal(t, int64(100), env.balance(t, "alice"))
}

func TestMintRejectsUnknownRarity(t *testing.T) {
	env := newTestEnv(t)

	handler := commands.NewMintHandler(env.uow, feeAccount, env.clock, env.log)
	_, err := handler.Handle(context.Background(), commands.MintCommand{
		Caller: "alice",
		Name:   "Broken Glyph",
		Rarity: "mythic",
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidRarity)
}
