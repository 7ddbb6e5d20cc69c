package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func newTestItem(t *testing.T) *Item {
	t.Helper()
	item := NewItem("alice", "Ethereal Orb #1", "A study in light and decay.", "ipfs://Qm01/metadata.json", RarityRare, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	item.ID = 1
	return item
}

func TestNewItem(t *testing.T) {
	item := newTestItem(t)

	assert.Equal(t, "alice", item.Owner)
	assert.Equal(t, "alice", item.Creator)
	assert.False(t, item.ForSale)
	assert.Zero(t, item.Price)
	assert.Zero(t, item.Likes)
}

func TestParseRarity(t *testing.T) {
	for _, valid := range []string{"common", "uncommon", "rare", "epic", "legendary"} {
		rarity, err := ParseRarity(valid)
		require.NoError(t, err)
		assert.Equal(t, Rarity(valid), rarity)
	}

	_, err := ParseRarity("mythic")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidRarity)

	_, err = ParseRarity("Rare")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidRarity, "rarity tiers are case sensitive")
}

func TestListForSale(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		price   int64
		wantErr error
	}{
		{"owner lists at positive price", "alice", 500, nil},
		{"non-owner cannot list", "bob", 500, domainErrors.ErrNotOwner},
		{"zero price rejected", "alice", 0, domainErrors.ErrInvalidPrice},
		{"negative price rejected", "alice", -10, domainErrors.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestItem(t)
			err := item.ListForSale(tt.caller, tt.price)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, item.ForSale)
				assert.Zero(t, item.Price)
				return
			}

			require.NoError(t, err)
			assert.True(t, item.ForSale)
			assert.Equal(t, tt.price, item.Price)
		})
	}
}

func TestSetPrice(t *testing.T) {
	item := newTestItem(t)

	err := item.SetPrice("alice", 900)
	assert.ErrorIs(t, err, domainErrors.ErrNotForSale, "unlisted item cannot be repriced")

	require.NoError(t, item.ListForSale("alice", 500))

	assert.ErrorIs(t, item.SetPrice("bob", 900), domainErrors.ErrNotOwner)
	assert.ErrorIs(t, item.SetPrice("alice", 0), domainErrors.ErrInvalidPrice)

	require.NoError(t, item.SetPrice("alice", 900))
	assert.Equal(t, int64(900), item.Price)
	assert.True(t, item.ForSale)
}

func TestTransferTo(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.ListForSale("alice", 500))

	assert.ErrorIs(t, item.TransferTo("bob", "carol"), domainErrors.ErrNotOwner)
	assert.ErrorIs(t, item.TransferTo("alice", "alice"), domainErrors.ErrSelfTransfer)

	require.NoError(t, item.TransferTo("alice", "bob"))
	assert.Equal(t, "bob", item.Owner)
	assert.Equal(t, "alice", item.Creator, "creator never changes")
	assert.False(t, item.ForSale, "transfer delists the item")
	assert.Zero(t, item.Price)
}

func TestSell(t *testing.T) {
	item := newTestItem(t)

	err := item.Sell("bob", 500)
	assert.ErrorIs(t, err, domainErrors.ErrNotForSale)

	require.NoError(t, item.ListForSale("alice", 500))

	assert.ErrorIs(t, item.Sell("bob", 499), domainErrors.ErrPriceMismatch)
	assert.ErrorIs(t, item.Sell("bob", 501), domainErrors.ErrPriceMismatch, "tender must match exactly")

	require.NoError(t, item.Sell("bob", 500))
	assert.Equal(t, "bob", item.Owner)
	assert.False(t, item.ForSale)
	assert.Zero(t, item.Price)
}

func TestSellToOfferer(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.ListForSale("alice", 500))

	item.SellToOfferer("bob")
	assert.Equal(t, "bob", item.Owner)
	assert.False(t, item.ForSale)
	assert.Zero(t, item.Price)
}

func TestRecordLike(t *testing.T) {
	item := newTestItem(t)

	item.RecordLike()
	item.RecordLike()
	assert.Equal(t, int64(2), item.Likes)
}

func TestWhitelistContains(t *testing.T) {
	wl := Whitelist{"alice", "bob"}

	assert.True(t, wl.Contains("alice"))
	assert.False(t, wl.Contains("carol"))
	assert.False(t, Whitelist(nil).Contains("alice"))
}
