package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryFixture() []*Item {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*Item{
		{ID: 1, Owner: "alice", Creator: "alice", Name: "Crimson Phoenix", Description: "fire and rebirth", Rarity: RarityRare, Price: 500, ForSale: true, Likes: 3, CreatedAt: created},
		{ID: 2, Owner: "bob", Creator: "bob", Name: "Lunar Garden", Description: "quiet bloom", Rarity: RarityCommon, Price: 100, ForSale: true, Likes: 9, CreatedAt: created},
		{ID: 3, Owner: "alice", Creator: "carol", Name: "Obsidian Golem", Description: "carved from night", Rarity: RarityRare, Price: 900, ForSale: false, Likes: 5, CreatedAt: created},
		{ID: 4, Owner: "carol", Creator: "carol", Name: "Spectral Phoenix", Description: "a ghost of flame", Rarity: RarityRare, Price: 200, ForSale: true, Likes: 5, CreatedAt: created},
		{ID: 5, Owner: "dave", Creator: "dave", Name: "Gilded Crown", Description: "heavy is the head", Rarity: RarityLegendary, Price: 2000, ForSale: true, Likes: 1, CreatedAt: created},
	}
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"", "price_asc", "price_desc", "likes_desc"} {
		key, ok := ParseSortKey(valid)
		assert.True(t, ok)
		assert.Equal(t, SortKey(valid), key)
	}

	_, ok := ParseSortKey("name_asc")
	assert.False(t, ok)
}

func TestFilterAndSortByOwner(t *testing.T) {
	items := registryFixture()

	got := FilterAndSort(items, Query{Owner: "alice"})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilterAndSortForSaleOnly(t *testing.T) {
	items := registryFixture()

	got := FilterAndSort(items, Query{ForSaleOnly: true})
	require.Len(t, got, 4)
	for _, item := range got {
		assert.True(t, item.ForSale)
	}
}

func TestFilterAndSortTextMatch(t *testing.T) {
	items := registryFixture()

	got := FilterAndSort(items, Query{Text: "PHOENIX"})
	require.Len(t, got, 2, "substring match is case insensitive")
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)

	got = FilterAndSort(items, Query{Text: "night"})
	require.Len(t, got, 1, "description text is searched too")
	assert.Equal(t, int64(3), got[0].ID)
}

func TestFilterAndSortComposed(t *testing.T) {
	items := registryFixture()

	got := FilterAndSort(items, Query{Rarity: RarityRare, Sort: SortPriceDesc})
	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 1, 4}, []int64{got[0].ID, got[1].ID, got[2].ID})

	got = FilterAndSort(items, Query{Rarity: RarityRare, ForSaleOnly: true, Sort: SortPriceAsc})
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestFilterAndSortLikesDescStable(t *testing.T) {
	items := registryFixture()

	got := FilterAndSort(items, Query{Sort: SortLikesDesc})
	require.Len(t, got, 5)
	assert.Equal(t, int64(2), got[0].ID)
	// Ties keep registry order: items 3 and 4 both hold 5 likes.
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(4), got[2].ID)
	assert.Equal(t, int64(1), got[3].ID)
	assert.Equal(t, int64(5), got[4].ID)
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	items := registryFixture()

	_ = FilterAndSort(items, Query{Sort: SortPriceDesc})
	assert.Equal(t, int64(1), items[0].ID, "input slice order is preserved")
	assert.Equal(t, int64(5), items[4].ID)
}
