package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
)

func TestGenerateReceiptID(t *testing.T) {
	g := NewReceiptGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := g.GenerateReceiptID()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, "TX-"))
		assert.Len(t, id, len("TX-")+16)
		assert.False(t, seen[id], "receipt IDs must not repeat")
		seen[id] = true
	}
}

func TestGenerateCollectionID(t *testing.T) {
	g := NewReceiptGenerator()

	id := g.GenerateCollectionID()
	assert.True(t, strings.HasPrefix(id, "COL-"))
	assert.Len(t, id, len("COL-")+10)
}

func TestCatalogGeneratorProducesValidRarities(t *testing.T) {
	g := NewCatalogGenerator()

	for i := 0; i < 200; i++ {
		_, err := market.ParseRarity(g.GenerateRarity())
		assert.NoError(t, err)
	}
}

func TestCatalogGeneratorNamesAndURIs(t *testing.T) {
	g := NewCatalogGenerator()

	name := g.GenerateName()
	assert.Contains(t, name, "#")
	assert.NotEmpty(t, g.GenerateDescription())

	uri := g.GenerateTokenURI()
	assert.True(t, strings.HasPrefix(uri, "ipfs://Qm"))
	assert.True(t, strings.HasSuffix(uri, "/metadata.json"))
}
