package generator

import (
	"fmt"
	"math/rand"
	"time"
)

type CatalogGenerator struct {
	random *rand.Rand
}

func NewCatalogGenerator() *CatalogGenerator {
	return &CatalogGenerator{
		random: rand.New(rand.NewSource(time.Now().UTC().UnixNano())),
	}
}

func (g *CatalogGenerator) GenerateName() string {
	adjectives := []string{
		"Ethereal", "Fractured", "Neon", "Gilded", "Spectral",
		"Obsidian", "Radiant", "Frozen", "Molten", "Celestial",
		"Forgotten", "Twilight", "Prismatic", "Shattered", "Eternal",
		"Cosmic", "Phantom", "Crimson", "Lunar", "Solar",
	}

	nouns := []string{
		"Ape", "Skull", "Orb", "Mask", "Relic",
		"Crown", "Blade", "Phoenix", "Serpent", "Golem",
		"Portrait", "Glyph", "Totem", "Wanderer", "Oracle",
		"Garden", "Citadel", "Horizon", "Dreamer", "Voyager",
	}

	adjective := adjectives[g.random.Intn(len(adjectives))]
	noun := nouns[g.random.Intn(len(nouns))]

	return fmt.Sprintf("%s %s #%d", adjective, noun, g.random.Intn(10000))
}

func (g *CatalogGenerator) GenerateDescription() string {
	moods := []string{
		"A study in light and decay.",
		"Rendered over a thousand generations.",
		"One of a kind, minted at the edge of the chain.",
		"From the founder's private vault.",
		"An artifact recovered from a lost collection.",
	}
	return moods[g.random.Intn(len(moods))]
}

func (g *CatalogGenerator) GenerateTokenURI() string {
	randomBytes := g.random.Int63()
	return fmt.Sprintf("ipfs://Qm%016x/metadata.json", randomBytes)
}

// Rarity weights skew toward common so seeded collections look like a
// real drop: roughly half common, legendaries in the low single digits.
func (g *CatalogGenerator) GenerateRarity() string {
	roll := g.random.Intn(100)
	switch {
	case roll < 50:
		return "common"
	case roll < 75:
		return "uncommon"
	case roll < 90:
		return "rare"
	case roll < 97:
		return "epic"
	default:
		return "legendary"
	}
}
