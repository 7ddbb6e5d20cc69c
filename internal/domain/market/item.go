package market

import (
	"time"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func ParseRarity(s string) (Rarity, error) {
	switch Rarity(s) {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return Rarity(s), nil
	default:
		return "", domainErrors.ErrInvalidRarity
	}
}

// Item is the tradable asset record. Owner, Price and ForSale are the only
// mutable trade fields; Creator and the descriptive metadata never change
// after minting.
type Item struct {
	ID          int64
	Owner       string
	Creator     string
	Name        string
	Description string
	URI         string
	Price       int64
	ForSale     bool
	Rarity      Rarity
	Likes       int64
	CreatedAt   time.Time
}

func NewItem(creator, name, description, uri string, rarity Rarity, createdAt time.Time) *Item {
	return &Item{
		Owner:       creator,
		Creator:     creator,
		Name:        name,
		Description: description,
		URI:         uri,
		Price:       0,
		ForSale:     false,
		Rarity:      rarity,
		Likes:       0,
		CreatedAt:   createdAt,
	}
}

func (i *Item) IsOwnedBy(account string) bool {
	return i.Owner == account
}

func (i *Item) ListForSale(caller string, price int64) error {
	if !i.IsOwnedBy(caller) {
		return domainErrors.ErrNotOwner
	}
	if price <= 0 {
		return domainErrors.ErrInvalidPrice
	}

	i.Price = price
	i.ForSale = true
	return nil
}

// SetPrice adjusts the price of an existing listing. Repricing an unlisted
// item is rejected so that ForSale always implies a positive price.
func (i *Item) SetPrice(caller string, price int64) error {
	if !i.IsOwnedBy(caller) {
		return domainErrors.ErrNotOwner
	}
	if !i.ForSale {
		return domainErrors.ErrNotForSale
	}
	if price <= 0 {
		return domainErrors.ErrInvalidPrice
	}

	i.Price = price
	return nil
}

func (i *Item) TransferTo(caller, recipient string) error {
	if !i.IsOwnedBy(caller) {
		return domainErrors.ErrNotOwner
	}
	if recipient == caller {
		return domainErrors.ErrSelfTransfer
	}

	i.settleOwnership(recipient)
	return nil
}

// Sell validates a direct purchase at the listed price and hands the item to
// the buyer. The tendered amount must match the listing exactly.
func (i *Item) Sell(buyer string, tendered int64) error {
	if !i.ForSale {
		return domainErrors.ErrNotForSale
	}
	if tendered != i.Price {
		return domainErrors.ErrPriceMismatch
	}

	i.settleOwnership(buyer)
	return nil
}

// SellToOfferer hands the item to a buyer whose offer the owner accepted.
// Price validation happened when the offer was placed.
func (i *Item) SellToOfferer(buyer string) {
	i.settleOwnership(buyer)
}

// Every ownership change delists the item and resets the price, whatever the
// path the transfer took.
func (i *Item) settleOwnership(newOwner string) {
	i.Owner = newOwner
	i.ForSale = false
	i.Price = 0
}

func (i *Item) RecordLike() {
	i.Likes++
}
