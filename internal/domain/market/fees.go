package market

const (
	// MarketplaceFeePercent is the platform cut on every sale settlement,
	// whether by direct purchase or offer acceptance.
	MarketplaceFeePercent = 2

	// TipFeePercent is the platform cut on tips. Likes route the full fee to
	// the creator and never pay this cut.
	TipFeePercent = 1
)

// SaleSplit divides a sale price between the marketplace and the seller.
// The fee rounds down; the seller keeps the remainder.
func SaleSplit(price int64) (fee, sellerRevenue int64) {
	fee = price * MarketplaceFeePercent / 100
	return fee, price - fee
}

// TipSplit divides a tip between the marketplace and the creator.
func TipSplit(amount int64) (fee, creatorRevenue int64) {
	fee = amount * TipFeePercent / 100
	return fee, amount - fee
}
