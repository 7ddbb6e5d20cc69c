package monitoring

func RecordMint(rarity string) {
	ItemsMintedTotal.WithLabelValues(rarity).Inc()
}

func RecordPurchaseAttempt() {
	PurchaseAttemptsTotal.Inc()
}

func RecordPurchaseSuccess(fee int64) {
	PurchaseSuccessTotal.Inc()
	MarketplaceFeesTotal.Add(float64(fee))
}

func RecordPurchaseFailure(reason string) {
	PurchaseFailureTotal.WithLabelValues(reason).Inc()
}

func RecordOfferPlaced() {
	OffersPlacedTotal.Inc()
}

func RecordOfferAccepted(fee int64) {
	OffersAcceptedTotal.Inc()
	MarketplaceFeesTotal.Add(float64(fee))
}

func RecordOfferDeclined() {
	OffersDeclinedTotal.Inc()
}

func RecordLike() {
	LikesTotal.Inc()
}

func RecordTip(amount, fee int64) {
	TipsTotal.Inc()
	TipVolumeTotal.Add(float64(amount))
	MarketplaceFeesTotal.Add(float64(fee))
}

func UpdateForSaleCount(count int) {
	ItemsForSale.Set(float64(count))
}
