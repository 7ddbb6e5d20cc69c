package use_cases

import (
	"context"
	"fmt"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

// SettlementResult reports who got paid what after a sale commits.
type SettlementResult struct {
	ItemID         int64  `json:"item_id"`
	Buyer          string `json:"buyer"`
	Seller         string `json:"seller"`
	Price          int64  `json:"price"`
	SellerRevenue  int64  `json:"seller_revenue"`
	MarketplaceFee int64  `json:"marketplace_fee"`
}

type PurchaseUseCase struct {
	uow        ports.UnitOfWork
	cache      ports.Cache
	feeAccount string
	log        *logger.Logger

	retryAttempts int
	lockTimeout   time.Duration
}

func NewPurchaseUseCase(uow ports.UnitOfWork, cache ports.Cache, feeAccount string, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{
		uow:           uow,
		cache:         cache,
		feeAccount:    feeAccount,
		log:           log,
		retryAttempts: 2,
		lockTimeout:   time.Second * 3,
	}
}

// ExecutePurchase settles a direct buy at the listed price. Settlement per
// item is serialized through a distributed lock; whichever buyer commits
// first wins and the loser observes the delisted item.
func (uc *PurchaseUseCase) ExecutePurchase(ctx context.Context, buyer string, itemID int64, tendered int64) (*SettlementResult, error) {
	lockKey := fmt.Sprintf("settle:item:%d", itemID)
	locked, err := uc.cache.DistributedLock(ctx, lockKey, uc.lockTimeout)
	if err != nil {
		uc.log.Error("Failed to acquire settlement lock", "error", err, "lock_key", lockKey)
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another settlement is in progress for this item")
	}
	defer func() {
		if err := uc.cache.ReleaseLock(ctx, lockKey); err != nil {
			uc.log.Error("Failed to release settlement lock", "error", err, "lock_key", lockKey)
		}
	}()

	var result *SettlementResult
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		result, err = uc.attemptPurchase(ctx, buyer, itemID, tendered)
		if err == nil {
			break
		}

		uc.log.Warn("Purchase attempt failed", "attempt", attempt+1, "error", err.Error(), "item_id", itemID)

		if isBusinessError(err) {
			break
		}

		if attempt < uc.retryAttempts-1 {
			time.Sleep(time.Millisecond * time.Duration(100*(attempt+1)))
		}
	}

	if err != nil {
		return nil, err
	}

	uc.log.Info("Purchase settled",
		"item_id", itemID,
		"buyer", buyer,
		"seller", result.Seller,
		"price", result.Price,
		"seller_revenue", result.SellerRevenue,
		"marketplace_fee", result.MarketplaceFee,
	)

	return result, nil
}

func (uc *PurchaseUseCase) attemptPurchase(ctx context.Context, buyer string, itemID int64, tendered int64) (*SettlementResult, error) {
	tx, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := tx.Items().GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	seller := item.Owner
	price := item.Price

	if err = item.Sell(buyer, tendered); err != nil {
		return nil, err
	}

	fee, sellerRevenue := market.SaleSplit(price)

	if err = tx.Gateway().Transfer(ctx, buyer, seller, sellerRevenue); err != nil {
		return nil, err
	}
	if fee > 0 {
		if err = tx.Gateway().Transfer(ctx, buyer, uc.feeAccount, fee); err != nil {
			return nil, err
		}
	}

	if err = tx.Items().UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	// The new owner cannot hold an offer on their own item; any standing bid
	// of theirs dies with the sale. Third-party offers survive a direct
	// purchase and await the new owner's decision.
	if _, err = tx.Offers().DeleteOffer(ctx, itemID, buyer); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SettlementResult{
		ItemID:         itemID,
		Buyer:          buyer,
		Seller:         seller,
		Price:          price,
		SellerRevenue:  sellerRevenue,
		MarketplaceFee: fee,
	}, nil
}

func isBusinessError(err error) bool {
	switch err {
	case errors.ErrItemNotFound,
		errors.ErrNotOwner,
		errors.ErrNotForSale,
		errors.ErrPriceMismatch,
		errors.ErrNoMatchingOffer,
		errors.ErrInsufficientBalance,
		errors.ErrInvalidPrice,
		errors.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
