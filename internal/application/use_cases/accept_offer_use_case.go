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

type AcceptOfferUseCase struct {
	uow        ports.UnitOfWork
	cache      ports.Cache
	feeAccount string
	log        *logger.Logger

	retryAttempts int
	lockTimeout   time.Duration
}

func NewAcceptOfferUseCase(uow ports.UnitOfWork, cache ports.Cache, feeAccount string, log *logger.Logger) *AcceptOfferUseCase {
	return &AcceptOfferUseCase{
		uow:           uow,
		cache:         cache,
		feeAccount:    feeAccount,
		log:           log,
		retryAttempts: 2,
		lockTimeout:   time.Second * 3,
	}
}

// ExecuteAccept settles a sale at the buyer's offered price. The accepting
// owner authorizes the sale but the buyer funds it; the buyer's account pays
// both the seller revenue and the marketplace fee. Once the sale commits,
// every pending offer on the item is void.
func (uc *AcceptOfferUseCase) ExecuteAccept(ctx context.Context, caller string, itemID int64, buyer string) (*SettlementResult, error) {
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
		result, err = uc.attemptAccept(ctx, caller, itemID, buyer)
		if err == nil {
			break
		}

		uc.log.Warn("Offer acceptance attempt failed", "attempt", attempt+1, "error", err.Error(), "item_id", itemID)

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

	uc.log.Info("Offer accepted",
		"item_id", itemID,
		"buyer", buyer,
		"seller", result.Seller,
		"price", result.Price,
		"seller_revenue", result.SellerRevenue,
		"marketplace_fee", result.MarketplaceFee,
	)

	return result, nil
}

func (uc *AcceptOfferUseCase) attemptAccept(ctx context.Context, caller string, itemID int64, buyer string) (*SettlementResult, error) {
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

	if !item.IsOwnedBy(caller) {
		err = errors.ErrNotOwner
		return nil, err
	}
	if !item.ForSale {
		err = errors.ErrNotForSale
		return nil, err
	}

	offers, err := tx.Offers().GetOffersByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	offer, err := market.FindOffer(offers, buyer)
	if err != nil {
		return nil, err
	}

	seller := item.Owner
	fee, sellerRevenue := market.SaleSplit(offer.Price)

	if err = tx.Gateway().Transfer(ctx, buyer, seller, sellerRevenue); err != nil {
		return nil, err
	}
	if fee > 0 {
		if err = tx.Gateway().Transfer(ctx, buyer, uc.feeAccount, fee); err != nil {
			return nil, err
		}
	}

	item.SellToOfferer(buyer)

	if err = tx.Items().UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	// Sale invalidates all other offers, not just the accepted one.
	if err = tx.Offers().DeleteOffersByItemID(ctx, itemID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SettlementResult{
		ItemID:         itemID,
		Buyer:          buyer,
		Seller:         seller,
		Price:          offer.Price,
		SellerRevenue:  sellerRevenue,
		MarketplaceFee: fee,
	}, nil
}
