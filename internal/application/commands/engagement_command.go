package commands

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type LikeCommand struct {
	Caller string
	ItemID int64
	Fee    int64
}

type TipCommand struct {
	Caller string
	ItemID int64
	Amount int64
}

type LikeResponse struct {
	Likes int64 `json:"likes"`
}

// EngagementHandler routes like and tip revenue to creators. Likes are
// once-per-account and fee-exempt from the platform cut; tips repeat freely
// and pay the platform percentage.
type EngagementHandler struct {
	uow        ports.UnitOfWork
	cache      ports.Cache
	feeAccount string
	log        *logger.Logger
}

func NewEngagementHandler(uow ports.UnitOfWork, cache ports.Cache, feeAccount string, log *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		uow:        uow,
		cache:      cache,
		feeAccount: feeAccount,
		log:        log,
	}
}

func (h *EngagementHandler) HandleLike(ctx context.Context, cmd LikeCommand) (*LikeResponse, error) {
	if cmd.Fee < 0 {
		return nil, errors.ErrInvalidAmount
	}

	// Fast reject from the cache; the database unique constraint remains the
	// authoritative guard.
	liked, err := h.cache.HasLiked(ctx, cmd.ItemID, cmd.Caller)
	if err != nil {
		h.log.Warn("Like cache check failed", "error", err, "item_id", cmd.ItemID, "account", cmd.Caller)
	} else if liked {
		return nil, errors.ErrDuplicateLike
	}

	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin like transaction", "error", err, "item_id", cmd.ItemID)
		return nil, errors.ErrTransactionFailed
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := tx.Items().GetItemByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	added, err := tx.Items().AddLike(ctx, cmd.ItemID, cmd.Caller)
	if err != nil {
		return nil, err
	}
	if !added {
		err = errors.ErrDuplicateLike
		return nil, err
	}

	// The entire like fee goes to the creator; likes carry no marketplace cut.
	if cmd.Fee > 0 {
		balance, balErr := tx.Gateway().GetBalance(ctx, cmd.Caller)
		if balErr != nil {
			err = balErr
			return nil, err
		}
		if balance < cmd.Fee {
			err = errors.ErrInsufficientBalance
			return nil, err
		}
		if err = tx.Gateway().Transfer(ctx, cmd.Caller, item.Creator, cmd.Fee); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	h.updateLikeCache(ctx, cmd.ItemID, cmd.Caller, item.Likes+1)

	h.log.Info("Item liked", "item_id", cmd.ItemID, "account", cmd.Caller, "fee", cmd.Fee)
	return &LikeResponse{Likes: item.Likes + 1}, nil
}

func (h *EngagementHandler) HandleTip(ctx context.Context, cmd TipCommand) error {
	if cmd.Amount <= 0 {
		return errors.ErrInvalidAmount
	}

	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin tip transaction", "error", err, "item_id", cmd.ItemID)
		return errors.ErrTransactionFailed
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := tx.Items().GetItemByID(ctx, cmd.ItemID)
	if err != nil {
		return err
	}

	fee, creatorRevenue := market.TipSplit(cmd.Amount)

	balance, err := tx.Gateway().GetBalance(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	if balance < cmd.Amount {
		err = errors.ErrInsufficientBalance
		return err
	}

	if err = tx.Gateway().Transfer(ctx, cmd.Caller, item.Creator, creatorRevenue); err != nil {
		return err
	}
	if fee > 0 {
		if err = tx.Gateway().Transfer(ctx, cmd.Caller, h.feeAccount, fee); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	h.log.Info("Creator tipped",
		"item_id", cmd.ItemID,
		"account", cmd.Caller,
		"amount", cmd.Amount,
		"creator_revenue", creatorRevenue,
		"marketplace_fee", fee,
	)
	return nil
}

func (h *EngagementHandler) updateLikeCache(ctx context.Context, itemID int64, account string, likeCount int64) {
	if err := h.cache.AddLiker(ctx, itemID, account); err != nil {
		h.log.Warn("Failed to cache liker", "error", err, "item_id", itemID, "account", account)
	}
	if err := h.cache.SetLikeCount(ctx, itemID, likeCount); err != nil {
		h.log.Warn("Failed to cache like count", "error", err, "item_id", itemID)
	}
	if err := h.cache.RecordTrendingLike(ctx, itemID); err != nil {
		h.log.Warn("Failed to record trending like", "error", err, "item_id", itemID)
	}
}
