package commands

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/clock"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type MakeOfferCommand struct {
	Caller string
	ItemID int64
	Price  int64
}

type DeclineOfferCommand struct {
	Caller string
	ItemID int64
	Buyer  string
}

type OfferHandler struct {
	uow   ports.UnitOfWork
	clock clock.Clock
	log   *logger.Logger
}

func NewOfferHandler(uow ports.UnitOfWork, clk clock.Clock, log *logger.Logger) *OfferHandler {
	return &OfferHandler{
		uow:   uow,
		clock: clk,
		log:   log,
	}
}

func (h *OfferHandler) HandleMakeOffer(ctx context.Context, cmd MakeOfferCommand) error {
	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin offer transaction", "error", err, "item_id", cmd.ItemID)
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

	offer, err := market.NewOffer(item, cmd.Caller, cmd.Price, h.clock.Now())
	if err != nil {
		return err
	}

	// A repeat offer from the same buyer replaces the previous one instead of
	// stacking.
	if err = tx.Offers().UpsertOffer(ctx, offer); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	h.log.Info("Offer placed", "item_id", cmd.ItemID, "buyer", cmd.Caller, "price", cmd.Price)
	return nil
}

func (h *OfferHandler) HandleDeclineOffer(ctx context.Context, cmd DeclineOfferCommand) error {
	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin decline transaction", "error", err, "item_id", cmd.ItemID)
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

	if !item.IsOwnedBy(cmd.Caller) {
		err = errors.ErrNotOwner
		return err
	}

	removed, err := tx.Offers().DeleteOffer(ctx, cmd.ItemID, cmd.Buyer)
	if err != nil {
		return err
	}
	if !removed {
		err = errors.ErrNoMatchingOffer
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	h.log.Info("Offer declined", "item_id", cmd.ItemID, "owner", cmd.Caller, "buyer", cmd.Buyer)
	return nil
}
