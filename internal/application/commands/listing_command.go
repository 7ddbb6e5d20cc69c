package commands

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type ListForSaleCommand struct {
	Caller string
	ItemID int64
	Price  int64
}

type SetPriceCommand struct {
	Caller string
	ItemID int64
	Price  int64
}

type TransferCommand struct {
	Caller    string
	ItemID    int64
	Recipient string
}

// ListingHandler covers the ownership mutations that move no money: listing,
// repricing, and direct transfer.
type ListingHandler struct {
	uow ports.UnitOfWork
	log *logger.Logger
}

func NewListingHandler(uow ports.UnitOfWork, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		uow: uow,
		log: log,
	}
}

func (h *ListingHandler) HandleListForSale(ctx context.Context, cmd ListForSaleCommand) error {
	err := h.mutateItem(ctx, cmd.ItemID, func(item itemMutator) error {
		return item.ListForSale(cmd.Caller, cmd.Price)
	})
	if err != nil {
		return err
	}

	h.log.Info("Item listed for sale", "item_id", cmd.ItemID, "owner", cmd.Caller, "price", cmd.Price)
	return nil
}

func (h *ListingHandler) HandleSetPrice(ctx context.Context, cmd SetPriceCommand) error {
	err := h.mutateItem(ctx, cmd.ItemID, func(item itemMutator) error {
		return item.SetPrice(cmd.Caller, cmd.Price)
	})
	if err != nil {
		return err
	}

	h.log.Info("Item price updated", "item_id", cmd.ItemID, "owner", cmd.Caller, "price", cmd.Price)
	return nil
}

func (h *ListingHandler) HandleTransfer(ctx context.Context, cmd TransferCommand) error {
	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin listing transaction", "error", err, "item_id", cmd.ItemID)
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

	if err = item.TransferTo(cmd.Caller, cmd.Recipient); err != nil {
		return err
	}

	if err = tx.Items().UpdateItem(ctx, item); err != nil {
		return err
	}

	// The new owner cannot hold an offer on their own item; a standing bid of
	// theirs dies with the transfer. Other offers stay pending for the new
	// owner to accept or decline.
	if _, err = tx.Offers().DeleteOffer(ctx, cmd.ItemID, cmd.Recipient); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	h.log.Info("Item transferred", "item_id", cmd.ItemID, "from", cmd.Caller, "to", cmd.Recipient)
	return nil
}

type itemMutator interface {
	ListForSale(caller string, price int64) error
	SetPrice(caller string, price int64) error
}

func (h *ListingHandler) mutateItem(ctx context.Context, itemID int64, mutate func(itemMutator) error) error {
	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin listing transaction", "error", err, "item_id", itemID)
		return errors.ErrTransactionFailed
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := tx.Items().GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if err = mutate(item); err != nil {
		return err
	}

	if err = tx.Items().UpdateItem(ctx, item); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
