package commands

import (
	"context"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/clock"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type MintCommand struct {
	Caller      string
	Name        string
	Description string
	URI         string
	Rarity      string
	Fee         int64
	Whitelist   []string
}

type MintResponse struct {
	ItemID int64 `json:"item_id"`
}

type MintHandler struct {
	uow        ports.UnitOfWork
	feeAccount string
	clock      clock.Clock
	log        *logger.Logger
}

func NewMintHandler(uow ports.UnitOfWork, feeAccount string, clk clock.Clock, log *logger.Logger) *MintHandler {
	return &MintHandler{
		uow:        uow,
		feeAccount: feeAccount,
		clock:      clk,
		log:        log,
	}
}

func (h *MintHandler) Handle(ctx context.Context, cmd MintCommand) (*MintResponse, error) {
	rarity, err := market.ParseRarity(cmd.Rarity)
	if err != nil {
		return nil, err
	}

	if cmd.Fee < 0 {
		return nil, errors.ErrInvalidAmount
	}

	tx, err := h.uow.Begin(ctx)
	if err != nil {
		h.log.Error("Failed to begin mint transaction", "error", err)
		return nil, errors.ErrTransactionFailed
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Whitelisted creators mint for free; everyone else pays the minting fee
	// to the fee-collection account.
	if cmd.Fee > 0 && !market.Whitelist(cmd.Whitelist).Contains(cmd.Caller) {
		balance, balErr := tx.Gateway().GetBalance(ctx, cmd.Caller)
		if balErr != nil {
			err = balErr
			return nil, err
		}
		if balance < cmd.Fee {
			err = errors.ErrInsufficientBalance
			return nil, err
		}
		if err = tx.Gateway().Transfer(ctx, cmd.Caller, h.feeAccount, cmd.Fee); err != nil {
			return nil, err
		}
	}

	item := market.NewItem(cmd.Caller, cmd.Name, cmd.Description, cmd.URI, rarity, h.clock.Now())

	id, err := tx.Items().CreateItem(ctx, item)
	if err != nil {
		h.log.Error("Failed to create item", "error", err, "creator", cmd.Caller)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	h.log.Info("Item minted",
		"item_id", id,
		"creator", cmd.Caller,
		"rarity", string(rarity),
		"fee", cmd.Fee,
	)

	return &MintResponse{ItemID: id}, nil
}
