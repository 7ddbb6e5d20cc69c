package handlers

import (
	"net/http"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/response"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/generator"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

const maxSeedCollectionSize = 1000

// AdminHandler hosts the operator-only endpoints: seeding demo collections
// and crediting ledger accounts. These bypass the mint fee, so they must not
// be exposed on a public listener.
type AdminHandler struct {
	mintHandler *commands.MintHandler
	uow         ports.UnitOfWork
	catalog     *generator.CatalogGenerator
	receipts    *generator.ReceiptGenerator
	log         *logger.Logger
}

func NewAdminHandler(
	mintHandler *commands.MintHandler,
	uow ports.UnitOfWork,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		mintHandler: mintHandler,
		uow:         uow,
		catalog:     generator.NewCatalogGenerator(),
		receipts:    generator.NewReceiptGenerator(),
		log:         log,
	}
}

type SeedCollectionRequest struct {
	Creator string `json:"creator"`
	Size    int    `json:"size"`
}

type SeedCollectionResponse struct {
	CollectionID string  `json:"collection_id"`
	Creator      string  `json:"creator"`
	ItemIDs      []int64 `json:"item_ids"`
}

func (h *AdminHandler) HandleSeedCollection(w http.ResponseWriter, r *http.Request) {
	var req SeedCollectionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.Creator == "" {
		validationErrors["creator"] = "creator is required"
	}
	if req.Size <= 0 {
		validationErrors["size"] = "size must be greater than 0"
	}
	if req.Size > maxSeedCollectionSize {
		validationErrors["size"] = "size exceeds the maximum collection size"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	collectionID := h.receipts.GenerateCollectionID()
	itemIDs := make([]int64, 0, req.Size)

	for i := 0; i < req.Size; i++ {
		cmd := commands.MintCommand{
			Caller:      req.Creator,
			Name:        h.catalog.GenerateName(),
			Description: h.catalog.GenerateDescription(),
			URI:         h.catalog.GenerateTokenURI(),
			Rarity:      h.catalog.GenerateRarity(),
			Fee:         0,
			Whitelist:   []string{req.Creator},
		}

		resp, err := h.mintHandler.Handle(r.Context(), cmd)
		if err != nil {
			h.log.Error("Collection seeding aborted",
				"collection_id", collectionID,
				"creator", req.Creator,
				"minted", len(itemIDs),
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}
		itemIDs = append(itemIDs, resp.ItemID)
	}

	h.log.Info("Collection seeded",
		"collection_id", collectionID,
		"creator", req.Creator,
		"size", req.Size,
	)
	response.WriteJSON(w, http.StatusCreated, response.Success(SeedCollectionResponse{
		CollectionID: collectionID,
		Creator:      req.Creator,
		ItemIDs:      itemIDs,
	}))
}

type CreditAccountRequest struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

func (h *AdminHandler) HandleCreditAccount(w http.ResponseWriter, r *http.Request) {
	var req CreditAccountRequest
	if err := decodeJSONBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.Account == "" {
		validationErrors["account"] = "account is required"
	}
	if req.Amount <= 0 {
		validationErrors["amount"] = "amount must be greater than 0"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	tx, err := h.uow.Begin(r.Context())
	if err != nil {
		h.log.Error("Failed to begin credit transaction", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to credit account", err.Error())
		return
	}

	if err := tx.Gateway().Credit(r.Context(), req.Account, req.Amount); err != nil {
		_ = tx.Rollback(r.Context())
		h.log.Error("Failed to credit account",
			"account", req.Account,
			"amount", req.Amount,
			"error", err.Error(),
		)
		response.WriteDomainError(w, err)
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		h.log.Error("Failed to commit credit transaction", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to credit account", err.Error())
		return
	}

	balance, err := h.uow.Gateway().GetBalance(r.Context(), req.Account)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Account credited",
		"account", req.Account,
		"amount", req.Amount,
		"balance", balance,
	)
	response.WriteSuccess(w, map[string]interface{}{
		"account": req.Account,
		"balance": balance,
	})
}
