package handlers

import (
	"net/http"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/use_cases"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/response"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type ListingHandler struct {
	listingHandler  *commands.ListingHandler
	purchaseUseCase *use_cases.PurchaseUseCase
	log             *logger.Logger
}

func NewListingHandler(
	listingHandler *commands.ListingHandler,
	purchaseUseCase *use_cases.PurchaseUseCase,
	log *logger.Logger,
) *ListingHandler {
	return &ListingHandler{
		listingHandler:  listingHandler,
		purchaseUseCase: purchaseUseCase,
		log:             log,
	}
}

type ListForSaleRequest struct {
	Caller string `json:"caller"`
	Price  int64  `json:"price"`
}

func (h *ListingHandler) HandleListForSale(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ListForSaleRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}
		if req.Caller == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"caller": "caller is required",
			})
			return
		}

		cmd := commands.ListForSaleCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Price:  req.Price,
		}

		if err := h.listingHandler.HandleListForSale(r.Context(), cmd); err != nil {
			h.log.Error("List for sale failed",
				"item_id", itemID,
				"caller", req.Caller,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Item listed for sale",
			"item_id", itemID,
			"caller", req.Caller,
			"price", req.Price,
		)
		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}

type SetPriceRequest struct {
	Caller string `json:"caller"`
	Price  int64  `json:"price"`
}

func (h *ListingHandler) HandleSetPrice(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetPriceRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}
		if req.Caller == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"caller": "caller is required",
			})
			return
		}

		cmd := commands.SetPriceCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Price:  req.Price,
		}

		if err := h.listingHandler.HandleSetPrice(r.Context(), cmd); err != nil {
			h.log.Error("Set price failed",
				"item_id", itemID,
				"caller", req.Caller,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}

type TransferRequest struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func (h *ListingHandler) HandleTransfer(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}

		errors := make(map[string]string)
		if req.Caller == "" {
			errors["caller"] = "caller is required"
		}
		if req.Recipient == "" {
			errors["recipient"] = "recipient is required"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		cmd := commands.TransferCommand{
			Caller:    req.Caller,
			ItemID:    itemID,
			Recipient: req.Recipient,
		}

		if err := h.listingHandler.HandleTransfer(r.Context(), cmd); err != nil {
			h.log.Error("Transfer failed",
				"item_id", itemID,
				"caller", req.Caller,
				"recipient", req.Recipient,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Item transferred",
			"item_id", itemID,
			"from", req.Caller,
			"to", req.Recipient,
		)
		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}

type PurchaseRequest struct {
	Caller   string `json:"caller"`
	Tendered int64  `json:"tendered"`
}

func (h *ListingHandler) HandlePurchase(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}
		if req.Caller == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"caller": "caller is required",
			})
			return
		}

		monitoring.RecordPurchaseAttempt()

		result, err := h.purchaseUseCase.ExecutePurchase(r.Context(), req.Caller, itemID, req.Tendered)
		if err != nil {
			h.log.Error("Purchase failed",
				"item_id", itemID,
				"buyer", req.Caller,
				"error", err.Error(),
			)
			monitoring.RecordPurchaseFailure(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Purchase completed",
			"item_id", itemID,
			"buyer", result.Buyer,
			"seller", result.Seller,
			"price", result.Price,
			"fee", result.MarketplaceFee,
		)
		monitoring.RecordPurchaseSuccess(result.MarketplaceFee)
		response.WriteSuccess(w, result)
	}
}
