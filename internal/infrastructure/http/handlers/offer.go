package handlers

import (
	"net/http"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/queries"
	"github.com/yuzvak/nft-marketplace-service/internal/application/use_cases"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/response"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type OfferView struct {
	ItemID    int64  `json:"item_id"`
	Buyer     string `json:"buyer"`
	Price     int64  `json:"price"`
	CreatedAt string `json:"created_at"`
}

func NewOfferViews(offers []*market.Offer) []OfferView {
	views := make([]OfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, OfferView{
			ItemID:    offer.ItemID,
			Buyer:     offer.Buyer,
			Price:     offer.Price,
			CreatedAt: offer.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

type OfferHandler struct {
	offerHandler *commands.OfferHandler
	acceptOffer  *use_cases.AcceptOfferUseCase
	queries      *queries.ItemQueries
	log          *logger.Logger
}

func NewOfferHandler(
	offerHandler *commands.OfferHandler,
	acceptOffer *use_cases.AcceptOfferUseCase,
	itemQueries *queries.ItemQueries,
	log *logger.Logger,
) *OfferHandler {
	return &OfferHandler{
		offerHandler: offerHandler,
		acceptOffer:  acceptOffer,
		queries:      itemQueries,
		log:          log,
	}
}

type MakeOfferRequest struct {
	Caller string `json:"caller"`
	Price  int64  `json:"price"`
}

func (h *OfferHandler) HandleMakeOffer(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MakeOfferRequest
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

		cmd := commands.MakeOfferCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Price:  req.Price,
		}

		if err := h.offerHandler.HandleMakeOffer(r.Context(), cmd); err != nil {
			h.log.Error("Make offer failed",
				"item_id", itemID,
				"buyer", req.Caller,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordOfferPlaced()
		h.log.Info("Offer placed",
			"item_id", itemID,
			"buyer", req.Caller,
			"price", req.Price,
		)
		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}

func (h *OfferHandler) HandleListOffers(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offers, err := h.queries.ListOffers(r.Context(), itemID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, NewOfferViews(offers))
	}
}

type AcceptOfferRequest struct {
	Caller string `json:"caller"`
	Buyer  string `json:"buyer"`
}

func (h *OfferHandler) HandleAcceptOffer(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AcceptOfferRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}

		errors := make(map[string]string)
		if req.Caller == "" {
			errors["caller"] = "caller is required"
		}
		if req.Buyer == "" {
			errors["buyer"] = "buyer is required"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		result, err := h.acceptOffer.ExecuteAccept(r.Context(), req.Caller, itemID, req.Buyer)
		if err != nil {
			h.log.Error("Accept offer failed",
				"item_id", itemID,
				"caller", req.Caller,
				"buyer", req.Buyer,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordOfferAccepted(result.MarketplaceFee)
		h.log.Info("Offer accepted",
			"item_id", itemID,
			"seller", result.Seller,
			"buyer", result.Buyer,
			"price", result.Price,
			"fee", result.MarketplaceFee,
		)
		response.WriteSuccess(w, result)
	}
}

type DeclineOfferRequest struct {
	Caller string `json:"caller"`
	Buyer  string `json:"buyer"`
}

func (h *OfferHandler) HandleDeclineOffer(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeclineOfferRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}

		errors := make(map[string]string)
		if req.Caller == "" {
			errors["caller"] = "caller is required"
		}
		if req.Buyer == "" {
			errors["buyer"] = "buyer is required"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		cmd := commands.DeclineOfferCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Buyer:  req.Buyer,
		}

		if err := h.offerHandler.HandleDeclineOffer(r.Context(), cmd); err != nil {
			h.log.Error("Decline offer failed",
				"item_id", itemID,
				"caller", req.Caller,
				"buyer", req.Buyer,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordOfferDeclined()
		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}
