package handlers

import (
	"net/http"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/queries"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/response"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type EngagementHandler struct {
	engagement *commands.EngagementHandler
	queries    *queries.ItemQueries
	log        *logger.Logger
}

func NewEngagementHandler(
	engagement *commands.EngagementHandler,
	itemQueries *queries.ItemQueries,
	log *logger.Logger,
) *EngagementHandler {
	return &EngagementHandler{
		engagement: engagement,
		queries:    itemQueries,
		log:        log,
	}
}

type LikeRequest struct {
	Caller string `json:"caller"`
	Fee    int64  `json:"fee"`
}

func (h *EngagementHandler) HandleLike(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LikeRequest
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

		cmd := commands.LikeCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Fee:    req.Fee,
		}

		resp, err := h.engagement.HandleLike(r.Context(), cmd)
		if err != nil {
			h.log.Error("Like failed",
				"item_id", itemID,
				"caller", req.Caller,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordLike()
		response.WriteSuccess(w, resp)
	}
}

type TipRequest struct {
	Caller string `json:"caller"`
	Amount int64  `json:"amount"`
}

func (h *EngagementHandler) HandleTip(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TipRequest
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

		cmd := commands.TipCommand{
			Caller: req.Caller,
			ItemID: itemID,
			Amount: req.Amount,
		}

		if err := h.engagement.HandleTip(r.Context(), cmd); err != nil {
			h.log.Error("Tip failed",
				"item_id", itemID,
				"caller", req.Caller,
				"amount", req.Amount,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		fee, _ := market.TipSplit(req.Amount)
		monitoring.RecordTip(req.Amount, fee)
		response.WriteSuccess(w, map[string]int64{"item_id": itemID})
	}
}

type LikersData struct {
	ItemID int64    `json:"item_id"`
	Likes  int64    `json:"likes"`
	Likers []string `json:"likers"`
}

func (h *EngagementHandler) HandleGetLikers(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		likers, err := h.queries.GetLikers(r.Context(), itemID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		count, err := h.queries.GetLikeCount(r.Context(), itemID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, LikersData{
			ItemID: itemID,
			Likes:  count,
			Likers: likers,
		})
	}
}
