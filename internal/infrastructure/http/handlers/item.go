package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/queries"
	"github.com/yuzvak/nft-marketplace-service/internal/domain/market"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/response"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type ItemView struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Creator     string `json:"creator"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URI         string `json:"uri"`
	Price       int64  `json:"price"`
	ForSale     bool   `json:"for_sale"`
	Rarity      string `json:"rarity"`
	Likes       int64  `json:"likes"`
	CreatedAt   string `json:"created_at"`
}

func NewItemView(item *market.Item) ItemView {
	return ItemView{
		ID:          item.ID,
		Owner:       item.Owner,
		Creator:     item.Creator,
		Name:        item.Name,
		Description: item.Description,
		URI:         item.URI,
		Price:       item.Price,
		ForSale:     item.ForSale,
		Rarity:      string(item.Rarity),
		Likes:       item.Likes,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

func NewItemViews(items []*market.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewItemView(item))
	}
	return views
}

type ItemHandler struct {
	mintHandler *commands.MintHandler
	queries     *queries.ItemQueries
	whitelist   market.Whitelist
	log         *logger.Logger
}

func NewItemHandler(
	mintHandler *commands.MintHandler,
	itemQueries *queries.ItemQueries,
	whitelist market.Whitelist,
	log *logger.Logger,
) *ItemHandler {
	return &ItemHandler{
		mintHandler: mintHandler,
		queries:     itemQueries,
		whitelist:   whitelist,
		log:         log,
	}
}

type MintRequest struct {
	Caller      string `json:"caller"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URI         string `json:"uri"`
	Rarity      string `json:"rarity"`
	Fee         int64  `json:"fee"`
}

func (h *ItemHandler) HandleMint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req MintRequest
		if err := decodeJSONBody(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
			return
		}

		errors := make(map[string]string)
		if req.Caller == "" {
			errors["caller"] = "caller is required"
		}
		if req.Name == "" {
			errors["name"] = "name is required"
		}
		if req.Rarity == "" {
			errors["rarity"] = "rarity is required"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		cmd := commands.MintCommand{
			Caller:      req.Caller,
			Name:        req.Name,
			Description: req.Description,
			URI:         req.URI,
			Rarity:      req.Rarity,
			Fee:         req.Fee,
			Whitelist:   h.whitelist,
		}

		resp, err := h.mintHandler.Handle(r.Context(), cmd)
		if err != nil {
			h.log.Error("Mint command failed",
				"caller", req.Caller,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordMint(req.Rarity)
		h.log.Info("Item minted",
			"item_id", resp.ItemID,
			"caller", req.Caller,
			"rarity", req.Rarity,
		)
		response.WriteCreated(w, resp)
	}
}

func (h *ItemHandler) HandleGetItem(itemID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.queries.GetItem(r.Context(), itemID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, NewItemView(item))
	}
}

// HandleBrowse serves the query projections: owner, rarity, and for-sale
// filters, substring search, and the supported sort orders, all composable
// via query parameters.
func (h *ItemHandler) HandleBrowse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		query := market.Query{
			Owner: params.Get("owner"),
			Text:  params.Get("q"),
		}

		if raw := params.Get("rarity"); raw != "" {
			rarity, err := market.ParseRarity(raw)
			if err != nil {
				response.WriteDomainError(w, err)
				return
			}
			query.Rarity = rarity
		}

		if raw := params.Get("for_sale"); raw != "" {
			forSale, err := strconv.ParseBool(raw)
			if err != nil {
				response.WriteValidationError(w, "Validation failed", map[string]string{
					"for_sale": "for_sale must be a boolean",
				})
				return
			}
			query.ForSaleOnly = forSale
		}

		if raw := params.Get("sort"); raw != "" {
			sortKey, ok := market.ParseSortKey(raw)
			if !ok {
				response.WriteValidationError(w, "Validation failed", map[string]string{
					"sort": "sort must be one of price_asc, price_desc, likes_desc",
				})
				return
			}
			query.Sort = sortKey
		}

		items, err := h.queries.Browse(r.Context(), query)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, NewItemViews(items))
	}
}

func (h *ItemHandler) HandleTrending(limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				response.WriteValidationError(w, "Validation failed", map[string]string{
					"limit": "limit must be a positive integer",
				})
				return
			}
			limit = parsed
		}

		items, err := h.queries.Trending(r.Context(), limit)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, NewItemViews(items))
	}
}
