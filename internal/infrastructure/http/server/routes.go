package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/middleware"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/items", s.handleItemCollection)
	mux.HandleFunc("/items/trending", s.itemHandler.HandleTrending(s.trendingLimit))
	mux.HandleFunc("/items/", s.handleItemRoutes)

	mux.HandleFunc("/admin/collections", func(w http.ResponseWriter, r *http.Request) {
		requirePost(w, r, s.adminHandler.HandleSeedCollection)
	})
	mux.HandleFunc("/admin/accounts/credit", func(w http.ResponseWriter, r *http.Request) {
		requirePost(w, r, s.adminHandler.HandleCreditAccount)
	})

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleItemCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.itemHandler.HandleMint()(w, r)
	case http.MethodGet:
		s.itemHandler.HandleBrowse()(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleItemRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/items/")
	parts := strings.Split(path, "/")

	itemID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || itemID <= 0 {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		if r.Method == http.MethodGet {
			s.itemHandler.HandleGetItem(itemID)(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "list":
			requirePost(w, r, s.listingHandler.HandleListForSale(itemID))
			return
		case "price":
			requirePost(w, r, s.listingHandler.HandleSetPrice(itemID))
			return
		case "purchase":
			requirePost(w, r, s.listingHandler.HandlePurchase(itemID))
			return
		case "transfer":
			requirePost(w, r, s.listingHandler.HandleTransfer(itemID))
			return
		case "offers":
			switch r.Method {
			case http.MethodPost:
				s.offerHandler.HandleMakeOffer(itemID)(w, r)
			case http.MethodGet:
				s.offerHandler.HandleListOffers(itemID)(w, r)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		case "like":
			requirePost(w, r, s.engagementHandler.HandleLike(itemID))
			return
		case "tip":
			requirePost(w, r, s.engagementHandler.HandleTip(itemID))
			return
		case "likers":
			if r.Method == http.MethodGet {
				s.engagementHandler.HandleGetLikers(itemID)(w, r)
				return
			}
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	}

	if len(parts) == 3 && parts[1] == "offers" {
		switch parts[2] {
		case "accept":
			requirePost(w, r, s.offerHandler.HandleAcceptOffer(itemID))
			return
		case "decline":
			requirePost(w, r, s.offerHandler.HandleDeclineOffer(itemID))
			return
		}
	}

	http.NotFound(w, r)
}

func requirePost(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	next(w, r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
