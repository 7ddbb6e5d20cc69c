package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/application/commands"
	"github.com/yuzvak/nft-marketplace-service/internal/application/queries"
	"github.com/yuzvak/nft-marketplace-service/internal/application/use_cases"
	"github.com/yuzvak/nft-marketplace-service/internal/config"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/clock"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

type Server struct {
	server            *http.Server
	logger            *logger.Logger
	healthHandler     *handlers.HealthHandler
	itemHandler       *handlers.ItemHandler
	listingHandler    *handlers.ListingHandler
	offerHandler      *handlers.OfferHandler
	engagementHandler *handlers.EngagementHandler
	adminHandler      *handlers.AdminHandler
	trendingLimit     int
}

func NewServer(cfg *config.Config, conn *postgres.Connection, redisConn *redis.Connection, log *logger.Logger) *Server {
	itemRepo := postgres.NewItemRepository(conn)
	offerRepo := postgres.NewOfferRepository(conn)
	uow := postgres.NewUnitOfWork(conn)
	cache := redis.NewCache(redisConn, log.WithComponent("cache"))
	clk := clock.NewRealClock()

	mintHandler := commands.NewMintHandler(uow, cfg.Market.FeeAccount, clk, log)
	listingCommands := commands.NewListingHandler(uow, log)
	offerCommands := commands.NewOfferHandler(uow, clk, log)
	engagementCommands := commands.NewEngagementHandler(uow, cache, cfg.Market.FeeAccount, log)

	purchaseUseCase := use_cases.NewPurchaseUseCase(uow, cache, cfg.Market.FeeAccount, log)
	acceptOfferUseCase := use_cases.NewAcceptOfferUseCase(uow, cache, cfg.Market.FeeAccount, log)

	itemQueries := queries.NewItemQueries(itemRepo, offerRepo, cache, log)

	itemHandler := handlers.NewItemHandler(mintHandler, itemQueries, cfg.Market.WhitelistedMinters, log)
	listingHandler := handlers.NewListingHandler(listingCommands, purchaseUseCase, log)
	offerHandler := handlers.NewOfferHandler(offerCommands, acceptOfferUseCase, itemQueries, log)
	engagementHandler := handlers.NewEngagementHandler(engagementCommands, itemQueries, log)
	adminHandler := handlers.NewAdminHandler(mintHandler, uow, log)
	healthHandler := handlers.NewHealthHandler(conn.GetDB(), redisConn.GetClient(), log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:            server,
		logger:            log,
		healthHandler:     healthHandler,
		itemHandler:       itemHandler,
		listingHandler:    listingHandler,
		offerHandler:      offerHandler,
		engagementHandler: engagementHandler,
		adminHandler:      adminHandler,
		trendingLimit:     cfg.Market.TrendingLimit,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
