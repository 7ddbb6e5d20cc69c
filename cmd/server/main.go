package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/config"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/http/server"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/scheduler"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting NFT Marketplace Service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	conn, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer conn.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	redisConn, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisConn.Close()

	dbMetricsCollector := monitoring.NewDBMetricsCollector(conn.GetDB())
	dbMetricsCollector.StartCollecting(context.Background(), 30*time.Second)

	itemRepo := postgres.NewItemRepository(conn)
	cache := redis.NewCache(redisConn, log.WithComponent("cache"))
	trendingRefresher := scheduler.NewTrendingRefresher(
		itemRepo,
		cache,
		log.WithComponent("scheduler"),
		time.Duration(cfg.Market.TrendingRefreshSeconds)*time.Second,
	)

	httpServer := server.NewServer(cfg, conn, redisConn, log)

	metricsServer := monitoring.NewMetricsServer(fmt.Sprintf(":%d", cfg.Market.MetricsPort))
	go func() {
		log.Info("Metrics server starting", "port", cfg.Market.MetricsPort)
		if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go trendingRefresher.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		trendingRefresher.Stop()
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			log.Error("Metrics server shutdown error", "error", err)
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
