package scheduler

import (
	"context"
	"time"

	"github.com/yuzvak/nft-marketplace-service/internal/application/ports"
	"github.com/yuzvak/nft-marketplace-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/nft-marketplace-service/internal/pkg/logger"
)

// TrendingRefresher periodically rebuilds the trending board and the
// for-sale gauge from the database. Redis keeps the live like traffic
// between refreshes; this loop corrects any drift.
type TrendingRefresher struct {
	items    ports.ItemRepository
	cache    ports.Cache
	logger   *logger.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewTrendingRefresher(
	items ports.ItemRepository,
	cache ports.Cache,
	log *logger.Logger,
	interval time.Duration,
) *TrendingRefresher {
	return &TrendingRefresher{
		items:    items,
		cache:    cache,
		logger:   log,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *TrendingRefresher) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Trending refresher disabled")
		return
	}

	s.logger.Info("Starting trending refresher", "interval", s.interval.String())

	if err := s.refresh(ctx); err != nil {
		s.logger.Error("Initial trending refresh failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Trending refresher stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Trending refresher stopped")
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Error("Trending refresh failed", "error", err)
			}
		}
	}
}

func (s *TrendingRefresher) Stop() {
	close(s.stopChan)
}

func (s *TrendingRefresher) refresh(ctx context.Context) error {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return err
	}

	forSale := 0
	for _, item := range items {
		if item.ForSale {
			forSale++
		}

		if err := s.cache.SetTrendingScore(ctx, item.ID, item.Likes); err != nil {
			return err
		}

		if err := s.cache.SetLikeCount(ctx, item.ID, item.Likes); err != nil {
			return err
		}
	}

	monitoring.UpdateForSaleCount(forSale)

	s.logger.Info("Trending board refreshed",
		"items", len(items),
		"for_sale", forSale,
	)
	return nil
}
