package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type LoadTestConfig struct {
	BaseURL             string
	ConcurrentUsers     int
	TestDurationSeconds int
	RampUpSeconds       int
	SeedCollectionSize  int
	StartingBalance     int64
}

type TestResult struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	TotalPurchases     int64
	FailedPurchases    int64
	TotalOffers        int64
	TotalLikes         int64
	ResponseTimes      []time.Duration
	Errors             map[string]int64
	mutex              sync.RWMutex
}

type PerformanceMetrics struct {
	StartTime           time.Time
	EndTime             time.Time
	TotalDuration       time.Duration
	ThroughputRPS       float64
	SuccessfulTPS       float64
	P50ResponseTime     time.Duration
	P95ResponseTime     time.Duration
	P99ResponseTime     time.Duration
	ErrorRate           float64
	PurchaseSuccessRate float64
}

type LoadTester struct {
	config          *LoadTestConfig
	result          *TestResult
	client          *http.Client
	itemsCache      []int64
	cacheMutex      sync.RWMutex
	lastCacheUpdate time.Time
}

type ItemResponse struct {
	ID      int64  `json:"id"`
	Owner   string `json:"owner"`
	Price   int64  `json:"price"`
	ForSale bool   `json:"for_sale"`
	Rarity  string `json:"rarity"`
	Likes   int64  `json:"likes"`
}

type APIResponse struct {
	Data interface{} `json:"data"`
}

func NewLoadTester(config *LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		result: &TestResult{
			ResponseTimes: make([]time.Duration, 0),
			Errors:        make(map[string]int64),
		},
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 100,
				MaxConnsPerHost:     200,
			},
		},
		itemsCache: make([]int64, 0),
	}
}

func (lt *LoadTester) recordResponse(duration time.Duration, success bool, operation string, err error) {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	atomic.AddInt64(&lt.result.TotalRequests, 1)
	lt.result.ResponseTimes = append(lt.result.ResponseTimes, duration)

	if success {
		atomic.AddInt64(&lt.result.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&lt.result.FailedRequests, 1)
		if err != nil {
			lt.result.Errors[fmt.Sprintf("%s: %s", operation, err.Error())]++
		}
	}
}

func (lt *LoadTester) postJSON(url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return lt.client.Post(url, "application/json", bytes.NewReader(body))
}

// Seed prepares the market: one demo collection, every simulated user
// funded, and a slice of the collection listed for sale by its creator.
func (lt *LoadTester) Seed() error {
	creator := "loadtest_creator"

	resp, err := lt.postJSON(fmt.Sprintf("%s/admin/collections", lt.config.BaseURL), map[string]interface{}{
		"creator": creator,
		"size":    lt.config.SeedCollectionSize,
	})
	if err != nil {
		return fmt.Errorf("failed to seed collection: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("seed collection returned status %d", resp.StatusCode)
	}

	var seedResp struct {
		Data struct {
			ItemIDs []int64 `json:"item_ids"`
		} `json:"data"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &seedResp); err != nil {
		return fmt.Errorf("failed to parse seed response: %w", err)
	}

	for i := 0; i < lt.config.ConcurrentUsers; i++ {
		creditResp, err := lt.postJSON(fmt.Sprintf("%s/admin/accounts/credit", lt.config.BaseURL), map[string]interface{}{
			"account": fmt.Sprintf("user_%d", i),
			"amount":  lt.config.StartingBalance,
		})
		if err != nil {
			return fmt.Errorf("failed to credit user_%d: %w", i, err)
		}
		creditResp.Body.Close()
	}

	listed := 0
	for _, itemID := range seedResp.Data.ItemIDs {
		listResp, err := lt.postJSON(fmt.Sprintf("%s/items/%d/list", lt.config.BaseURL, itemID), map[string]interface{}{
			"caller": creator,
			"price":  int64(100 + rand.Intn(900)),
		})
		if err != nil {
			continue
		}
		if listResp.StatusCode == http.StatusOK {
			listed++
		}
		listResp.Body.Close()
	}

	fmt.Printf("Seeded %d items (%d listed) and %d funded users\n",
		len(seedResp.Data.ItemIDs), listed, lt.config.ConcurrentUsers)
	return nil
}

func (lt *LoadTester) simulateUser(ctx context.Context, userID int, wg *sync.WaitGroup) {
	defer wg.Done()

	account := fmt.Sprintf("user_%d", userID)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			// Weighted action mix: browsing dominates, settlement and
			// engagement traffic share the rest.
			switch roll := rand.Intn(100); {
			case roll < 40:
				lt.performBrowse()
			case roll < 60:
				lt.performPurchase(account)
			case roll < 75:
				lt.performOffer(account)
			case roll < 90:
				lt.performLike(account)
			default:
				lt.performTip(account)
			}

			time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
		}
	}
}

func (lt *LoadTester) performBrowse() {
	start := time.Now()
	url := fmt.Sprintf("%s/items?for_sale=true&sort=price_asc", lt.config.BaseURL)

	resp, err := lt.client.Get(url)
	duration := time.Since(start)

	success := err == nil && resp != nil && resp.StatusCode == http.StatusOK
	if resp != nil {
		resp.Body.Close()
	}

	lt.recordResponse(duration, success, "browse", err)
}

func (lt *LoadTester) performPurchase(account string) {
	item, ok := lt.pickForSaleItem()
	if !ok {
		return
	}

	start := time.Now()
	url := fmt.Sprintf("%s/items/%d/purchase", lt.config.BaseURL, item.ID)

	resp, err := lt.postJSON(url, map[string]interface{}{
		"caller":   account,
		"tendered": item.Price,
	})
	duration := time.Since(start)

	success := false
	if err == nil && resp != nil {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			success = true
			atomic.AddInt64(&lt.result.TotalPurchases, 1)
		} else {
			atomic.AddInt64(&lt.result.FailedPurchases, 1)
		}
	} else {
		atomic.AddInt64(&lt.result.FailedPurchases, 1)
	}

	lt.recordResponse(duration, success, "purchase", err)
}

func (lt *LoadTester) performOffer(account string) {
	item, ok := lt.pickForSaleItem()
	if !ok {
		return
	}

	start := time.Now()
	url := fmt.Sprintf("%s/items/%d/offers", lt.config.BaseURL, item.ID)

	offerPrice := item.Price - int64(rand.Intn(50))
	if offerPrice <= 0 {
		offerPrice = 1
	}

	resp, err := lt.postJSON(url, map[string]interface{}{
		"caller": account,
		"price":  offerPrice,
	})
	duration := time.Since(start)

	success := err == nil && resp != nil && resp.StatusCode == http.StatusOK
	if resp != nil {
		resp.Body.Close()
	}
	if success {
		atomic.AddInt64(&lt.result.TotalOffers, 1)
	}

	lt.recordResponse(duration, success, "offer", err)
}

func (lt *LoadTester) performLike(account string) {
	item, ok := lt.pickForSaleItem()
	if !ok {
		return
	}

	start := time.Now()
	url := fmt.Sprintf("%s/items/%d/like", lt.config.BaseURL, item.ID)

	resp, err := lt.postJSON(url, map[string]interface{}{
		"caller": account,
		"fee":    int64(1),
	})
	duration := time.Since(start)

	// Duplicate likes are an expected conflict under sustained load, not a
	// failure of the system under test.
	success := err == nil && resp != nil &&
		(resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusConflict)
	if resp != nil {
		resp.Body.Close()
	}
	if success {
		atomic.AddInt64(&lt.result.TotalLikes, 1)
	}

	lt.recordResponse(duration, success, "like", err)
}

func (lt *LoadTester) performTip(account string) {
	item, ok := lt.pickForSaleItem()
	if !ok {
		return
	}

	start := time.Now()
	url := fmt.Sprintf("%s/items/%d/tip", lt.config.BaseURL, item.ID)

	resp, err := lt.postJSON(url, map[string]interface{}{
		"caller": account,
		"amount": int64(1 + rand.Intn(100)),
	})
	duration := time.Since(start)

	success := err == nil && resp != nil && resp.StatusCode == http.StatusOK
	if resp != nil {
		resp.Body.Close()
	}

	lt.recordResponse(duration, success, "tip", err)
}

func (lt *LoadTester) pickForSaleItem() (ItemResponse, bool) {
	items, err := lt.getForSaleItems()
	if err != nil || len(items) == 0 {
		return ItemResponse{}, false
	}
	return items[rand.Intn(len(items))], true
}

func (lt *LoadTester) getForSaleItems() ([]ItemResponse, error) {
	lt.cacheMutex.RLock()
	if time.Since(lt.lastCacheUpdate) < 10*time.Second && len(lt.itemsCache) > 0 {
		lt.cacheMutex.RUnlock()
		return lt.fetchItemsByID(lt.snapshotCache())
	}
	lt.cacheMutex.RUnlock()

	url := fmt.Sprintf("%s/items?for_sale=true", lt.config.BaseURL)
	resp, err := lt.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var listResp struct {
		Data []ItemResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	ids := make([]int64, 0, len(listResp.Data))
	for _, item := range listResp.Data {
		ids = append(ids, item.ID)
	}

	lt.cacheMutex.Lock()
	lt.itemsCache = ids
	lt.lastCacheUpdate = time.Now()
	lt.cacheMutex.Unlock()

	return listResp.Data, nil
}

func (lt *LoadTester) snapshotCache() []int64 {
	lt.cacheMutex.RLock()
	defer lt.cacheMutex.RUnlock()
	ids := make([]int64, len(lt.itemsCache))
	copy(ids, lt.itemsCache)
	return ids
}

func (lt *LoadTester) fetchItemsByID(ids []int64) ([]ItemResponse, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// Sample a handful instead of re-fetching the whole board.
	sampled := ids[rand.Intn(len(ids))]
	url := fmt.Sprintf("%s/items/%d", lt.config.BaseURL, sampled)

	resp, err := lt.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var itemResp struct {
		Data ItemResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &itemResp); err != nil {
		return nil, err
	}

	if !itemResp.Data.ForSale {
		return nil, nil
	}
	return []ItemResponse{itemResp.Data}, nil
}

func (lt *LoadTester) Run() *PerformanceMetrics {
	fmt.Printf("Starting load test with %d concurrent users for %d seconds\n",
		lt.config.ConcurrentUsers, lt.config.TestDurationSeconds)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(lt.config.TestDurationSeconds)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, stopping test...")
		cancel()
	}()

	startTime := time.Now()
	var wg sync.WaitGroup

	userInterval := time.Duration(lt.config.RampUpSeconds) * time.Second / time.Duration(lt.config.ConcurrentUsers)

	for i := 0; i < lt.config.ConcurrentUsers; i++ {
		wg.Add(1)
		go lt.simulateUser(ctx, i, &wg)

		if i < lt.config.ConcurrentUsers-1 {
			time.Sleep(userInterval)
		}
	}

	go lt.monitorProgress(ctx, startTime)

	wg.Wait()
	endTime := time.Now()

	return lt.calculateMetrics(startTime, endTime)
}

func (lt *LoadTester) monitorProgress(ctx context.Context, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(startTime)
			totalReqs := atomic.LoadInt64(&lt.result.TotalRequests)
			successReqs := atomic.LoadInt64(&lt.result.SuccessfulRequests)
			purchases := atomic.LoadInt64(&lt.result.TotalPurchases)

			currentRPS := float64(totalReqs) / elapsed.Seconds()

			fmt.Printf("[%s] Total: %d, Success: %d, Purchases: %d, RPS: %.1f\n",
				elapsed.Round(time.Second), totalReqs, successReqs, purchases, currentRPS)
		}
	}
}

func (lt *LoadTester) calculateMetrics(startTime, endTime time.Time) *PerformanceMetrics {
	lt.result.mutex.RLock()
	defer lt.result.mutex.RUnlock()

	totalDuration := endTime.Sub(startTime)
	totalRequests := atomic.LoadInt64(&lt.result.TotalRequests)
	successfulRequests := atomic.LoadInt64(&lt.result.SuccessfulRequests)

	metrics := &PerformanceMetrics{
		StartTime:     startTime,
		EndTime:       endTime,
		TotalDuration: totalDuration,
	}

	if totalDuration.Seconds() > 0 {
		metrics.ThroughputRPS = float64(totalRequests) / totalDuration.Seconds()
		metrics.SuccessfulTPS = float64(successfulRequests) / totalDuration.Seconds()
	}

	if totalRequests > 0 {
		metrics.ErrorRate = float64(atomic.LoadInt64(&lt.result.FailedRequests)) / float64(totalRequests) * 100
	}

	totalPurchaseAttempts := lt.result.TotalPurchases + lt.result.FailedPurchases
	if totalPurchaseAttempts > 0 {
		metrics.PurchaseSuccessRate = float64(lt.result.TotalPurchases) / float64(totalPurchaseAttempts) * 100
	}

	if len(lt.result.ResponseTimes) > 0 {
		metrics.P50ResponseTime = calculatePercentile(lt.result.ResponseTimes, 50)
		metrics.P95ResponseTime = calculatePercentile(lt.result.ResponseTimes, 95)
		metrics.P99ResponseTime = calculatePercentile(lt.result.ResponseTimes, 99)
	}

	return metrics
}

func calculatePercentile(durations []time.Duration, percentile int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := int(float64(len(sorted)) * float64(percentile) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	if index < 0 {
		index = 0
	}

	return sorted[index]
}

func (pm *PerformanceMetrics) PrintReport() {
	fmt.Printf("PERFORMANCE TEST RESULTS\n")
	fmt.Printf("Test Duration: %v\n", pm.TotalDuration.Round(time.Second))
	fmt.Printf("Start Time: %s\n", pm.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("End Time: %s\n", pm.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("\n")

	fmt.Printf("THROUGHPUT METRICS:\n")
	fmt.Printf("- Total RPS: %.2f requests/second\n", pm.ThroughputRPS)
	fmt.Printf("- Successful TPS: %.2f transactions/second\n", pm.SuccessfulTPS)
	fmt.Printf("- Error Rate: %.2f%%\n", pm.ErrorRate)
	fmt.Printf("\n")

	fmt.Printf("RESPONSE TIME METRICS:\n")
	fmt.Printf("- P50 Response Time: %v\n", pm.P50ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P95 Response Time: %v\n", pm.P95ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P99 Response Time: %v\n", pm.P99ResponseTime.Round(time.Millisecond))
	fmt.Printf("\n")

	fmt.Printf("BUSINESS METRICS:\n")
	fmt.Printf("- Purchase Success Rate: %.2f%%\n", pm.PurchaseSuccessRate)
	fmt.Printf("\n")
}

func (pm *PerformanceMetrics) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
