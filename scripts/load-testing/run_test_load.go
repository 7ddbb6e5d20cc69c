package main

import (
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	config := &LoadTestConfig{
		BaseURL:             "http://localhost:8080",
		ConcurrentUsers:     400,
		TestDurationSeconds: 300,
		RampUpSeconds:       30,
		SeedCollectionSize:  500,
		StartingBalance:     100000,
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "light":
			config.ConcurrentUsers = 200
			config.TestDurationSeconds = 120
			config.RampUpSeconds = 20
			config.SeedCollectionSize = 200
		case "heavy":
			config.ConcurrentUsers = 800
			config.TestDurationSeconds = 600
			config.RampUpSeconds = 60
			config.SeedCollectionSize = 1000
		case "stress":
			config.ConcurrentUsers = 1500
			config.TestDurationSeconds = 900
			config.RampUpSeconds = 90
			config.SeedCollectionSize = 1000
		}
	}

	if baseURL := os.Getenv("MARKET_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	tester := NewLoadTester(config)

	fmt.Println("Seeding marketplace...")
	if err := tester.Seed(); err != nil {
		log.Fatal("Failed to seed marketplace:", err)
	}

	metrics := tester.Run()
	metrics.PrintReport()

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("load_test_%s.json", timestamp)
	if err := metrics.SaveToFile(filename); err != nil {
		log.Printf("Failed to save results: %v", err)
	} else {
		fmt.Printf("Results saved to: %s\n", filename)
	}
}
