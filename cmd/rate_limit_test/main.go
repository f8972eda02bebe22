package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"space-explorer/datasource"
	"space-explorer/providers/insight"
)

const sampleFeed = `{
  "sol_keys": ["4012", "4011"],
  "4012": {"First_UTC": "2024-10-15T00:00:00Z", "AT": {"av": -61.2, "mn": -95.1, "mx": -16.4, "ct": 1000}, "Season": "fall"},
  "4011": {"First_UTC": "2024-10-14T00:00:00Z", "PRE": {"av": 751.2, "mn": 722.0, "mx": 768.1, "ct": 1000}}
}`

// MockInsightFeed simulates latency and counts calls
type MockInsightFeed struct {
	callCount int
	mutex     sync.Mutex
	latency   time.Duration
}

func NewMockInsightFeed(latency time.Duration) *MockInsightFeed {
	return &MockInsightFeed{latency: latency}
}

func (m *MockInsightFeed) FetchMarsWeather(ctx context.Context) ([]byte, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	fmt.Printf("%s - Processing request #%d\n", time.Now().Format("15:04:05.000"), currentCount)

	select {
	case <-time.After(m.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return []byte(sampleFeed), nil
}

func (m *MockInsightFeed) Name() string {
	return "MockInSight"
}

func (m *MockInsightFeed) GetCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mockFeed := NewMockInsightFeed(200 * time.Millisecond)
	rateLimited := datasource.NewRateLimitedMarsWeatherSource(mockFeed, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing rate limiter with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)
	fmt.Println("Starting test...")

	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			for j := 0; j < requestsPerWorker; j++ {
				before := time.Now()
				raw, err := rateLimited.FetchMarsWeather(ctx)
				elapsed := time.Since(before)

				if err != nil {
					log.Printf("Worker %d - Request %d failed: %v", workerID, j, err)
				} else {
					log.Printf("Worker %d - Request %d decoded %d sols in %v", workerID, j, len(insight.Decode(raw)), elapsed)
				}

				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	totalTime := time.Since(startTime)
	actualRPS := float64(*totalRequests) / totalTime.Seconds()

	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Actual requests per second: %.2f\n", actualRPS)
	fmt.Printf("Total requests processed: %d\n", mockFeed.GetCallCount())

	expectedMinTime := float64(*totalRequests-*burstSize) / *requestsPerSecond
	if expectedMinTime < 0 {
		expectedMinTime = 0
	}
	fmt.Printf("Expected minimum time (theoretical): %.2f seconds\n", expectedMinTime)

	if actualRPS > *requestsPerSecond*1.5 && *totalRequests > *burstSize {
		fmt.Println("\nWARNING: Actual RPS significantly higher than configured rate limit!")
		fmt.Println("Rate limiting may not be working as expected.")
	} else {
		fmt.Println("\nRate limiting appears to be working correctly.")
	}
}
