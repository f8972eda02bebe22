package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"space-explorer/models"
)

type weatherReport struct {
	Records  []models.MarsWeather `json:"records"`
	Source   string               `json:"source"`
	Provider string               `json:"provider"`
	Notice   string               `json:"notice"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the running server")
	query := flag.String("q", "mars", "Launch search query")
	flag.Parse()

	fmt.Println("Space Explorer API Client Example")
	fmt.Println("=================================")

	client := &http.Client{Timeout: 15 * time.Second}

	// Check the server is up
	var health map[string]string
	if err := getJSON(client, *baseURL+"/api/health", &health); err != nil {
		fmt.Printf("Error checking health: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Server status: %s\n", health["status"])

	// Get the latest Mars weather
	fmt.Println("\nFetching Mars weather...")
	var report weatherReport
	if err := getJSON(client, *baseURL+"/api/mars/weather", &report); err != nil {
		fmt.Printf("Error fetching Mars weather: %v\n", err)
		os.Exit(1)
	}
	if report.Notice != "" {
		fmt.Printf("Notice: %s\n", report.Notice)
	}
	fmt.Printf("Source: %s (%s)\n", report.Source, report.Provider)
	for _, w := range report.Records {
		fmt.Printf("Sol %d (%s, %s): %d°C avg, %d..%d°C, %d Pa\n",
			w.Sol, w.EarthDate, w.Season,
			w.AverageTemp(), w.MinTemp(), w.MaxTemp(), w.AveragePressure())
	}

	// Search upcoming launches
	fmt.Printf("\nSearching launches for %q...\n", *query)
	var launches map[string]any
	if err := getJSON(client, fmt.Sprintf("%s/api/launches?q=%s", *baseURL, *query), &launches); err != nil {
		fmt.Printf("Error fetching launches: %v\n", err)
		os.Exit(1)
	}

	prettyJSON, _ := json.MarshalIndent(launches, "", "  ")
	fmt.Printf("\nLaunches:\n%s\n", string(prettyJSON))
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}
