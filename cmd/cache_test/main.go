package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"space-explorer/cache"
	"space-explorer/datasource"
	"space-explorer/providers/apod"
	"space-explorer/providers/apodrss"

	"github.com/joho/godotenv"
)

func main() {
	count := flag.Int("count", 3, "Pictures to request per round")
	flag.Parse()

	fmt.Println("=== Running Picture Cache Test ===")
	fmt.Println("This will demonstrate how caching works with repeated picture requests")
	fmt.Println("The test will take about 20 seconds to complete...")

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file:", err)
	}

	// Set a short cache duration for demonstration purposes
	cacheDuration := 15 * time.Second

	// The RSS feed needs no key; APOD only joins when a real key is present
	sources := []*cache.CachedPictureSource{
		cache.NewCachedPictureSource(apodrss.NewSource(""), cacheDuration),
	}
	fmt.Println("Added APOD RSS source with 15-second cache")

	if apiKey := os.Getenv("NASA_API_KEY"); apiKey != "" {
		sources = append(sources, cache.NewCachedPictureSource(apod.NewSource(apiKey), cacheDuration))
		fmt.Println("Added APOD source with 15-second cache")
	}

	ctx := context.Background()

	fmt.Println("\n*** First Request - Should be cache misses ***")
	makeRequests(ctx, sources, *count)

	fmt.Println("\n*** Second Request - Should use cached data ***")
	makeRequests(ctx, sources, *count)

	fmt.Println("\nWaiting for cache to expire (15 seconds)...")
	time.Sleep(cacheDuration + 1*time.Second)

	fmt.Println("\n*** After Expiry - Should be cache misses again ***")
	makeRequests(ctx, sources, *count)

	for _, source := range sources {
		hits, misses := source.CacheStats()
		fmt.Printf("\nStats for %s: %d cache hits, %d cache misses\n", source.Name(), hits, misses)
	}

	fmt.Println("\n=== Cache Test Complete ===")
}

func makeRequests(ctx context.Context, sources []*cache.CachedPictureSource, count int) {
	for _, source := range sources {
		var src datasource.PictureSource = source

		today, err := src.FetchPicture(ctx)
		if err != nil {
			fmt.Printf("Error from %s: %v\n", src.Name(), err)
			continue
		}
		fmt.Printf("Today's picture from %s: %s (%s)\n", src.Name(), today.Title, today.Date)

		pictures, err := src.FetchPictures(ctx, count)
		if err != nil {
			fmt.Printf("Error from %s: %v\n", src.Name(), err)
			continue
		}
		fmt.Printf("Got %d pictures from %s\n", len(pictures), src.Name())
	}
}
