package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"voyage/internal/agent"
	"voyage/internal/trip"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := agent.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	// Sample trip
	snap := trip.Snapshot{
		Traveler: trip.Traveler{
			Nationality:      "US",
			ResidencyCountry: "US",
			OriginCity:       "San Francisco",
		},
		Destinations: []trip.Destination{
			{Country: "Japan", City: "Tokyo", DurationDays: 7},
		},
		Details: trip.Details{
			DepartureDate: "2026-10-01",
			ReturnDate:    "2026-10-08",
			Budget:        3000,
			Currency:      "USD",
			Purposes:      []string{"tourism"},
		},
	}

	visa := agent.NewGeminiAgent(provider, agent.TypeVisa)
	result, err := visa.Run(ctx, agent.Input{TripID: "demo", Snapshot: snap})
	if err != nil {
		log.Fatalf("Error running visa agent: %v", err)
	}

	fmt.Printf("Title: %s\n", result.Title)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Content:\n%s\n", result.Content)
	for _, src := range result.Sources {
		fmt.Printf("Source: %s (%s)\n", src.Title, src.URL)
	}
}
