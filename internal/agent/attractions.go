package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"voyage/internal/maps"
)

// AttractionsAgent grounds the LLM-written attractions section with real
// Places lookups when a maps client is configured. Without one it behaves
// like a plain Gemini agent.
type AttractionsAgent struct {
	llm    *GeminiAgent
	places *maps.PlacesService
}

func NewAttractionsAgent(provider *GeminiProvider, places *maps.PlacesService) *AttractionsAgent {
	return &AttractionsAgent{
		llm:    NewGeminiAgent(provider, TypeAttractions),
		places: places,
	}
}

func (a *AttractionsAgent) Run(ctx context.Context, in Input) (*Result, error) {
	extra, sources := a.lookupPlaces(ctx, in)
	result, err := a.llm.runWithExtra(ctx, in, extra)
	if err != nil {
		return nil, err
	}
	result.Sources = append(result.Sources, sources...)
	return result, nil
}

// lookupPlaces fetches rated attractions per destination. Lookup failures
// degrade to LLM-only content rather than failing the agent.
func (a *AttractionsAgent) lookupPlaces(ctx context.Context, in Input) (string, []Source) {
	if a.places == nil {
		return "", nil
	}

	now := time.Now().UTC()
	var b strings.Builder
	var sources []Source
	for _, dest := range in.Snapshot.Destinations {
		found, err := a.places.SearchAttractions(ctx, dest.City, dest.Country, in.Snapshot.Preferences.Interests)
		if err != nil {
			log.Printf("places lookup failed for %s: %v", dest.City, err)
			continue
		}
		for _, p := range found {
			fmt.Fprintf(&b, "- %s (%s): rated %.1f by %d visitors\n", p.Name, p.Address, p.Rating, p.UserRatingsTotal)
			sources = append(sources, Source{
				Title:      p.Name,
				URL:        "https://www.google.com/maps/place/?q=place_id:" + p.PlaceID,
				VerifiedAt: now,
			})
		}
	}
	return b.String(), sources
}
