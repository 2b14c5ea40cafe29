package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place represents a simplified attraction result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchAttractions looks up well-rated attractions in a city, optionally
// biased by traveler interests.
func (s *PlacesService) SearchAttractions(ctx context.Context, city, country string, interests []string) ([]Place, error) {
	query := fmt.Sprintf("top attractions in %s, %s", city, country)
	if len(interests) > 0 {
		query = fmt.Sprintf("%s attractions in %s, %s", strings.Join(interests, " "), city, country)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		if result.Rating < 4.0 { // Filter for high quality
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= 5 {
			break
		}
	}
	return results, nil
}
