package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/resilience"
	"wallet-advisor/pkg/utils"
)

const googleNearbyURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// maxResults caps the number of places returned per lookup.
const maxResults = 20

// GoogleProvider implements Provider using the Google Places nearby
// search REST API.
type GoogleProvider struct {
	apiKey  string
	client  *http.Client
	retry   utils.RetryConfig
	breaker *resilience.CircuitBreaker
}

// NewGoogleProvider creates a Google Places provider.
func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		retry:   utils.DefaultRetryConfig(),
		breaker: resilience.NewCircuitBreaker("google-places", resilience.DefaultConfig()),
	}
}

// nearbyResponse is the wire shape of a nearby search response.
type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Types    []string `json:"types"`
		Vicinity string   `json:"vicinity"`
		Rating   float64  `json:"rating"`
		Price    int      `json:"price_level"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		OpeningHours struct {
			OpenNow bool `json:"open_now"`
		} `json:"opening_hours"`
	} `json:"results"`
}

// GetNearbyPlaces searches each place type, merges results, and returns
// the closest unique places sorted by distance. Individual type searches
// are retried with backoff; repeated API denials abort the lookup.
func (g *GoogleProvider) GetNearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters int, placeTypes []string) ([]Place, error) {
	if g.apiKey == "" {
		return nil, apperrors.ErrNoProvider
	}
	if len(placeTypes) == 0 {
		placeTypes = DefaultPlaceTypes
	}

	var all []Place
	apiErrors := 0

	for _, placeType := range placeTypes {
		resp, err := resilience.ExecuteWithResult(g.breaker, func() (*nearbyResponse, error) {
			return utils.RetryWithResult(ctx, g.retry, func() (*nearbyResponse, error) {
				return g.search(ctx, lat, lng, radiusMeters, placeType)
			})
		})
		if err != nil {
			apiErrors++
			if apiErrors >= 3 {
				return nil, apperrors.NewPlacesError("google", "repeated failures", err)
			}
			continue
		}

		if resp.Status == "REQUEST_DENIED" || resp.Status == "INVALID_REQUEST" {
			apiErrors++
			if apiErrors >= 3 {
				return nil, apperrors.NewPlacesError("google", resp.Status, nil)
			}
			continue
		}

		for _, r := range resp.Results {
			all = append(all, Place{
				ID:             r.PlaceID,
				Name:           r.Name,
				Category:       CategoryForTypes(r.Types),
				PlaceTypes:     r.Types,
				Address:        r.Vicinity,
				Latitude:       r.Geometry.Location.Lat,
				Longitude:      r.Geometry.Location.Lng,
				Rating:         r.Rating,
				PriceLevel:     r.Price,
				Open:           r.OpeningHours.OpenNow,
				DistanceMeters: Haversine(lat, lng, r.Geometry.Location.Lat, r.Geometry.Location.Lng),
			})
		}
	}

	return dedupeAndSort(all, maxResults), nil
}

func (g *GoogleProvider) search(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) (*nearbyResponse, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", placeType)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleNearbyURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building places request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request returned %d", resp.StatusCode)
	}

	var parsed nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}
	return &parsed, nil
}
