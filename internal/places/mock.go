package places

import (
	"context"

	"wallet-advisor/internal/models"
)

// MockProvider returns fixture places for development and testing when
// no Google API key is configured.
type MockProvider struct{}

// NewMockProvider creates a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// GetNearbyPlaces returns fixture places offset from the given
// coordinates, sorted by distance. The radius and type filters are
// ignored.
func (m *MockProvider) GetNearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters int, placeTypes []string) ([]Place, error) {
	fixtures := []struct {
		id       string
		name     string
		category models.Category
		types    []string
		address  string
		dLat     float64
		dLng     float64
		rating   float64
		price    int
		distance float64
	}{
		{"mock_target_1", "Target", models.CategoryShopping, []string{"department_store", "shopping"}, "123 Main St", 0.01, 0.01, 4.2, 2, 500},
		{"mock_whole_foods_1", "Whole Foods Market", models.CategoryGroceries, []string{"grocery_or_supermarket", "supermarket"}, "456 Oak Ave", 0.005, 0.005, 4.5, 3, 750},
		{"mock_chipotle_1", "Chipotle Mexican Grill", models.CategoryDining, []string{"restaurant", "food"}, "789 Restaurant Row", 0.008, 0.003, 4.0, 2, 900},
		{"mock_shell_1", "Shell Gas Station", models.CategoryGas, []string{"gas_station"}, "321 Highway Blvd", 0.012, 0.008, 3.8, 2, 1200},
		{"mock_starbucks_1", "Starbucks", models.CategoryDining, []string{"cafe", "food"}, "555 Coffee Lane", 0.003, 0.007, 4.3, 2, 600},
		{"mock_walmart_1", "Walmart Supercenter", models.CategoryGroceries, []string{"grocery_or_supermarket", "department_store"}, "888 Commerce Dr", 0.015, 0.002, 3.9, 1, 1500},
		{"mock_costco_1", "Costco Wholesale", models.CategoryGroceries, []string{"grocery_or_supermarket", "warehouse_club"}, "999 Wholesale Way", 0.018, 0.005, 4.4, 2, 1800},
		{"mock_panerabread_1", "Panera Bread", models.CategoryDining, []string{"restaurant", "cafe", "bakery"}, "222 Bakery Street", 0.006, 0.009, 4.1, 2, 800},
	}

	places := make([]Place, 0, len(fixtures))
	for _, f := range fixtures {
		places = append(places, Place{
			ID:             f.id,
			Name:           f.name,
			Category:       f.category,
			PlaceTypes:     f.types,
			Address:        f.address,
			Latitude:       lat + f.dLat,
			Longitude:      lng + f.dLng,
			Rating:         f.rating,
			PriceLevel:     f.price,
			Open:           true,
			DistanceMeters: f.distance,
		})
	}

	return dedupeAndSort(places, maxResults), nil
}
