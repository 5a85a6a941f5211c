package places

import (
	"context"
	"math"
	"testing"

	"wallet-advisor/internal/models"
)

func TestCategoryForTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  models.Category
	}{
		{"restaurant", []string{"restaurant", "food"}, models.CategoryDining},
		{"cafe", []string{"cafe"}, models.CategoryDining},
		{"supermarket", []string{"grocery_or_supermarket"}, models.CategoryGroceries},
		{"gas station", []string{"gas_station"}, models.CategoryGas},
		{"hotel", []string{"lodging"}, models.CategoryTravel},
		{"movie theater", []string{"movie_theater"}, models.CategoryEntertainment},
		{"department store", []string{"department_store"}, models.CategoryShopping},
		{"first match wins", []string{"restaurant", "department_store"}, models.CategoryDining},
		{"unknown types", []string{"point_of_interest", "establishment"}, models.CategoryOther},
		{"empty", nil, models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryForTypes(tt.types); got != tt.want {
				t.Errorf("CategoryForTypes(%v) = %s, want %s", tt.types, got, tt.want)
			}
		})
	}
}

func TestHaversine(t *testing.T) {
	// San Francisco to Los Angeles is roughly 559 km.
	got := Haversine(37.7749, -122.4194, 34.0522, -118.2437)
	if math.Abs(got-559000) > 5000 {
		t.Errorf("SF to LA distance = %.0fm, want about 559000m", got)
	}

	// Identical points are zero distance.
	if d := Haversine(37.7749, -122.4194, 37.7749, -122.4194); d != 0 {
		t.Errorf("identical points should be 0, got %f", d)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{500, "500m"},
		{999, "999m"},
		{1000, "1.0km"},
		{1500, "1.5km"},
		{12345, "12.3km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%.0f) = %s, want %s", tt.meters, got, tt.want)
		}
	}
}

func TestMockProviderOrdering(t *testing.T) {
	m := NewMockProvider()
	results, err := m.GetNearbyPlaces(context.Background(), 37.7749, -122.4194, 2000, nil)
	if err != nil {
		t.Fatalf("GetNearbyPlaces: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 fixture places, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].DistanceMeters < results[i-1].DistanceMeters {
			t.Errorf("results not sorted by distance at position %d", i)
		}
	}

	if results[0].Name != "Target" {
		t.Errorf("expected Target closest, got %s", results[0].Name)
	}

	for _, p := range results {
		if p.Category == "" {
			t.Errorf("place %s has no category", p.Name)
		}
	}
}

func TestDedupeAndSort(t *testing.T) {
	places := []Place{
		{ID: "a", DistanceMeters: 300},
		{ID: "b", DistanceMeters: 100},
		{ID: "a", DistanceMeters: 300},
		{ID: "c", DistanceMeters: 200},
	}

	got := dedupeAndSort(places, 2)
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("expected closest unique places [b c], got [%s %s]", got[0].ID, got[1].ID)
	}
}
