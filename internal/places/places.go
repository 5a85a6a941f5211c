// Package places provides nearby point-of-interest lookup used to build
// location-aware category hints. It sits outside the recommendation
// pipeline; the advisor only consumes its category output.
package places

import (
	"context"
	"fmt"
	"math"
	"sort"

	"wallet-advisor/internal/models"
)

// Place represents a nearby point of interest.
type Place struct {
	ID             string
	Name           string
	Category       models.Category
	PlaceTypes     []string
	Address        string
	Latitude       float64
	Longitude      float64
	Rating         float64
	PriceLevel     int
	Open           bool
	DistanceMeters float64
}

// Provider defines the interface for nearby-place lookup.
type Provider interface {
	GetNearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters int, placeTypes []string) ([]Place, error)
}

// DefaultPlaceTypes are the place types relevant for card rewards.
var DefaultPlaceTypes = []string{
	"restaurant",
	"grocery_or_supermarket",
	"gas_station",
	"shopping_mall",
	"department_store",
	"cafe",
	"movie_theater",
	"airport",
	"hotel",
}

// typeCategories maps provider place types to spending categories.
var typeCategories = map[string]models.Category{
	"restaurant":             models.CategoryDining,
	"cafe":                   models.CategoryDining,
	"bar":                    models.CategoryDining,
	"meal_delivery":          models.CategoryDining,
	"meal_takeaway":          models.CategoryDining,
	"food":                   models.CategoryDining,
	"grocery_or_supermarket": models.CategoryGroceries,
	"supermarket":            models.CategoryGroceries,
	"gas_station":            models.CategoryGas,
	"airport":                models.CategoryTravel,
	"hotel":                  models.CategoryTravel,
	"lodging":                models.CategoryTravel,
	"travel_agency":          models.CategoryTravel,
	"movie_theater":          models.CategoryEntertainment,
	"amusement_park":         models.CategoryEntertainment,
	"bowling_alley":          models.CategoryEntertainment,
	"shopping_mall":          models.CategoryShopping,
	"department_store":       models.CategoryShopping,
	"clothing_store":         models.CategoryShopping,
	"electronics_store":      models.CategoryShopping,
}

// CategoryForTypes maps a place's type list to the first matching
// spending category, falling back to "other".
func CategoryForTypes(placeTypes []string) models.Category {
	for _, t := range placeTypes {
		if c, ok := typeCategories[t]; ok {
			return c
		}
	}
	return models.CategoryOther
}

// Haversine returns the distance in meters between two coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// FormatDistance formats a distance for display.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(meters))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// dedupeAndSort removes duplicate place IDs, sorts by distance, and
// keeps the closest limit entries.
func dedupeAndSort(all []Place, limit int) []Place {
	seen := make(map[string]bool, len(all))
	unique := make([]Place, 0, len(all))
	for _, p := range all {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].DistanceMeters < unique[j].DistanceMeters
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
