// Package models provides domain models for the wallet advisor application.
package models

import (
	"time"
)

// Category represents a spending category.
type Category string

const (
	CategoryDining        Category = "dining"
	CategoryTravel        Category = "travel"
	CategoryGroceries     Category = "groceries"
	CategoryGas           Category = "gas"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists all known spending categories.
var Categories = []Category{
	CategoryDining,
	CategoryTravel,
	CategoryGroceries,
	CategoryGas,
	CategoryShopping,
	CategoryEntertainment,
	CategoryOther,
}

// ParseCategory normalizes a category string, falling back to "other".
func ParseCategory(s string) Category {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// OptimizationGoal represents a user-level preference for which reward
// currency a recommendation should favor.
type OptimizationGoal string

const (
	GoalCashBack     OptimizationGoal = "cash_back"
	GoalTravelPoints OptimizationGoal = "travel_points"
	GoalBalanced     OptimizationGoal = "balanced"
)

// ParseGoal normalizes a goal string, falling back to "balanced".
func ParseGoal(s string) OptimizationGoal {
	switch OptimizationGoal(s) {
	case GoalCashBack:
		return GoalCashBack
	case GoalTravelPoints:
		return GoalTravelPoints
	default:
		return GoalBalanced
	}
}

// CardIssuer represents a credit card issuer.
type CardIssuer string

const (
	IssuerChase    CardIssuer = "CHASE"
	IssuerAmex     CardIssuer = "AMEX"
	IssuerCiti     CardIssuer = "CITI"
	IssuerDiscover CardIssuer = "DISCOVER"
	IssuerCapital1 CardIssuer = "CAPITAL_ONE"
	IssuerOther    CardIssuer = "OTHER"
)

// User represents an account holder.
type User struct {
	ID          string
	Email       string
	FullName    string
	Phone       string
	DefaultGoal OptimizationGoal
	CreatedAt   time.Time
}

// CreditCard represents a payment instrument belonging to a user.
// Rate maps are keyed by category name; the "other" key is the fallback.
type CreditCard struct {
	ID               string
	UserID           string
	Name             string
	Issuer           CardIssuer
	CashBackRate     map[string]float64
	PointsMultiplier map[string]float64
	AnnualFee        float64
	Benefits         []string
	LastFourDigits   string
	CreditLimit      float64
	SignUpBonus      float64
	CreatedAt        time.Time
}

// CashBackFor returns the card's cash back rate for a category,
// falling back to the "other" rate.
func (c *CreditCard) CashBackFor(category Category) float64 {
	if r, ok := c.CashBackRate[string(category)]; ok {
		return r
	}
	return c.CashBackRate[string(CategoryOther)]
}

// PointsFor returns the card's points multiplier for a category,
// falling back to the "other" multiplier.
func (c *CreditCard) PointsFor(category Category) float64 {
	if m, ok := c.PointsMultiplier[string(category)]; ok {
		return m
	}
	return c.PointsMultiplier[string(CategoryOther)]
}

// Merchant represents a known merchant with a default category.
type Merchant struct {
	ID        string
	Name      string
	Category  Category
	CreatedAt time.Time
}

// Transaction represents a recorded purchase. Immutable once recorded;
// the advisor pipeline only reads it.
type Transaction struct {
	ID               string
	UserID           string
	Merchant         string
	Amount           float64
	Category         Category
	Goal             OptimizationGoal
	CardUsed         string
	RecommendedCard  string
	CashBackEarned   float64
	PointsEarned     float64
	ActualValue      float64
	OptimalValue     float64
	UsedRecommended  bool
	Location         string
	Timestamp        time.Time
}
