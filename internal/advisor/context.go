package advisor

import (
	"wallet-advisor/internal/models"
)

// Insight strings attached by context enrichment.
const (
	insightMorning        = "Morning purchase detected - common for coffee/breakfast"
	insightLunch          = "Lunch time - dining rewards may apply"
	insightEvening        = "Evening purchase - dinner or entertainment"
	insightRecurring      = "You shop here regularly - optimizing this saves more over time"
	insightOverspend      = "You're above your usual monthly spending - consider if this purchase is necessary"
	insightWeekendDining  = "Weekend dining - some cards offer bonus rewards on weekends"
)

// Enhancer attaches situational insights to a base recommendation.
// It is a pure function over its inputs; time is carried in the snapshot.
type Enhancer struct{}

// NewEnhancer creates a new Enhancer.
func NewEnhancer() *Enhancer {
	return &Enhancer{}
}

// Enhance returns a copy of the enriched recommendation with zero or more
// insight strings appended. The input is never mutated. The insight rules
// are independent and non-exclusive, except the three time ranges which
// are mutually exclusive by construction. Missing context fields are
// treated as "condition not met", never as an error.
func (e *Enhancer) Enhance(rec models.EnrichedRecommendation, snapshot models.ContextSnapshot) models.EnrichedRecommendation {
	enhanced := rec
	enhanced.ContextualInsights = append([]string(nil), rec.ContextualInsights...)

	switch {
	case snapshot.Hour >= 7 && snapshot.Hour <= 10:
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightMorning)
	case snapshot.Hour >= 11 && snapshot.Hour <= 14:
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightLunch)
	case snapshot.Hour >= 18 && snapshot.Hour <= 21:
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightEvening)
	}

	if snapshot.RecurringMerchant {
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightRecurring)
	}

	if snapshot.UsualMonthlySpend > 0 && snapshot.MonthlySpent > snapshot.UsualMonthlySpend {
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightOverspend)
	}

	if snapshot.Category == models.CategoryDining && snapshot.Weekend {
		enhanced.ContextualInsights = append(enhanced.ContextualInsights, insightWeekendDining)
	}

	return enhanced
}
