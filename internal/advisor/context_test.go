package advisor

import (
	"testing"

	"wallet-advisor/internal/models"
)

func TestEnhanceTimeInsights(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{7, insightMorning},
		{10, insightMorning},
		{11, insightLunch},
		{14, insightLunch},
		{18, insightEvening},
		{21, insightEvening},
		{6, ""},
		{15, ""},
		{22, ""},
		{0, ""},
	}

	e := NewEnhancer()
	for _, tt := range tests {
		got := e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{Hour: tt.hour})

		if tt.want == "" {
			if len(got.ContextualInsights) != 0 {
				t.Errorf("hour %d: expected no insights, got %v", tt.hour, got.ContextualInsights)
			}
			continue
		}
		if len(got.ContextualInsights) != 1 || got.ContextualInsights[0] != tt.want {
			t.Errorf("hour %d: expected [%s], got %v", tt.hour, tt.want, got.ContextualInsights)
		}
	}
}

func TestEnhanceRecurringMerchant(t *testing.T) {
	e := NewEnhancer()
	got := e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:              15,
		RecurringMerchant: true,
	})

	if len(got.ContextualInsights) != 1 || got.ContextualInsights[0] != insightRecurring {
		t.Errorf("expected recurring insight, got %v", got.ContextualInsights)
	}
}

func TestEnhanceOverspend(t *testing.T) {
	e := NewEnhancer()

	got := e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:              15,
		MonthlySpent:      1600,
		UsualMonthlySpend: 1500,
	})
	if len(got.ContextualInsights) != 1 || got.ContextualInsights[0] != insightOverspend {
		t.Errorf("expected overspend insight, got %v", got.ContextualInsights)
	}

	// At the threshold exactly there is no overspend.
	got = e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:              15,
		MonthlySpent:      1500,
		UsualMonthlySpend: 1500,
	})
	if len(got.ContextualInsights) != 0 {
		t.Errorf("expected no insight at the threshold, got %v", got.ContextualInsights)
	}

	// No baseline means the rule is off entirely.
	got = e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:         15,
		MonthlySpent: 99999,
	})
	if len(got.ContextualInsights) != 0 {
		t.Errorf("expected no insight without a baseline, got %v", got.ContextualInsights)
	}
}

func TestEnhanceWeekendDining(t *testing.T) {
	e := NewEnhancer()

	got := e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:     15,
		Weekend:  true,
		Category: models.CategoryDining,
	})
	if len(got.ContextualInsights) != 1 || got.ContextualInsights[0] != insightWeekendDining {
		t.Errorf("expected weekend dining insight, got %v", got.ContextualInsights)
	}

	// Weekend shopping gets nothing.
	got = e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:     15,
		Weekend:  true,
		Category: models.CategoryShopping,
	})
	if len(got.ContextualInsights) != 0 {
		t.Errorf("expected no insight for weekend shopping, got %v", got.ContextualInsights)
	}
}

func TestEnhanceStacksIndependentRules(t *testing.T) {
	e := NewEnhancer()
	got := e.Enhance(models.EnrichedRecommendation{}, models.ContextSnapshot{
		Hour:              12,
		Weekend:           true,
		Category:          models.CategoryDining,
		RecurringMerchant: true,
		MonthlySpent:      2000,
		UsualMonthlySpend: 1500,
	})

	want := []string{insightLunch, insightRecurring, insightOverspend, insightWeekendDining}
	if len(got.ContextualInsights) != len(want) {
		t.Fatalf("expected %d insights, got %v", len(want), got.ContextualInsights)
	}
	for i := range want {
		if got.ContextualInsights[i] != want[i] {
			t.Errorf("insight %d: expected %q, got %q", i, want[i], got.ContextualInsights[i])
		}
	}
}

func TestEnhanceDoesNotMutateInput(t *testing.T) {
	e := NewEnhancer()
	input := models.EnrichedRecommendation{
		ContextualInsights: []string{"existing"},
	}

	got := e.Enhance(input, models.ContextSnapshot{Hour: 8})

	if len(input.ContextualInsights) != 1 {
		t.Errorf("input was mutated: %v", input.ContextualInsights)
	}
	if len(got.ContextualInsights) != 2 || got.ContextualInsights[0] != "existing" {
		t.Errorf("expected existing insight preserved and morning appended, got %v", got.ContextualInsights)
	}
}
