package advisor

import (
	"testing"

	"wallet-advisor/internal/models"
)

func TestProfilerEmptyHistory(t *testing.T) {
	p := NewProfiler()
	profile := p.Learn("USR-1", nil)

	if profile.UserID != "USR-1" {
		t.Errorf("expected user USR-1, got %s", profile.UserID)
	}
	if profile.PreferredGoal != models.GoalBalanced {
		t.Errorf("expected balanced goal for empty history, got %s", profile.PreferredGoal)
	}
	if len(profile.CommonCategories) != 0 {
		t.Errorf("expected no categories, got %v", profile.CommonCategories)
	}
	if profile.Spending.TransactionCount != 0 || profile.Spending.TotalSpent != 0 {
		t.Errorf("expected zero spending aggregates, got %+v", profile.Spending)
	}
}

func TestProfilerAggregates(t *testing.T) {
	txns := []models.Transaction{
		{Category: models.CategoryDining, Goal: models.GoalCashBack, Amount: 50},
		{Category: models.CategoryDining, Goal: models.GoalCashBack, Amount: 30},
		{Category: models.CategoryTravel, Goal: models.GoalTravelPoints, Amount: 400},
		{Category: models.CategoryGroceries, Goal: models.GoalCashBack, Amount: 120},
	}

	p := NewProfiler()
	profile := p.Learn("USR-1", txns)

	if profile.PreferredGoal != models.GoalCashBack {
		t.Errorf("expected cash_back as dominant goal, got %s", profile.PreferredGoal)
	}
	if len(profile.CommonCategories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(profile.CommonCategories))
	}
	if profile.CommonCategories[0] != models.CategoryDining {
		t.Errorf("expected dining as top category, got %s", profile.CommonCategories[0])
	}
	if profile.Spending.TotalSpent != 600 {
		t.Errorf("expected total 600, got %.2f", profile.Spending.TotalSpent)
	}
	if profile.Spending.AvgTransaction != 150 {
		t.Errorf("expected avg 150, got %.2f", profile.Spending.AvgTransaction)
	}
	if profile.Spending.TransactionCount != 4 {
		t.Errorf("expected count 4, got %d", profile.Spending.TransactionCount)
	}
}

func TestProfilerMalformedRecords(t *testing.T) {
	txns := []models.Transaction{
		{Category: "", Goal: "", Amount: -25},
		{Category: models.CategoryGas, Goal: models.GoalCashBack, Amount: 40},
	}

	p := NewProfiler()
	profile := p.Learn("USR-1", txns)

	// Missing category counts as "other", missing goal as "balanced",
	// negative amount as zero.
	found := false
	for _, c := range profile.CommonCategories {
		if c == models.CategoryOther {
			found = true
		}
	}
	if !found {
		t.Errorf("expected other category from blank record, got %v", profile.CommonCategories)
	}
	if profile.Spending.TotalSpent != 40 {
		t.Errorf("expected negative amount treated as zero, total 40, got %.2f", profile.Spending.TotalSpent)
	}
	if profile.Spending.TransactionCount != 2 {
		t.Errorf("expected count 2, got %d", profile.Spending.TransactionCount)
	}
}

func TestProfilerTieBreakFirstSeen(t *testing.T) {
	txns := []models.Transaction{
		{Category: models.CategoryTravel, Goal: models.GoalTravelPoints, Amount: 10},
		{Category: models.CategoryDining, Goal: models.GoalCashBack, Amount: 10},
		{Category: models.CategoryTravel, Goal: models.GoalTravelPoints, Amount: 10},
		{Category: models.CategoryDining, Goal: models.GoalCashBack, Amount: 10},
	}

	p := NewProfiler()
	profile := p.Learn("USR-1", txns)

	if profile.PreferredGoal != models.GoalTravelPoints {
		t.Errorf("tie should go to first-seen goal, got %s", profile.PreferredGoal)
	}
	if profile.CommonCategories[0] != models.CategoryTravel {
		t.Errorf("tie should go to first-seen category, got %s", profile.CommonCategories[0])
	}
}

func TestProfilerLatestWins(t *testing.T) {
	p := NewProfiler()
	p.Learn("USR-1", []models.Transaction{
		{Category: models.CategoryDining, Goal: models.GoalCashBack, Amount: 10},
	})
	p.Learn("USR-1", nil)

	profile := p.Profile("USR-1")
	if profile == nil {
		t.Fatal("expected stored profile")
	}
	if profile.Spending.TransactionCount != 0 {
		t.Errorf("expected latest (empty) profile to win, got %+v", profile.Spending)
	}
}

func TestProfilerUnknownUser(t *testing.T) {
	p := NewProfiler()
	if got := p.Profile("nobody"); got != nil {
		t.Errorf("expected nil profile for unknown user, got %+v", got)
	}
}

func TestFrequencyCounterTopN(t *testing.T) {
	f := newFrequencyCounter()
	for _, k := range []string{"a", "b", "b", "c", "c", "c", "d"} {
		f.Add(k)
	}

	top := f.TopN(3)
	want := []string{"c", "b", "a"}
	if len(top) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(top))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], top[i])
		}
	}
}
