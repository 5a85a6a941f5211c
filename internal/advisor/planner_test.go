package advisor

import (
	"math"
	"testing"

	"wallet-advisor/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlanCardSelection(t *testing.T) {
	tests := []struct {
		category  models.Category
		wantCard  string
		amount    float64
		wantValue float64
	}{
		{models.CategoryDining, "Amex Gold", 100, 4.00},
		{models.CategoryGroceries, "Amex Gold", 100, 4.00},
		{models.CategoryTravel, "Chase Sapphire", 100, 3.00},
		{models.CategoryGas, "Citi Custom Cash", 100, 5.00},
		{models.CategoryShopping, "Citi Double Cash", 100, 2.00},
		{models.CategoryOther, "Citi Double Cash", 100, 2.00},
	}

	p := NewPlanner()
	for _, tt := range tests {
		plan := p.Plan(nil, []models.PlannedExpense{
			{Merchant: "X", Amount: tt.amount, Category: tt.category},
		})

		if len(plan.Entries) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", tt.category, len(plan.Entries))
		}
		entry := plan.Entries[0]
		if entry.RecommendedCard != tt.wantCard {
			t.Errorf("%s: expected %s, got %s", tt.category, tt.wantCard, entry.RecommendedCard)
		}
		if !almostEqual(entry.ExpectedValue, tt.wantValue) {
			t.Errorf("%s: expected value %.2f, got %.2f", tt.category, tt.wantValue, entry.ExpectedValue)
		}
	}
}

func TestPlanTotalsValues(t *testing.T) {
	p := NewPlanner()
	plan := p.Plan(nil, []models.PlannedExpense{
		{Merchant: "Whole Foods", Amount: 100, Category: models.CategoryGroceries},
		{Merchant: "Delta", Amount: 100, Category: models.CategoryTravel},
	})

	if !almostEqual(plan.TotalExpectedValue, 7.00) {
		t.Errorf("expected total 7.00, got %.2f", plan.TotalExpectedValue)
	}
}

func TestPlanEmptyExpenses(t *testing.T) {
	p := NewPlanner()
	plan := p.Plan(nil, nil)

	if len(plan.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(plan.Entries))
	}
	if plan.TotalExpectedValue != 0 {
		t.Errorf("expected total 0, got %.2f", plan.TotalExpectedValue)
	}
	if len(plan.Tips) != 0 {
		t.Errorf("expected no tips, got %v", plan.Tips)
	}
}

func TestPlanConsolidationTip(t *testing.T) {
	expenses := make([]models.PlannedExpense, 6)
	for i := range expenses {
		expenses[i] = models.PlannedExpense{Merchant: "X", Amount: 10, Category: models.CategoryOther}
	}

	p := NewPlanner()
	plan := p.Plan(nil, expenses)
	if len(plan.Tips) != 1 || plan.Tips[0] != consolidationTip {
		t.Errorf("expected consolidation tip for 6 expenses, got %v", plan.Tips)
	}

	// Five expenses stay tip-free.
	plan = p.Plan(nil, expenses[:5])
	if len(plan.Tips) != 0 {
		t.Errorf("expected no tip for 5 expenses, got %v", plan.Tips)
	}
}

func TestPlanPreservesExpenseOrder(t *testing.T) {
	p := NewPlanner()
	plan := p.Plan(nil, []models.PlannedExpense{
		{Merchant: "A", Amount: 1, Category: models.CategoryDining},
		{Merchant: "B", Amount: 2, Category: models.CategoryGas},
		{Merchant: "C", Amount: 3, Category: models.CategoryTravel},
	})

	for i, want := range []string{"A", "B", "C"} {
		if plan.Entries[i].Expense != want {
			t.Errorf("position %d: expected %s, got %s", i, want, plan.Entries[i].Expense)
		}
	}
}
