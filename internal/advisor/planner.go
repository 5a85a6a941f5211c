package advisor

import (
	"wallet-advisor/internal/models"
)

// Illustrative value model for planning. The authoritative model lives in
// the card-scoring engine; these tables only sketch relative value.
var plannerCategoryCards = map[models.Category]string{
	models.CategoryDining:    "Amex Gold",
	models.CategoryTravel:    "Chase Sapphire",
	models.CategoryGroceries: "Amex Gold",
	models.CategoryGas:       "Citi Custom Cash",
}

const plannerDefaultCard = "Citi Double Cash"

const plannerRewardRate = 0.01

const consolidationTip = "Consider consolidating purchases at similar merchants to maximize category bonuses"

// Planner produces a multi-expense card usage plan from a preference
// summary and a list of forthcoming expenses.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan resolves a recommended card per expense via the fixed
// category->card table and accumulates expected value using the fixed
// multiplier table. The profile is accepted but not yet consulted for
// category resolution; that is a known simplification. An empty expense
// list yields an empty plan with total 0.
func (p *Planner) Plan(profile *models.BehaviorProfile, expenses []models.PlannedExpense) models.StrategicPlan {
	plan := models.StrategicPlan{}

	for _, expense := range expenses {
		card := optimalCardFor(expense.Category)
		value := expectedValue(card, expense.Category, expense.Amount)

		plan.Entries = append(plan.Entries, models.PlanEntry{
			Expense:         expense.Merchant,
			Amount:          expense.Amount,
			RecommendedCard: card,
			ExpectedValue:   value,
		})
		plan.TotalExpectedValue += value
	}

	if len(expenses) > 5 {
		plan.Tips = append(plan.Tips, consolidationTip)
	}

	return plan
}

func optimalCardFor(category models.Category) string {
	if card, ok := plannerCategoryCards[category]; ok {
		return card
	}
	return plannerDefaultCard
}

func expectedValue(card string, category models.Category, amount float64) float64 {
	return amount * cardMultiplier(card, category) * plannerRewardRate
}

func cardMultiplier(card string, category models.Category) float64 {
	switch card {
	case "Amex Gold":
		if category == models.CategoryDining || category == models.CategoryGroceries {
			return 4.0
		}
		return 1.0
	case "Chase Sapphire":
		if category == models.CategoryTravel {
			return 3.0
		}
		return 1.0
	case "Citi Custom Cash":
		if category == models.CategoryGas {
			return 5.0
		}
		return 1.0
	case "Citi Double Cash":
		return 2.0
	default:
		return 1.0
	}
}
