package store

import (
	"context"
	"fmt"
	"time"

	"wallet-advisor/internal/models"
)

// Seed populates the store with sample users, cards, merchants, and
// transactions for development and demos.
func Seed(ctx context.Context, s DataStore) error {
	john := &models.User{
		Email:       "john.doe@example.com",
		FullName:    "John Doe",
		Phone:       "+1234567890",
		DefaultGoal: models.GoalCashBack,
	}
	if err := s.CreateUser(ctx, john); err != nil {
		return fmt.Errorf("seeding user %s: %w", john.Email, err)
	}

	jane := &models.User{
		Email:       "jane.smith@example.com",
		FullName:    "Jane Smith",
		Phone:       "+1987654321",
		DefaultGoal: models.GoalTravelPoints,
	}
	if err := s.CreateUser(ctx, jane); err != nil {
		return fmt.Errorf("seeding user %s: %w", jane.Email, err)
	}

	johnCards := []*models.CreditCard{
		{
			UserID: john.ID,
			Name:   "Chase Sapphire Reserve",
			Issuer: models.IssuerChase,
			CashBackRate: map[string]float64{
				"dining": 0.03, "travel": 0.03, "other": 0.01,
			},
			PointsMultiplier: map[string]float64{
				"dining": 3.0, "travel": 3.0, "other": 1.0,
			},
			AnnualFee: 550.0,
			Benefits: []string{
				"Airport Lounge Access", "Travel Insurance", "$300 Travel Credit",
				"Priority Pass", "No Foreign Transaction Fees",
			},
			LastFourDigits: "4123",
			CreditLimit:    20000.0,
			SignUpBonus:    60000.0,
		},
		{
			UserID: john.ID,
			Name:   "Citi Double Cash",
			Issuer: models.IssuerCiti,
			CashBackRate: map[string]float64{
				"dining": 0.02, "travel": 0.02, "groceries": 0.02, "gas": 0.02,
				"entertainment": 0.02, "shopping": 0.02, "other": 0.02,
			},
			PointsMultiplier: map[string]float64{"other": 0.0},
			Benefits: []string{
				"No Annual Fee", "Extended Warranty", "2% Cash Back on Everything",
			},
			LastFourDigits: "8765",
			CreditLimit:    15000.0,
		},
		{
			UserID: john.ID,
			Name:   "American Express Gold",
			Issuer: models.IssuerAmex,
			CashBackRate: map[string]float64{
				"dining": 0.04, "groceries": 0.04, "other": 0.01,
			},
			PointsMultiplier: map[string]float64{
				"dining": 4.0, "groceries": 4.0, "other": 1.0,
			},
			AnnualFee: 250.0,
			Benefits: []string{
				"$120 Dining Credits", "$120 Uber Credits",
				"Travel Insurance", "Purchase Protection",
			},
			LastFourDigits: "3456",
			CreditLimit:    25000.0,
			SignUpBonus:    50000.0,
		},
	}

	janeCards := []*models.CreditCard{
		{
			UserID: jane.ID,
			Name:   "Chase Freedom Unlimited",
			Issuer: models.IssuerChase,
			CashBackRate: map[string]float64{
				"dining": 0.03, "travel": 0.05, "other": 0.015,
			},
			PointsMultiplier: map[string]float64{
				"dining": 3.0, "travel": 5.0, "other": 1.5,
			},
			Benefits: []string{
				"No Annual Fee", "Cell Phone Protection", "Purchase Protection",
			},
			LastFourDigits: "7890",
			CreditLimit:    10000.0,
			SignUpBonus:    20000.0,
		},
		{
			UserID: jane.ID,
			Name:   "Discover it Cash Back",
			Issuer: models.IssuerDiscover,
			CashBackRate: map[string]float64{
				"gas": 0.05, "groceries": 0.05, "other": 0.01,
			},
			PointsMultiplier: map[string]float64{"other": 0.0},
			Benefits: []string{
				"Rotating 5% Categories", "Cashback Match", "Free FICO Score",
			},
			LastFourDigits: "2468",
			CreditLimit:    8000.0,
		},
	}

	cardsByName := make(map[string]*models.CreditCard)
	for _, card := range append(johnCards, janeCards...) {
		if err := s.SaveCard(ctx, card); err != nil {
			return fmt.Errorf("seeding card %s: %w", card.Name, err)
		}
		cardsByName[card.Name] = card
	}

	merchants := []struct {
		name     string
		category models.Category
	}{
		{"Starbucks", models.CategoryDining},
		{"Whole Foods", models.CategoryGroceries},
		{"Shell", models.CategoryGas},
		{"Amazon", models.CategoryShopping},
		{"United Airlines", models.CategoryTravel},
		{"Marriott Hotel", models.CategoryTravel},
		{"Target", models.CategoryShopping},
		{"Chipotle", models.CategoryDining},
		{"Uber", models.CategoryTravel},
		{"Netflix", models.CategoryEntertainment},
	}
	for _, m := range merchants {
		if _, err := s.GetOrCreateMerchant(ctx, m.name, m.category); err != nil {
			return fmt.Errorf("seeding merchant %s: %w", m.name, err)
		}
	}

	const pointValue = 0.015

	seedTxns := []struct {
		merchant string
		amount   float64
		category models.Category
		card     string
		daysAgo  int
	}{
		{"Starbucks", 15.50, models.CategoryDining, "American Express Gold", 1},
		{"Whole Foods", 125.75, models.CategoryGroceries, "American Express Gold", 2},
		{"United Airlines", 450.00, models.CategoryTravel, "Chase Sapphire Reserve", 5},
		{"Shell", 45.00, models.CategoryGas, "Citi Double Cash", 3},
		{"Target", 85.20, models.CategoryShopping, "Citi Double Cash", 4},
		{"Chipotle", 22.50, models.CategoryDining, "American Express Gold", 7},
		{"Amazon", 156.99, models.CategoryShopping, "Citi Double Cash", 10},
	}

	for _, st := range seedTxns {
		card := cardsByName[st.card]
		cashBack := st.amount * card.CashBackFor(st.category)
		points := st.amount * card.PointsFor(st.category)
		value := cashBack + points*pointValue

		txn := &models.Transaction{
			UserID:          john.ID,
			Merchant:        st.merchant,
			Amount:          st.amount,
			Category:        st.category,
			Goal:            john.DefaultGoal,
			CardUsed:        card.Name,
			RecommendedCard: card.Name, // seeded as the optimal choice
			CashBackEarned:  cashBack,
			PointsEarned:    points,
			ActualValue:     value,
			OptimalValue:    value,
			UsedRecommended: true,
			Location:        "San Francisco, CA",
			Timestamp:       time.Now().AddDate(0, 0, -st.daysAgo),
		}
		if err := s.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("seeding transaction at %s: %w", st.merchant, err)
		}
	}

	return nil
}
