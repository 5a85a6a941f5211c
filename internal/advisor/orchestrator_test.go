package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"wallet-advisor/internal/config"
	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
)

// stubEngine returns a fixed recommendation or error.
type stubEngine struct {
	rec *models.BaseRecommendation
	err error
}

func (s *stubEngine) Recommend(ctx context.Context, txn models.Transaction, cards []models.CreditCard) (*models.BaseRecommendation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

func testConfig() config.AdvisorConfig {
	return config.AdvisorConfig{
		MinFeedbackSamples: 5,
		HistoryWindow:      10,
		MaxOpportunities:   3,
		UsualMonthlySpend:  1500,
		RecurringMerchants: []string{"Starbucks", "Whole Foods"},
	}
}

func newTestOrchestrator(eng Engine, at time.Time) *Orchestrator {
	o := New(eng, testConfig(), zerolog.Nop())
	o.now = func() time.Time { return at }
	return o
}

func TestOrchestratorAutomationShortCircuit(t *testing.T) {
	eng := &stubEngine{err: errors.New("engine must not be called")}
	o := newTestOrchestrator(eng, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))

	o.Matcher().AddRule("USR-1", models.RuleCondition{
		Field: models.FieldMerchant, Op: models.OpEquals, Value: "Starbucks",
	}, "Amex Gold")

	rec, err := o.Recommend(context.Background(), Request{
		UserID:      "USR-1",
		Transaction: models.Transaction{Merchant: "Starbucks", Amount: 6.75, Category: models.CategoryDining},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Source != models.SourceAutomation {
		t.Errorf("expected automation source, got %s", rec.Source)
	}
	if rec.Base.RecommendedCard != "Amex Gold" {
		t.Errorf("expected rule action as card, got %s", rec.Base.RecommendedCard)
	}
	if rec.Reason != "Based on your automation rules" {
		t.Errorf("unexpected reason: %q", rec.Reason)
	}
	if len(rec.ContextualInsights) != 0 || len(rec.MissedOpportunities) != 0 {
		t.Error("automation path must skip enrichment stages")
	}
	if rec.Profile == nil {
		t.Error("profile should still be derived on the automation path")
	}
}

func TestOrchestratorEngineErrorWrapped(t *testing.T) {
	eng := &stubEngine{err: errors.New("scoring blew up")}
	o := newTestOrchestrator(eng, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))

	_, err := o.Recommend(context.Background(), Request{
		UserID:      "USR-1",
		Transaction: models.Transaction{Merchant: "Target", Amount: 50},
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	var stageErr *apperrors.StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %T", err)
	}
	if stageErr.Stage != "engine" {
		t.Errorf("expected engine stage, got %s", stageErr.Stage)
	}
}

func TestOrchestratorFullPipeline(t *testing.T) {
	// Saturday lunch time.
	at := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	eng := &stubEngine{rec: &models.BaseRecommendation{
		RecommendedCard: "Amex Gold",
		ExpectedValue:   3.42,
	}}
	o := newTestOrchestrator(eng, at)

	history := []models.Transaction{
		{
			Merchant: "Whole Foods", Amount: 1600, Category: models.CategoryGroceries,
			Goal: models.GoalCashBack, CardUsed: "Amex Gold", RecommendedCard: "Amex Gold",
			Timestamp: at.AddDate(0, 0, -3),
		},
		{
			Merchant: "Shell", Amount: 40, Category: models.CategoryGas,
			Goal: models.GoalCashBack, CardUsed: "Chase Freedom", RecommendedCard: "Citi Custom Cash",
			ActualValue: 0.5, OptimalValue: 2.0,
			Timestamp: at.AddDate(0, 0, -2),
		},
	}

	rec, err := o.Recommend(context.Background(), Request{
		UserID: "USR-1",
		Transaction: models.Transaction{
			Merchant: "Starbucks", Amount: 6.75, Category: models.CategoryDining,
		},
		History: history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Source != models.SourceEngine {
		t.Errorf("expected engine source, got %s", rec.Source)
	}
	if rec.Base.RecommendedCard != "Amex Gold" {
		t.Errorf("expected engine card, got %s", rec.Base.RecommendedCard)
	}

	// Lunch + recurring merchant + overspend + weekend dining.
	want := []string{insightLunch, insightRecurring, insightOverspend, insightWeekendDining}
	if len(rec.ContextualInsights) != len(want) {
		t.Fatalf("expected %d insights, got %v", len(want), rec.ContextualInsights)
	}
	for i := range want {
		if rec.ContextualInsights[i] != want[i] {
			t.Errorf("insight %d: expected %q, got %q", i, want[i], rec.ContextualInsights[i])
		}
	}

	if len(rec.MissedOpportunities) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(rec.MissedOpportunities))
	}
	if rec.MissedOpportunities[0].Merchant != "Shell" {
		t.Errorf("expected Shell opportunity, got %s", rec.MissedOpportunities[0].Merchant)
	}

	if rec.Adjustments.Status != models.AdjustmentInsufficientData {
		t.Errorf("expected insufficient feedback, got %s", rec.Adjustments.Status)
	}

	if rec.Profile == nil || rec.Profile.PreferredGoal != models.GoalCashBack {
		t.Errorf("expected cash_back profile, got %+v", rec.Profile)
	}
	if !rec.GeneratedAt.Equal(at) {
		t.Errorf("expected GeneratedAt from injected clock, got %s", rec.GeneratedAt)
	}
}

func TestOrchestratorOpportunityTruncation(t *testing.T) {
	at := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	eng := &stubEngine{rec: &models.BaseRecommendation{RecommendedCard: "X"}}
	o := newTestOrchestrator(eng, at)

	var history []models.Transaction
	for i := 0; i < 8; i++ {
		history = append(history, models.Transaction{
			Merchant: "M", Amount: 10, CardUsed: "A", RecommendedCard: "B",
			Timestamp: at.AddDate(0, -2, 0),
		})
	}

	rec, err := o.Recommend(context.Background(), Request{
		UserID:      "USR-1",
		Transaction: models.Transaction{Merchant: "Target", Amount: 20},
		History:     history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.MissedOpportunities) != 3 {
		t.Errorf("expected opportunities capped at 3, got %d", len(rec.MissedOpportunities))
	}
}

func TestOrchestratorMonthlySpendWindow(t *testing.T) {
	// Spending from a prior month must not count toward the overspend check.
	at := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	eng := &stubEngine{rec: &models.BaseRecommendation{RecommendedCard: "X"}}
	o := newTestOrchestrator(eng, at)

	history := []models.Transaction{
		{Merchant: "Old", Amount: 5000, CardUsed: "A", RecommendedCard: "A", Timestamp: at.AddDate(0, -1, 0)},
	}

	rec, err := o.Recommend(context.Background(), Request{
		UserID:      "USR-1",
		Transaction: models.Transaction{Merchant: "Target", Amount: 20},
		History:     history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, insight := range rec.ContextualInsights {
		if insight == insightOverspend {
			t.Error("prior-month spending must not trigger the overspend insight")
		}
	}
}
