package advisor

import (
	"fmt"
	"strings"
	"testing"

	"wallet-advisor/internal/models"
)

func TestDetectSkipsMatchingCard(t *testing.T) {
	d := NewDetector(10)
	txns := []models.Transaction{
		{Merchant: "Starbucks", CardUsed: "Amex Gold", RecommendedCard: "Amex Gold"},
		{Merchant: "Shell", CardUsed: "Chase Freedom", RecommendedCard: "Citi Custom Cash", ActualValue: 0.50, OptimalValue: 2.00},
	}

	opportunities := d.Detect("USR-1", txns)
	if len(opportunities) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opportunities))
	}

	opp := opportunities[0]
	if opp.Merchant != "Shell" {
		t.Errorf("expected Shell, got %s", opp.Merchant)
	}
	if opp.MissedValue != 1.50 {
		t.Errorf("expected missed value 1.50, got %.2f", opp.MissedValue)
	}
	want := "You could have earned $1.50 more by using Citi Custom Cash"
	if opp.Suggestion != want {
		t.Errorf("expected suggestion %q, got %q", want, opp.Suggestion)
	}
}

func TestDetectTrailingWindow(t *testing.T) {
	d := NewDetector(3)

	var txns []models.Transaction
	for i := 0; i < 6; i++ {
		txns = append(txns, models.Transaction{
			Merchant:        fmt.Sprintf("M%d", i),
			CardUsed:        "A",
			RecommendedCard: "B",
		})
	}

	opportunities := d.Detect("USR-1", txns)
	if len(opportunities) != 3 {
		t.Fatalf("expected window of 3, got %d", len(opportunities))
	}
	// The last three records, in input order.
	for i, wantMerchant := range []string{"M3", "M4", "M5"} {
		if opportunities[i].Merchant != wantMerchant {
			t.Errorf("position %d: expected %s, got %s", i, wantMerchant, opportunities[i].Merchant)
		}
	}
}

func TestDetectNegativeMissedValueKept(t *testing.T) {
	d := NewDetector(10)
	txns := []models.Transaction{
		{Merchant: "Target", CardUsed: "A", RecommendedCard: "B", ActualValue: 5.00, OptimalValue: 3.00},
	}

	opportunities := d.Detect("USR-1", txns)
	if len(opportunities) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opportunities))
	}
	if opportunities[0].MissedValue != -2.00 {
		t.Errorf("negative missed value must be preserved, got %.2f", opportunities[0].MissedValue)
	}
	if !strings.Contains(opportunities[0].Suggestion, "$-2.00") {
		t.Errorf("suggestion should carry the raw delta, got %q", opportunities[0].Suggestion)
	}
}

func TestDetectEmptyHistory(t *testing.T) {
	d := NewDetector(10)
	if got := d.Detect("USR-1", nil); len(got) != 0 {
		t.Errorf("expected no opportunities for empty history, got %d", len(got))
	}
}

func TestDetectDefaultWindow(t *testing.T) {
	d := NewDetector(0)
	if d.window != 10 {
		t.Errorf("expected default window 10, got %d", d.window)
	}
}
