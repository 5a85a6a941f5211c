package store

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wallet-advisor/internal/models"
)

func TestImportTransactionsCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"id,user_id,merchant,amount,category,goal,card_used,recommended_card,actual_value,optimal_value,timestamp",
		"TXN-1,ignored,Starbucks,6.75,dining,cash_back,Amex Gold,Amex Gold,0.27,0.27,2024-03-01T12:00:00Z",
		"TXN-2,ignored,Shell,40,gas,cash_back,Chase Freedom,Citi Custom Cash,0.5,2.0,not-a-timestamp",
		"TXN-3,ignored,Mystery,10,weird_category,weird_goal,A,A,0,0,2024-03-02T12:00:00Z",
	}, "\n")

	count, err := ImportTransactionsCSV(ctx, s, "USR-1", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportTransactionsCSV: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imported, got %d", count)
	}

	txns, err := s.GetTransactions(ctx, TransactionFilter{UserID: "USR-1"})
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txns))
	}

	byID := make(map[string]models.Transaction)
	for _, txn := range txns {
		byID[txn.ID] = txn
	}

	if got := byID["TXN-1"]; !got.UsedRecommended || got.Category != models.CategoryDining {
		t.Errorf("TXN-1 mismatch: %+v", got)
	}
	if got := byID["TXN-2"]; got.UsedRecommended {
		t.Errorf("TXN-2 should be flagged as sub-optimal: %+v", got)
	}
	if got := byID["TXN-3"]; got.Category != models.CategoryOther || got.Goal != models.GoalBalanced {
		t.Errorf("TXN-3 should fall back to defaults: %+v", got)
	}
}

func TestExportTransactionsCSVRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	txn := &models.Transaction{
		ID:       "TXN-1",
		UserID:   "USR-1",
		Merchant: "Whole Foods",
		Amount:   125.75,
		Category: models.CategoryGroceries,
		Goal:     models.GoalCashBack,
		CardUsed: "Amex Gold",
	}
	if err := s.SaveTransaction(ctx, txn); err != nil {
		t.Fatalf("SaveTransaction: %v", err)
	}

	var buf bytes.Buffer
	count, err := ExportTransactionsCSV(ctx, s, "USR-1", &buf)
	if err != nil {
		t.Fatalf("ExportTransactionsCSV: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 exported, got %d", count)
	}

	out := buf.String()
	if !strings.Contains(out, "Whole Foods") || !strings.Contains(out, "groceries") {
		t.Errorf("export missing expected fields:\n%s", out)
	}

	// Re-import into a fresh store.
	s2 := newTestStore(t)
	imported, err := ImportTransactionsCSV(ctx, s2, "USR-2", strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 re-imported, got %d", imported)
	}

	got, err := s2.GetTransactions(ctx, TransactionFilter{UserID: "USR-2"})
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if got[0].Merchant != "Whole Foods" || got[0].Amount != 125.75 {
		t.Errorf("round trip mismatch: %+v", got[0])
	}
}
