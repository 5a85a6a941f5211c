package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"wallet-advisor/internal/models"
)

// transactionCSV is the CSV row shape for transaction import/export.
type transactionCSV struct {
	ID              string  `csv:"id"`
	UserID          string  `csv:"user_id"`
	Merchant        string  `csv:"merchant"`
	Amount          float64 `csv:"amount"`
	Category        string  `csv:"category"`
	Goal            string  `csv:"goal"`
	CardUsed        string  `csv:"card_used"`
	RecommendedCard string  `csv:"recommended_card"`
	ActualValue     float64 `csv:"actual_value"`
	OptimalValue    float64 `csv:"optimal_value"`
	Timestamp       string  `csv:"timestamp"`
}

// ImportTransactionsCSV reads transactions from CSV and saves them for
// the given user. Rows with malformed timestamps get the current time;
// unknown categories and goals fall back to their defaults.
func ImportTransactionsCSV(ctx context.Context, s DataStore, userID string, r io.Reader) (int, error) {
	var rows []transactionCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, fmt.Errorf("parsing transactions csv: %w", err)
	}

	imported := 0
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			ts = time.Now()
		}

		txn := &models.Transaction{
			ID:              row.ID,
			UserID:          userID,
			Merchant:        row.Merchant,
			Amount:          row.Amount,
			Category:        models.ParseCategory(row.Category),
			Goal:            models.ParseGoal(row.Goal),
			CardUsed:        row.CardUsed,
			RecommendedCard: row.RecommendedCard,
			ActualValue:     row.ActualValue,
			OptimalValue:    row.OptimalValue,
			UsedRecommended: row.CardUsed == row.RecommendedCard,
			Timestamp:       ts,
		}
		if err := s.SaveTransaction(ctx, txn); err != nil {
			return imported, fmt.Errorf("importing transaction at %s: %w", row.Merchant, err)
		}
		imported++
	}

	return imported, nil
}

// ExportTransactionsCSV writes a user's transactions as CSV.
func ExportTransactionsCSV(ctx context.Context, s DataStore, userID string, w io.Writer) (int, error) {
	txns, err := s.GetTransactions(ctx, TransactionFilter{UserID: userID})
	if err != nil {
		return 0, err
	}

	rows := make([]transactionCSV, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, transactionCSV{
			ID:              t.ID,
			UserID:          t.UserID,
			Merchant:        t.Merchant,
			Amount:          t.Amount,
			Category:        string(t.Category),
			Goal:            string(t.Goal),
			CardUsed:        t.CardUsed,
			RecommendedCard: t.RecommendedCard,
			ActualValue:     t.ActualValue,
			OptimalValue:    t.OptimalValue,
			Timestamp:       t.Timestamp.Format(time.RFC3339),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return 0, fmt.Errorf("writing transactions csv: %w", err)
	}
	return len(rows), nil
}
