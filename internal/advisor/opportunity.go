package advisor

import (
	"fmt"

	"wallet-advisor/internal/models"
)

// Detector scans recent transaction history for cases where the card
// actually used underperformed the recommended one.
type Detector struct {
	window int
}

// NewDetector creates a Detector scanning the trailing window records
// of the supplied history.
func NewDetector(window int) *Detector {
	if window <= 0 {
		window = 10
	}
	return &Detector{window: window}
}

// Detect emits one Opportunity per transaction in the trailing window
// where the card used differs from the recommended card. Missed value is
// optimal minus actual and is deliberately unclamped; a negative value
// means the recorded figures were inconsistent upstream, and filtering is
// the caller's call. Output order matches input order; history order is
// taken as supplied, not re-sorted.
func (d *Detector) Detect(userID string, recent []models.Transaction) []models.Opportunity {
	start := 0
	if len(recent) > d.window {
		start = len(recent) - d.window
	}

	var opportunities []models.Opportunity
	for _, txn := range recent[start:] {
		if txn.CardUsed == txn.RecommendedCard {
			continue
		}
		missed := txn.OptimalValue - txn.ActualValue
		opportunities = append(opportunities, models.Opportunity{
			Merchant:    txn.Merchant,
			Amount:      txn.Amount,
			MissedValue: missed,
			Suggestion:  fmt.Sprintf("You could have earned $%.2f more by using %s", missed, txn.RecommendedCard),
			Timestamp:   txn.Timestamp,
		})
	}
	return opportunities
}
