package advisor

import (
	"sync"
	"time"

	"wallet-advisor/internal/models"
)

// Learner accumulates recommendation outcome feedback and derives
// acceptance-rate-driven adjustment signals. Records are only ever
// appended, never removed.
type Learner struct {
	minSamples int

	mu      sync.RWMutex
	records []models.FeedbackRecord
}

// NewLearner creates a Learner that requires minSamples feedback entries
// before computing an acceptance rate.
func NewLearner(minSamples int) *Learner {
	if minSamples <= 0 {
		minSamples = 5
	}
	return &Learner{minSamples: minSamples}
}

// Record appends a feedback entry.
func (l *Learner) Record(transactionID string, feedback models.Feedback) models.FeedbackRecord {
	record := models.FeedbackRecord{
		TransactionID: transactionID,
		Accepted:      feedback.Accepted,
		CardUsed:      feedback.CardUsed,
		Rating:        feedback.Rating,
		Timestamp:     time.Now(),
	}

	l.mu.Lock()
	l.records = append(l.records, record)
	l.mu.Unlock()

	return record
}

// Load replaces the accumulated records, preserving the supplied order.
// Used to hydrate feedback from the record store.
func (l *Learner) Load(records []models.FeedbackRecord) {
	l.mu.Lock()
	l.records = append([]models.FeedbackRecord(nil), records...)
	l.mu.Unlock()
}

// Count returns the number of accumulated feedback records.
func (l *Learner) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// DeriveAdjustments computes the acceptance rate over all accumulated
// feedback. Below the minimum sample size it returns the
// insufficient-data sentinel rather than a misleading rate. Below a 0.5
// acceptance rate it sets the two advisory adjustment flags; this
// component does not itself alter scoring weights.
func (l *Learner) DeriveAdjustments() models.AdjustmentReport {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.records) < l.minSamples {
		return models.AdjustmentReport{
			Status:        models.AdjustmentInsufficientData,
			TotalFeedback: len(l.records),
		}
	}

	accepted := 0
	for _, r := range l.records {
		if r.Accepted {
			accepted++
		}
	}
	rate := float64(accepted) / float64(len(l.records))

	report := models.AdjustmentReport{
		Status:         models.AdjustmentOK,
		AcceptanceRate: rate,
		TotalFeedback:  len(l.records),
	}
	if rate < 0.5 {
		report.IncreaseExplanationDetail = true
		report.WeightUserPreference = true
	}
	return report
}
