package advisor

import (
	"testing"

	"wallet-advisor/internal/models"
)

func TestLearnerInsufficientData(t *testing.T) {
	l := NewLearner(5)
	for i := 0; i < 4; i++ {
		l.Record("TXN-1", models.Feedback{Accepted: true})
	}

	report := l.DeriveAdjustments()
	if report.Status != models.AdjustmentInsufficientData {
		t.Errorf("expected insufficient_data below minimum, got %s", report.Status)
	}
	if report.TotalFeedback != 4 {
		t.Errorf("expected total 4, got %d", report.TotalFeedback)
	}
	if report.AcceptanceRate != 0 {
		t.Errorf("expected no rate below minimum, got %.2f", report.AcceptanceRate)
	}
}

func TestLearnerAcceptanceRate(t *testing.T) {
	l := NewLearner(5)
	for i := 0; i < 4; i++ {
		l.Record("TXN-1", models.Feedback{Accepted: true})
	}
	l.Record("TXN-2", models.Feedback{Accepted: false})

	report := l.DeriveAdjustments()
	if report.Status != models.AdjustmentOK {
		t.Fatalf("expected ok status at minimum, got %s", report.Status)
	}
	if report.AcceptanceRate != 0.8 {
		t.Errorf("expected rate 0.8, got %.2f", report.AcceptanceRate)
	}
	if report.IncreaseExplanationDetail || report.WeightUserPreference {
		t.Error("no adjustment flags expected at 0.8 acceptance")
	}
}

func TestLearnerLowAcceptanceSetsFlags(t *testing.T) {
	l := NewLearner(5)
	l.Record("TXN-1", models.Feedback{Accepted: true})
	l.Record("TXN-2", models.Feedback{Accepted: true})
	for i := 0; i < 3; i++ {
		l.Record("TXN-3", models.Feedback{Accepted: false})
	}

	report := l.DeriveAdjustments()
	if report.AcceptanceRate != 0.4 {
		t.Fatalf("expected rate 0.4, got %.2f", report.AcceptanceRate)
	}
	if !report.IncreaseExplanationDetail || !report.WeightUserPreference {
		t.Errorf("expected both flags below 0.5, got %+v", report)
	}
}

func TestLearnerBoundaryRate(t *testing.T) {
	// Exactly 0.5 does not trigger the flags.
	l := NewLearner(4)
	l.Record("TXN-1", models.Feedback{Accepted: true})
	l.Record("TXN-2", models.Feedback{Accepted: true})
	l.Record("TXN-3", models.Feedback{Accepted: false})
	l.Record("TXN-4", models.Feedback{Accepted: false})

	report := l.DeriveAdjustments()
	if report.AcceptanceRate != 0.5 {
		t.Fatalf("expected rate 0.5, got %.2f", report.AcceptanceRate)
	}
	if report.IncreaseExplanationDetail || report.WeightUserPreference {
		t.Error("flags must not trigger at exactly 0.5")
	}
}

func TestLearnerLoadReplacesRecords(t *testing.T) {
	l := NewLearner(2)
	l.Record("TXN-1", models.Feedback{Accepted: false})

	l.Load([]models.FeedbackRecord{
		{TransactionID: "TXN-2", Accepted: true},
		{TransactionID: "TXN-3", Accepted: true},
	})

	if l.Count() != 2 {
		t.Fatalf("expected 2 records after load, got %d", l.Count())
	}
	report := l.DeriveAdjustments()
	if report.AcceptanceRate != 1.0 {
		t.Errorf("expected rate 1.0 from loaded records, got %.2f", report.AcceptanceRate)
	}
}

func TestLearnerDefaultMinimum(t *testing.T) {
	l := NewLearner(0)
	if l.minSamples != 5 {
		t.Errorf("expected default minimum 5, got %d", l.minSamples)
	}
}
