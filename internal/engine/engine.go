// Package engine implements the base card-scoring engine: given a
// transaction and a user's card set it returns the single best-card
// estimate with a monetary value and an explanation. The advisor
// pipeline consumes it as an opaque collaborator.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wallet-advisor/internal/models"
)

// RewardsEngine scores cards by expected monetary value: cash back plus
// points converted at a flat dollar value per point.
type RewardsEngine struct {
	pointValue float64
	llm        LLMClient
}

// Option configures a RewardsEngine.
type Option func(*RewardsEngine)

// WithLLM enables LLM-written explanations.
func WithLLM(client LLMClient) Option {
	return func(e *RewardsEngine) {
		e.llm = client
	}
}

// NewRewardsEngine creates a RewardsEngine. pointValue is the dollar
// value assigned to one reward point.
func NewRewardsEngine(pointValue float64, opts ...Option) *RewardsEngine {
	e := &RewardsEngine{pointValue: pointValue}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// cardScore holds a scored candidate card.
type cardScore struct {
	card     *models.CreditCard
	cashBack float64
	points   float64
	value    float64
}

// Recommend returns the best-card estimate for a transaction. An empty
// card set yields a zero-value recommendation with an explanatory
// summary, not an error.
func (e *RewardsEngine) Recommend(ctx context.Context, txn models.Transaction, cards []models.CreditCard) (*models.BaseRecommendation, error) {
	if len(cards) == 0 {
		return &models.BaseRecommendation{
			Explanation:     "No cards on file; add a card to get recommendations.",
			ConfidenceScore: 0,
			Summary:         fmt.Sprintf("No recommendation available for $%.2f at %s", txn.Amount, txn.Merchant),
		}, nil
	}

	scores := make([]cardScore, 0, len(cards))
	for i := range cards {
		card := &cards[i]
		cashBack := txn.Amount * card.CashBackFor(txn.Category)
		points := txn.Amount * card.PointsFor(txn.Category)
		scores = append(scores, cardScore{
			card:     card,
			cashBack: cashBack,
			points:   points,
			value:    cashBack + points*e.pointValue,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].value > scores[j].value
	})

	best := scores[0]
	rec := &models.BaseRecommendation{
		RecommendedCard:    best.card.Name,
		ExpectedValue:      best.value,
		CashBackEarned:     best.cashBack,
		PointsEarned:       best.points,
		ApplicableBenefits: append([]string(nil), best.card.Benefits...),
		ConfidenceScore:    confidence(scores),
		Explanation:        explain(txn, best),
		Summary:            fmt.Sprintf("Use %s for $%.2f at %s", best.card.Name, txn.Amount, txn.Merchant),
	}

	for _, s := range scores[1:] {
		rec.Alternatives = append(rec.Alternatives, models.CardAlternative{
			Card:          s.card.Name,
			ExpectedValue: s.value,
		})
	}

	if e.llm != nil {
		if narrative, err := e.narrate(ctx, txn, rec); err == nil && narrative != "" {
			rec.Explanation = narrative
		}
	}

	return rec, nil
}

// confidence is a heuristic on the value gap between the best card and
// the runner-up, scaled into [50, 100].
func confidence(scores []cardScore) float64 {
	if len(scores) == 1 {
		return 90
	}
	best, second := scores[0].value, scores[1].value
	if best <= 0 {
		return 50
	}
	gap := (best - second) / best
	score := 50 + gap*50
	if score > 100 {
		score = 100
	}
	return score
}

func explain(txn models.Transaction, best cardScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s earns $%.2f on this $%.2f %s purchase", best.card.Name, best.value, txn.Amount, txn.Category)
	if best.cashBack > 0 {
		fmt.Fprintf(&b, " ($%.2f cash back", best.cashBack)
		if best.points > 0 {
			fmt.Fprintf(&b, ", %.0f points", best.points)
		}
		b.WriteString(")")
	} else if best.points > 0 {
		fmt.Fprintf(&b, " (%.0f points)", best.points)
	}
	b.WriteString(".")
	return b.String()
}

// narrate asks the LLM for a short user-facing explanation. Failures are
// swallowed by the caller; the template explanation remains the fallback.
func (e *RewardsEngine) narrate(ctx context.Context, txn models.Transaction, rec *models.BaseRecommendation) (string, error) {
	prompt := fmt.Sprintf(
		"In one friendly sentence, explain why %s is the best card for a $%.2f %s purchase at %s, earning about $%.2f in rewards.",
		rec.RecommendedCard, txn.Amount, txn.Category, txn.Merchant, rec.ExpectedValue,
	)
	return e.llm.Complete(ctx, prompt)
}
