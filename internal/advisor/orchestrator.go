package advisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"wallet-advisor/internal/config"
	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
)

// Engine is the external card-scoring collaborator. It is treated as a
// black box returning best-effort monetary estimates.
type Engine interface {
	Recommend(ctx context.Context, txn models.Transaction, cards []models.CreditCard) (*models.BaseRecommendation, error)
}

// Request carries one transaction event through the pipeline.
type Request struct {
	UserID      string
	Transaction models.Transaction
	Cards       []models.CreditCard
	History     []models.Transaction
}

// Orchestrator sequences the pipeline components against one transaction
// event. It owns the lifetime of each per-call derived object; the
// longer-lived state (profiles, rules, feedback) is owned by the
// components it holds, with lifecycle tied to the Orchestrator's
// construction rather than process lifetime.
type Orchestrator struct {
	engine   Engine
	profiler *Profiler
	matcher  *Matcher
	enhancer *Enhancer
	detector *Detector
	learner  *Learner
	planner  *Planner

	maxOpportunities  int
	usualMonthlySpend float64
	recurring         map[string]bool

	logger zerolog.Logger
	now    func() time.Time
}

// New creates an Orchestrator with freshly constructed component state.
func New(engine Engine, cfg config.AdvisorConfig, logger zerolog.Logger) *Orchestrator {
	recurring := make(map[string]bool, len(cfg.RecurringMerchants))
	for _, m := range cfg.RecurringMerchants {
		recurring[m] = true
	}

	return &Orchestrator{
		engine:            engine,
		profiler:          NewProfiler(),
		matcher:           NewMatcher(),
		enhancer:          NewEnhancer(),
		detector:          NewDetector(cfg.HistoryWindow),
		learner:           NewLearner(cfg.MinFeedbackSamples),
		planner:           NewPlanner(),
		maxOpportunities:  cfg.MaxOpportunities,
		usualMonthlySpend: cfg.UsualMonthlySpend,
		recurring:         recurring,
		logger:            logger,
		now:               time.Now,
	}
}

// Profiler returns the behavior profiler component.
func (o *Orchestrator) Profiler() *Profiler { return o.profiler }

// Matcher returns the automation matcher component.
func (o *Orchestrator) Matcher() *Matcher { return o.matcher }

// Learner returns the feedback learner component.
func (o *Orchestrator) Learner() *Learner { return o.learner }

// Planner returns the strategic planner component.
func (o *Orchestrator) Planner() *Planner { return o.planner }

// Detector returns the opportunity detector component.
func (o *Orchestrator) Detector() *Detector { return o.detector }

// Recommend runs the full pipeline for one transaction event:
// profile, automation check, base recommendation, context enrichment,
// opportunity annotation, feedback annotation. A matching automation rule
// short-circuits the remaining stages entirely. No stage is retried; a
// stage failure aborts the whole construction and propagates to the
// caller as a StageError.
func (o *Orchestrator) Recommend(ctx context.Context, req Request) (*models.EnrichedRecommendation, error) {
	logger := o.logger.With().Str("user_id", req.UserID).Str("merchant", req.Transaction.Merchant).Logger()

	// 1. Profile from the full supplied history.
	profile := o.profiler.Learn(req.UserID, req.History)

	// 2. Automation check. A match is a designed early return, not a
	// failure path.
	if action, ok := o.matcher.Match(req.UserID, req.Transaction); ok {
		logger.Info().Str("action", action).Msg("Automation rule matched, skipping pipeline")
		return &models.EnrichedRecommendation{
			Source: models.SourceAutomation,
			Base: models.BaseRecommendation{
				RecommendedCard: action,
			},
			Reason:      "Based on your automation rules",
			Profile:     profile,
			GeneratedAt: o.now(),
		}, nil
	}

	// 3. Base recommendation from the external engine.
	base, err := o.engine.Recommend(ctx, req.Transaction, req.Cards)
	if err != nil {
		return nil, apperrors.NewStageError("engine", req.UserID, err)
	}

	enriched := models.EnrichedRecommendation{
		Source:      models.SourceEngine,
		Base:        *base,
		Profile:     profile,
		GeneratedAt: o.now(),
	}

	// 4. Context enrichment.
	snapshot := o.buildSnapshot(req)
	enriched = o.enhancer.Enhance(enriched, snapshot)

	// 5. Opportunity annotation: first N in history order, not top-N by value.
	opportunities := o.detector.Detect(req.UserID, req.History)
	if len(opportunities) > o.maxOpportunities {
		opportunities = opportunities[:o.maxOpportunities]
	}
	enriched.MissedOpportunities = opportunities

	// 6. Feedback annotation.
	enriched.Adjustments = o.learner.DeriveAdjustments()

	logger.Info().
		Str("card", enriched.Base.RecommendedCard).
		Float64("expected_value", enriched.Base.ExpectedValue).
		Int("insights", len(enriched.ContextualInsights)).
		Int("opportunities", len(enriched.MissedOpportunities)).
		Msg("Recommendation enriched")

	return &enriched, nil
}

// buildSnapshot assembles the context inputs for enrichment. Time comes
// from the orchestrator's clock so the pipeline stays deterministic in
// tests. Month-to-date spend sums history entries in the current month.
func (o *Orchestrator) buildSnapshot(req Request) models.ContextSnapshot {
	now := o.now()
	weekday := now.Weekday()

	monthlySpent := 0.0
	for _, txn := range req.History {
		if txn.Timestamp.Year() == now.Year() && txn.Timestamp.Month() == now.Month() {
			monthlySpent += txn.Amount
		}
	}

	return models.ContextSnapshot{
		Hour:              now.Hour(),
		Weekend:           weekday == time.Saturday || weekday == time.Sunday,
		Category:          req.Transaction.Category,
		RecurringMerchant: o.recurring[req.Transaction.Merchant],
		MonthlySpent:      monthlySpent,
		UsualMonthlySpend: o.usualMonthlySpend,
	}
}
