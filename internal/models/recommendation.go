package models

import "time"

// RecommendationSource identifies which path produced a recommendation.
type RecommendationSource string

const (
	SourceEngine     RecommendationSource = "engine"
	SourceAutomation RecommendationSource = "automation"
)

// BaseRecommendation is the output of the card-scoring engine for a
// single transaction.
type BaseRecommendation struct {
	RecommendedCard    string
	ExpectedValue      float64
	CashBackEarned     float64
	PointsEarned       float64
	ApplicableBenefits []string
	Explanation        string
	ConfidenceScore    float64
	Alternatives       []CardAlternative
	Summary            string
}

// CardAlternative is a non-winning card considered by the engine.
type CardAlternative struct {
	Card          string
	ExpectedValue float64
}

// EnrichedRecommendation is a base recommendation augmented with
// contextual insights, missed-opportunity data, and feedback-adjustment
// metadata by the advisor pipeline.
type EnrichedRecommendation struct {
	Source              RecommendationSource
	Base                BaseRecommendation
	Reason              string
	ContextualInsights  []string
	MissedOpportunities []Opportunity
	Adjustments         AdjustmentReport
	Profile             *BehaviorProfile
	GeneratedAt         time.Time
}

// ContextSnapshot carries the situational inputs for context enrichment.
// Time is threaded explicitly so enrichment stays deterministic.
type ContextSnapshot struct {
	Hour               int
	Weekend            bool
	Category           Category
	RecurringMerchant  bool
	MonthlySpent       float64
	UsualMonthlySpend  float64
}

// Opportunity is a retrospectively identified transaction where a
// sub-optimal card was used. Derived per call, never stored.
type Opportunity struct {
	Merchant    string
	Amount      float64
	MissedValue float64
	Suggestion  string
	Timestamp   time.Time
}

// Feedback is a user's reaction to a recommendation.
type Feedback struct {
	Accepted bool
	CardUsed string
	Rating   int
}

// FeedbackRecord is an accumulated feedback entry.
type FeedbackRecord struct {
	TransactionID string
	Accepted      bool
	CardUsed      string
	Rating        int
	Timestamp     time.Time
}

// AdjustmentStatus reports whether enough feedback exists to derive
// adjustment signals.
type AdjustmentStatus string

const (
	AdjustmentOK               AdjustmentStatus = "ok"
	AdjustmentInsufficientData AdjustmentStatus = "insufficient_data"
)

// AdjustmentReport carries acceptance-rate-driven adjustment signals.
// The flags are advisory; closing the feedback loop is up to the caller.
type AdjustmentReport struct {
	Status                    AdjustmentStatus
	AcceptanceRate            float64
	TotalFeedback             int
	IncreaseExplanationDetail bool
	WeightUserPreference      bool
}

// SpendingPattern aggregates a user's transaction amounts.
type SpendingPattern struct {
	AvgTransaction   float64
	TotalSpent       float64
	TransactionCount int
}

// BehaviorProfile summarizes a user's observed preferences. Fully
// recomputed on every profiling pass; the latest result is authoritative.
type BehaviorProfile struct {
	UserID           string
	PreferredGoal    OptimizationGoal
	CommonCategories []Category
	Spending         SpendingPattern
	LastUpdated      time.Time
}

// RuleField names a transaction field a rule condition can test.
type RuleField string

const (
	FieldMerchant RuleField = "merchant"
	FieldCategory RuleField = "category"
	FieldAmount   RuleField = "amount"
)

// RuleOperator is a comparison operator in a rule condition.
type RuleOperator string

const (
	OpEquals      RuleOperator = "=="
	OpGreaterThan RuleOperator = ">"
	OpLessThan    RuleOperator = "<"
)

// RuleCondition is a typed condition over a single transaction field.
type RuleCondition struct {
	Field RuleField
	Op    RuleOperator
	Value string
}

// AutomationRule is a user-authored condition/action pair that bypasses
// the computed recommendation when it matches.
type AutomationRule struct {
	ID        string
	UserID    string
	Condition RuleCondition
	Action    string
	CreatedAt time.Time
}

// PlannedExpense is a forthcoming purchase to plan card usage for.
type PlannedExpense struct {
	Merchant string
	Amount   float64
	Category Category
}

// PlanEntry is a single expense's slot in a strategic plan.
type PlanEntry struct {
	Expense         string
	Amount          float64
	RecommendedCard string
	ExpectedValue   float64
}

// StrategicPlan is a multi-expense card usage plan with a running value
// total and free-text tips. Recomputed fully per call, not persisted.
type StrategicPlan struct {
	TotalExpectedValue float64
	Entries            []PlanEntry
	Tips               []string
}
