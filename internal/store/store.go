// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"wallet-advisor/internal/models"
)

// DataStore defines the interface for data persistence. The advisor
// pipeline only reads from it; writes come from the CLI and seeding.
type DataStore interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// Cards
	SaveCard(ctx context.Context, card *models.CreditCard) error
	GetCards(ctx context.Context, userID string) ([]models.CreditCard, error)

	// Merchants
	GetOrCreateMerchant(ctx context.Context, name string, category models.Category) (*models.Merchant, error)
	GetMerchant(ctx context.Context, name string) (*models.Merchant, error)

	// Transactions
	SaveTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)

	// Automation rules
	SaveRule(ctx context.Context, rule *models.AutomationRule) error
	GetRules(ctx context.Context, userID string) ([]models.AutomationRule, error)

	// Behavior profiles
	SaveProfile(ctx context.Context, profile *models.BehaviorProfile) error
	GetProfile(ctx context.Context, userID string) (*models.BehaviorProfile, error)

	// Feedback
	SaveFeedback(ctx context.Context, record *models.FeedbackRecord) error
	GetFeedback(ctx context.Context) ([]models.FeedbackRecord, error)

	// Lifecycle
	Close() error
}

// TransactionFilter represents filters for querying transactions.
type TransactionFilter struct {
	UserID    string
	Merchant  string
	Category  models.Category
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
