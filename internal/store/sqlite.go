// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "wallet-advisor/internal/errors"
	"wallet-advisor/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Users table
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT,
		phone TEXT,
		default_goal TEXT DEFAULT 'balanced',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Credit cards table; rate maps stored as JSON keyed by category
	CREATE TABLE IF NOT EXISTS credit_cards (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		issuer TEXT,
		cash_back_rate TEXT,
		points_multiplier TEXT,
		annual_fee REAL DEFAULT 0,
		benefits TEXT,
		last_four_digits TEXT,
		credit_limit REAL,
		sign_up_bonus REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	-- Merchants table
	CREATE TABLE IF NOT EXISTS merchants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Transactions table
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		merchant TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		goal TEXT,
		card_used TEXT,
		recommended_card TEXT,
		cash_back_earned REAL DEFAULT 0,
		points_earned REAL DEFAULT 0,
		actual_value REAL DEFAULT 0,
		optimal_value REAL DEFAULT 0,
		used_recommended INTEGER DEFAULT 0,
		location TEXT,
		timestamp DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	-- Automation rules table
	CREATE TABLE IF NOT EXISTS automation_rules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		field TEXT NOT NULL,
		op TEXT NOT NULL,
		value TEXT NOT NULL,
		action TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	-- Behavior profiles table; one row per user, overwritten on relearn
	CREATE TABLE IF NOT EXISTS behavior_profiles (
		user_id TEXT PRIMARY KEY,
		preferred_goal TEXT NOT NULL,
		common_categories TEXT,
		avg_transaction REAL DEFAULT 0,
		total_spent REAL DEFAULT 0,
		transaction_count INTEGER DEFAULT 0,
		last_updated DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	-- Feedback table; append-only
	CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		card_used TEXT,
		rating INTEGER,
		timestamp DATETIME NOT NULL
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_cards_user ON credit_cards(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_rules_user ON automation_rules(user_id);
	CREATE INDEX IF NOT EXISTS idx_feedback_transaction ON feedback(transaction_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// User Methods
// ============================================================================

// CreateUser inserts a new user, generating an ID if absent.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("USR-%d", time.Now().UnixNano())
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, phone, default_goal, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.FullName, user.Phone, string(user.DefaultGoal), user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, "id = ?", userID)
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email = ?", email)
}

func (s *SQLiteStore) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var u models.User
	var goal string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, phone, default_goal, created_at
		FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &goal, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.DefaultGoal = models.ParseGoal(goal)
	return &u, nil
}

// ListUsers retrieves all users.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, full_name, phone, default_goal, created_at
		FROM users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var goal string
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &goal, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.DefaultGoal = models.ParseGoal(goal)
		users = append(users, u)
	}
	return users, rows.Err()
}

// ============================================================================
// Card Methods
// ============================================================================

// SaveCard inserts or replaces a credit card.
func (s *SQLiteStore) SaveCard(ctx context.Context, card *models.CreditCard) error {
	if card.ID == "" {
		card.ID = fmt.Sprintf("CARD-%d", time.Now().UnixNano())
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}

	cashBack, err := json.Marshal(card.CashBackRate)
	if err != nil {
		return fmt.Errorf("failed to marshal cash back rates: %w", err)
	}
	points, err := json.Marshal(card.PointsMultiplier)
	if err != nil {
		return fmt.Errorf("failed to marshal points multipliers: %w", err)
	}
	benefits, err := json.Marshal(card.Benefits)
	if err != nil {
		return fmt.Errorf("failed to marshal benefits: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO credit_cards
		(id, user_id, name, issuer, cash_back_rate, points_multiplier, annual_fee,
		 benefits, last_four_digits, credit_limit, sign_up_bonus, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, card.ID, card.UserID, card.Name, string(card.Issuer), string(cashBack), string(points),
		card.AnnualFee, string(benefits), card.LastFourDigits, card.CreditLimit, card.SignUpBonus, card.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// GetCards retrieves all cards for a user.
func (s *SQLiteStore) GetCards(ctx context.Context, userID string) ([]models.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, issuer, cash_back_rate, points_multiplier, annual_fee,
		       benefits, last_four_digits, credit_limit, sign_up_bonus, created_at
		FROM credit_cards WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CreditCard
	for rows.Next() {
		var c models.CreditCard
		var issuer, cashBack, points, benefits string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &issuer, &cashBack, &points,
			&c.AnnualFee, &benefits, &c.LastFourDigits, &c.CreditLimit, &c.SignUpBonus, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		c.Issuer = models.CardIssuer(issuer)
		if err := json.Unmarshal([]byte(cashBack), &c.CashBackRate); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cash back rates: %w", err)
		}
		if err := json.Unmarshal([]byte(points), &c.PointsMultiplier); err != nil {
			return nil, fmt.Errorf("failed to unmarshal points multipliers: %w", err)
		}
		if err := json.Unmarshal([]byte(benefits), &c.Benefits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal benefits: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ============================================================================
// Merchant Methods
// ============================================================================

// GetOrCreateMerchant fetches a merchant by name, creating it if missing.
func (s *SQLiteStore) GetOrCreateMerchant(ctx context.Context, name string, category models.Category) (*models.Merchant, error) {
	merchant, err := s.GetMerchant(ctx, name)
	if err == nil {
		return merchant, nil
	}
	if err != apperrors.ErrMerchantNotFound {
		return nil, err
	}

	m := &models.Merchant{
		ID:        fmt.Sprintf("MER-%d", time.Now().UnixNano()),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO merchants (id, name, category, created_at) VALUES (?, ?, ?, ?)
	`, m.ID, m.Name, string(m.Category), m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert merchant: %w", err)
	}
	return m, nil
}

// GetMerchant retrieves a merchant by name.
func (s *SQLiteStore) GetMerchant(ctx context.Context, name string) (*models.Merchant, error) {
	var m models.Merchant
	var category string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, created_at FROM merchants WHERE name = ?
	`, name).Scan(&m.ID, &m.Name, &category, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrMerchantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant: %w", err)
	}
	m.Category = models.ParseCategory(category)
	return &m, nil
}

// ============================================================================
// Transaction Methods
// ============================================================================

// SaveTransaction inserts a transaction, generating an ID if absent.
func (s *SQLiteStore) SaveTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = fmt.Sprintf("TXN-%d", time.Now().UnixNano())
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions
		(id, user_id, merchant, amount, category, goal, card_used, recommended_card,
		 cash_back_earned, points_earned, actual_value, optimal_value, used_recommended,
		 location, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.UserID, txn.Merchant, txn.Amount, string(txn.Category), string(txn.Goal),
		txn.CardUsed, txn.RecommendedCard, txn.CashBackEarned, txn.PointsEarned,
		txn.ActualValue, txn.OptimalValue, txn.UsedRecommended, txn.Location, txn.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves transactions matching the filter, ordered by
// timestamp ascending.
func (s *SQLiteStore) GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, merchant, amount, category, goal, card_used, recommended_card,
		       cash_back_earned, points_earned, actual_value, optimal_value, used_recommended,
		       location, timestamp
		FROM transactions WHERE 1=1`
	var args []interface{}
	var conditions []string

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Merchant != "" {
		conditions = append(conditions, "merchant = ?")
		args = append(args, filter.Merchant)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, string(filter.Category))
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.EndDate)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var category, goal string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Merchant, &t.Amount, &category, &goal,
			&t.CardUsed, &t.RecommendedCard, &t.CashBackEarned, &t.PointsEarned,
			&t.ActualValue, &t.OptimalValue, &t.UsedRecommended, &t.Location, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Category = models.ParseCategory(category)
		t.Goal = models.ParseGoal(goal)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// ============================================================================
// Automation Rule Methods
// ============================================================================

// SaveRule inserts an automation rule.
func (s *SQLiteStore) SaveRule(ctx context.Context, rule *models.AutomationRule) error {
	if rule.ID == "" {
		rule.ID = fmt.Sprintf("RULE-%d", time.Now().UnixNano())
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO automation_rules (id, user_id, field, op, value, action, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rule.ID, rule.UserID, string(rule.Condition.Field), string(rule.Condition.Op),
		rule.Condition.Value, rule.Action, rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}
	return nil
}

// GetRules retrieves a user's automation rules in creation order.
func (s *SQLiteStore) GetRules(ctx context.Context, userID string) ([]models.AutomationRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, field, op, value, action, created_at
		FROM automation_rules WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []models.AutomationRule
	for rows.Next() {
		var r models.AutomationRule
		var field, op string
		if err := rows.Scan(&r.ID, &r.UserID, &field, &op, &r.Condition.Value, &r.Action, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		r.Condition.Field = models.RuleField(field)
		r.Condition.Op = models.RuleOperator(op)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// ============================================================================
// Behavior Profile Methods
// ============================================================================

// SaveProfile inserts or replaces a user's behavior profile.
func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *models.BehaviorProfile) error {
	categories, err := json.Marshal(profile.CommonCategories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO behavior_profiles
		(user_id, preferred_goal, common_categories, avg_transaction, total_spent,
		 transaction_count, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, profile.UserID, string(profile.PreferredGoal), string(categories),
		profile.Spending.AvgTransaction, profile.Spending.TotalSpent,
		profile.Spending.TransactionCount, profile.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a user's behavior profile.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*models.BehaviorProfile, error) {
	var p models.BehaviorProfile
	var goal, categories string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_goal, common_categories, avg_transaction, total_spent,
		       transaction_count, last_updated
		FROM behavior_profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &goal, &categories, &p.Spending.AvgTransaction,
		&p.Spending.TotalSpent, &p.Spending.TransactionCount, &p.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrDataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	p.PreferredGoal = models.ParseGoal(goal)
	if err := json.Unmarshal([]byte(categories), &p.CommonCategories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return &p, nil
}

// ============================================================================
// Feedback Methods
// ============================================================================

// SaveFeedback appends a feedback record.
func (s *SQLiteStore) SaveFeedback(ctx context.Context, record *models.FeedbackRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (transaction_id, accepted, card_used, rating, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, record.TransactionID, record.Accepted, record.CardUsed, record.Rating, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// GetFeedback retrieves all feedback records in insertion order.
func (s *SQLiteStore) GetFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, accepted, card_used, rating, timestamp
		FROM feedback ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var r models.FeedbackRecord
		if err := rows.Scan(&r.TransactionID, &r.Accepted, &r.CardUsed, &r.Rating, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
