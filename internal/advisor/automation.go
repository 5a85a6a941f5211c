package advisor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"wallet-advisor/internal/models"
)

// Matcher evaluates user-defined condition/action rules against incoming
// transactions. Rules are kept in per-user insertion-ordered lists and
// evaluated first-match-wins.
type Matcher struct {
	mu    sync.RWMutex
	rules map[string][]models.AutomationRule
}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		rules: make(map[string][]models.AutomationRule),
	}
}

// AddRule appends a rule to the user's rule list.
func (m *Matcher) AddRule(userID string, condition models.RuleCondition, action string) models.AutomationRule {
	rule := models.AutomationRule{
		ID:        fmt.Sprintf("RULE-%d", time.Now().UnixNano()),
		UserID:    userID,
		Condition: condition,
		Action:    action,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.rules[userID] = append(m.rules[userID], rule)
	m.mu.Unlock()

	return rule
}

// Load replaces the user's rule list, preserving the supplied order.
// Used to hydrate rules from the record store.
func (m *Matcher) Load(userID string, rules []models.AutomationRule) {
	m.mu.Lock()
	m.rules[userID] = append([]models.AutomationRule(nil), rules...)
	m.mu.Unlock()
}

// Rules returns a copy of the user's rule list in creation order.
func (m *Matcher) Rules(userID string) []models.AutomationRule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.AutomationRule(nil), m.rules[userID]...)
}

// Match walks the user's rules in creation order and returns the action
// of the first rule whose condition holds. The second return is false
// when no rule matches or the user has no rules.
func (m *Matcher) Match(userID string, txn models.Transaction) (string, bool) {
	m.mu.RLock()
	rules := m.rules[userID]
	m.mu.RUnlock()

	for _, rule := range rules {
		if EvaluateCondition(rule.Condition, txn) {
			return rule.Action, true
		}
	}
	return "", false
}

// EvaluateCondition interprets a typed rule condition against a
// transaction. Unknown fields and operators fail open to no-match,
// never to an error.
func EvaluateCondition(cond models.RuleCondition, txn models.Transaction) bool {
	switch cond.Field {
	case models.FieldMerchant:
		if cond.Op == models.OpEquals {
			return txn.Merchant == cond.Value
		}
	case models.FieldCategory:
		if cond.Op == models.OpEquals {
			return string(txn.Category) == cond.Value
		}
	case models.FieldAmount:
		threshold, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			return false
		}
		switch cond.Op {
		case models.OpGreaterThan:
			return txn.Amount > threshold
		case models.OpLessThan:
			return txn.Amount < threshold
		case models.OpEquals:
			return txn.Amount == threshold
		}
	}
	return false
}

// ParseCondition converts the legacy string condition form, e.g.
// "merchant == 'Starbucks'", into a typed condition. Only a quoted
// merchant equality literal is recognized; any other form yields a
// condition that never matches.
func ParseCondition(condition string) models.RuleCondition {
	if !strings.Contains(condition, "merchant") {
		return models.RuleCondition{}
	}

	parts := strings.Split(condition, "'")
	if len(parts) < 2 {
		return models.RuleCondition{}
	}

	return models.RuleCondition{
		Field: models.FieldMerchant,
		Op:    models.OpEquals,
		Value: parts[1],
	}
}
