// Package advisor implements the multi-stage recommendation pipeline:
// behavior profiling, automation matching, context enrichment,
// missed-opportunity detection, feedback learning, and strategic planning,
// sequenced by the Orchestrator.
package advisor

import (
	"sync"
	"time"

	"wallet-advisor/internal/models"
)

// Profiler derives a preference summary from a user's transaction history.
// Profiles are fully recomputed on every Learn call; the latest result
// overwrites any prior profile for that user.
type Profiler struct {
	mu       sync.RWMutex
	profiles map[string]*models.BehaviorProfile
}

// NewProfiler creates a new Profiler.
func NewProfiler() *Profiler {
	return &Profiler{
		profiles: make(map[string]*models.BehaviorProfile),
	}
}

// Learn analyzes a user's transaction history and stores the resulting
// profile. An empty history yields the defined default profile (goal
// "balanced", no categories, zero aggregates), not an error. Malformed
// records fall back to safe defaults instead of failing.
func (p *Profiler) Learn(userID string, transactions []models.Transaction) *models.BehaviorProfile {
	profile := &models.BehaviorProfile{
		UserID:        userID,
		PreferredGoal: models.GoalBalanced,
		LastUpdated:   time.Now(),
	}

	if len(transactions) == 0 {
		p.mu.Lock()
		p.profiles[userID] = profile
		p.mu.Unlock()
		return profile
	}

	categoryCounts := newFrequencyCounter()
	goalCounts := newFrequencyCounter()
	totalSpent := 0.0

	for _, txn := range transactions {
		category := txn.Category
		if category == "" {
			category = models.CategoryOther
		}
		goal := txn.Goal
		if goal == "" {
			goal = models.GoalBalanced
		}
		amount := txn.Amount
		if amount < 0 {
			amount = 0
		}

		categoryCounts.Add(string(category))
		goalCounts.Add(string(goal))
		totalSpent += amount
	}

	profile.PreferredGoal = models.OptimizationGoal(goalCounts.Top())
	for _, c := range categoryCounts.TopN(3) {
		profile.CommonCategories = append(profile.CommonCategories, models.Category(c))
	}
	profile.Spending = models.SpendingPattern{
		AvgTransaction:   totalSpent / float64(len(transactions)),
		TotalSpent:       totalSpent,
		TransactionCount: len(transactions),
	}

	p.mu.Lock()
	p.profiles[userID] = profile
	p.mu.Unlock()

	return profile
}

// Profile returns the stored profile for a user, or nil if none exists.
func (p *Profiler) Profile(userID string) *models.BehaviorProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profiles[userID]
}

// frequencyCounter tallies string occurrences with a deterministic
// first-seen-order tie-break.
type frequencyCounter struct {
	counts map[string]int
	order  []string
}

func newFrequencyCounter() *frequencyCounter {
	return &frequencyCounter{counts: make(map[string]int)}
}

func (f *frequencyCounter) Add(key string) {
	if _, seen := f.counts[key]; !seen {
		f.order = append(f.order, key)
	}
	f.counts[key]++
}

// Top returns the most frequent key. Ties go to the first-seen key.
func (f *frequencyCounter) Top() string {
	best := ""
	bestCount := 0
	for _, key := range f.order {
		if f.counts[key] > bestCount {
			best = key
			bestCount = f.counts[key]
		}
	}
	return best
}

// TopN returns the n most frequent keys in descending count order.
// Ties go to the first-seen key.
func (f *frequencyCounter) TopN(n int) []string {
	remaining := make(map[string]bool, len(f.order))
	for _, key := range f.order {
		remaining[key] = true
	}

	var result []string
	for len(result) < n && len(result) < len(f.order) {
		best := ""
		bestCount := 0
		for _, key := range f.order {
			if !remaining[key] {
				continue
			}
			if f.counts[key] > bestCount {
				best = key
				bestCount = f.counts[key]
			}
		}
		result = append(result, best)
		delete(remaining, best)
	}
	return result
}
