// Package seasonal adds calendar-based restriction notices.
package seasonal

import (
	"fmt"
	"time"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/rules"
)

// Resolver answers which calendar restrictions apply to a planned practice.
type Resolver struct {
	rules *rules.Set
}

// New constructs a resolver over an immutable rule set.
func New(ruleSet *rules.Set) (*Resolver, error) {
	if ruleSet == nil {
		return nil, fmt.Errorf("rule set is required")
	}
	return &Resolver{rules: ruleSet}, nil
}

// Restrictions returns the restriction notices for a practice on a date.
// Without a date there is nothing to check and the list is empty. The
// location is accepted for future region-specific calendars.
func (r *Resolver) Restrictions(practice models.PracticeType, date *time.Time, location string) []string {
	if date == nil {
		return nil
	}

	var notices []string
	for _, rule := range r.rules.Seasonal {
		if rule.Practice != practice {
			continue
		}
		if rule.Months[date.Month()] {
			notices = append(notices, rule.Notice)
		}
	}
	return notices
}
