package safety

import (
	"slices"
	"time"
)

// Classifier derives a record's Status from its relevant date.
// The zero value is not usable; build one with NewClassifier.
type Classifier struct {
	window    int
	missing   Status
	overrides []Status
}

// NewClassifier creates a Classifier from finalized configuration.
func NewClassifier(cfg Config) Classifier {
	return Classifier{
		window:    cfg.ExpiringSoonWindowDays,
		missing:   cfg.MissingDateStatus,
		overrides: slices.Clone(cfg.OverrideStatuses),
	}
}

// Window returns the expiring-soon window in days.
func (c Classifier) Window() int {
	return c.window
}

// IsOverride reports whether s is a manual override that suppresses date classification.
func (c Classifier) IsOverride(s Status) bool {
	return s != "" && slices.Contains(c.overrides, s)
}

// Classify returns override unchanged when it is a designated override value.
// Otherwise it compares the calendar dates of relevant and today:
// relevant before today is expired, relevant within today+window (inclusive)
// is expiring soon, anything later is valid. A nil relevant date yields the
// configured missing-date status.
func (c Classifier) Classify(today time.Time, relevant *time.Time, override Status) Status {
	if c.IsOverride(override) {
		return override
	}

	if relevant == nil {
		return c.missing
	}

	day := Midnight(today)
	due := Midnight(*relevant)
	threshold := day.AddDate(0, 0, c.window)

	switch {
	case due.Before(day):
		return StatusExpired
	case !due.After(threshold):
		return StatusExpiringSoon
	default:
		return StatusValid
	}
}

// ClassifyDate is Classify for an optional Date.
func (c Classifier) ClassifyDate(today time.Time, relevant *Date, override Status) Status {
	return c.Classify(today, relevant.TimePtr(), override)
}

// DeriveActionStatus returns the effective status of an action with the given
// deadline. Done actions stay done. Open actions past their deadline become
// overdue, and an overdue action whose deadline moved back into the future
// returns to pending.
func DeriveActionStatus(today time.Time, deadline *time.Time, current ActionStatus) ActionStatus {
	if current == ActionDone {
		return current
	}

	if deadline != nil && Midnight(*deadline).Before(Midnight(today)) {
		return ActionOverdue
	}

	if current == ActionOverdue || current == "" {
		return ActionPending
	}

	return current
}
