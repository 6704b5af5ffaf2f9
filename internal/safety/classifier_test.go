package safety_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/safety"
)

func defaultClassifier(t *testing.T) safety.Classifier {
	t.Helper()
	var cfg safety.Config
	require.NoError(t, cfg.Finalize(""))
	return safety.NewClassifier(cfg)
}

func date(s string) time.Time {
	return safety.MustParseDate(s).Time
}

func ptr[T any](v T) *T { return &v }

func TestClassifyBoundaries(t *testing.T) {
	c := defaultClassifier(t)
	today := date("2024-07-15")

	tests := []struct {
		name     string
		relevant string
		want     safety.Status
	}{
		{"yesterday is expired", "2024-07-14", safety.StatusExpired},
		{"today is not expired", "2024-07-15", safety.StatusExpiringSoon},
		{"tomorrow is expiring", "2024-07-16", safety.StatusExpiringSoon},
		{"window edge inclusive", "2024-08-14", safety.StatusExpiringSoon},
		{"day after window is valid", "2024-08-15", safety.StatusValid},
		{"far future is valid", "2030-01-01", safety.StatusValid},
		{"far past is expired", "1999-12-31", safety.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(today, ptr(date(tt.relevant)), "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	c := defaultClassifier(t)
	today := time.Date(2024, 7, 15, 23, 59, 0, 0, time.UTC)
	relevant := time.Date(2024, 7, 15, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, safety.StatusExpiringSoon, c.Classify(today, &relevant, ""))

	late := time.Date(2024, 8, 14, 23, 0, 0, 0, time.UTC)
	early := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, safety.StatusExpiringSoon, c.Classify(early, &late, ""))
}

func TestClassifyMonotonic(t *testing.T) {
	c := defaultClassifier(t)
	today := date("2024-07-15")

	rank := map[safety.Status]int{
		safety.StatusExpired:      0,
		safety.StatusExpiringSoon: 1,
		safety.StatusValid:        2,
	}

	prev := -1
	for offset := -400; offset <= 400; offset++ {
		relevant := today.AddDate(0, 0, offset)
		r := rank[c.Classify(today, &relevant, "")]
		require.GreaterOrEqual(t, r, prev, "offset %d went backwards", offset)
		prev = r
	}
}

func TestClassifyOverride(t *testing.T) {
	c := defaultClassifier(t)
	today := date("2024-07-15")

	for _, offset := range []int{-100, 0, 10, 100} {
		relevant := today.AddDate(0, 0, offset)
		assert.Equal(t, safety.StatusUnderReview, c.Classify(today, &relevant, safety.StatusUnderReview))
		assert.Equal(t, safety.StatusArchived, c.Classify(today, &relevant, safety.StatusArchived))
	}

	t.Run("non-override status is recomputed", func(t *testing.T) {
		relevant := date("2024-01-01")
		assert.Equal(t, safety.StatusExpired, c.Classify(today, &relevant, safety.StatusValid))
	})

	t.Run("override applies without date", func(t *testing.T) {
		assert.Equal(t, safety.StatusUnderReview, c.Classify(today, nil, safety.StatusUnderReview))
	})
}

func TestClassifyMissingDate(t *testing.T) {
	today := date("2024-07-15")

	assert.Equal(t, safety.StatusValid, defaultClassifier(t).Classify(today, nil, ""))

	cfg := safety.Config{MissingDateStatus: safety.StatusExpired}
	require.NoError(t, cfg.Finalize(""))
	assert.Equal(t, safety.StatusExpired, safety.NewClassifier(cfg).Classify(today, nil, ""))
}

func TestClassifyCustomWindow(t *testing.T) {
	cfg := safety.Config{ExpiringSoonWindowDays: 60}
	require.NoError(t, cfg.Finalize(""))
	c := safety.NewClassifier(cfg)

	today := date("2024-07-15")
	assert.Equal(t, 60, c.Window())
	assert.Equal(t, safety.StatusExpiringSoon, c.Classify(today, ptr(date("2024-09-13")), ""))
	assert.Equal(t, safety.StatusValid, c.Classify(today, ptr(date("2024-09-14")), ""))
}

func TestClassifyDate(t *testing.T) {
	c := defaultClassifier(t)
	today := date("2024-07-15")

	assert.Equal(t, safety.StatusValid, c.ClassifyDate(today, nil, ""))
	d := safety.MustParseDate("2024-07-01")
	assert.Equal(t, safety.StatusExpired, c.ClassifyDate(today, &d, ""))
}

func TestDeriveActionStatus(t *testing.T) {
	today := date("2024-07-15")
	past := date("2024-07-14")
	future := date("2024-07-20")

	tests := []struct {
		name     string
		deadline *time.Time
		current  safety.ActionStatus
		want     safety.ActionStatus
	}{
		{"done stays done past deadline", &past, safety.ActionDone, safety.ActionDone},
		{"pending past deadline is overdue", &past, safety.ActionPending, safety.ActionOverdue},
		{"in progress past deadline is overdue", &past, safety.ActionInProgress, safety.ActionOverdue},
		{"deadline today is not overdue", &today, safety.ActionPending, safety.ActionPending},
		{"overdue with future deadline reopens", &future, safety.ActionOverdue, safety.ActionPending},
		{"in progress keeps state", &future, safety.ActionInProgress, safety.ActionInProgress},
		{"no deadline keeps state", nil, safety.ActionInProgress, safety.ActionInProgress},
		{"empty defaults to pending", nil, "", safety.ActionPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safety.DeriveActionStatus(today, tt.deadline, tt.current))
		})
	}
}
