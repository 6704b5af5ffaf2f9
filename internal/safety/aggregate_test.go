package safety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/ssma/internal/safety"
)

func daysOff(p person) float64 { return float64(p.daysOff) }
func hasDaysOff(p person) bool { return p.daysOff > 0 }

func TestAverageWhere(t *testing.T) {
	assert.Equal(t, 4.0, safety.AverageWhere(people(), daysOff, hasDaysOff))

	t.Run("empty subset averages to zero", func(t *testing.T) {
		none := []person{{"A", "X", 0}, {"B", "Y", 0}}
		assert.Equal(t, 0.0, safety.AverageWhere(none, daysOff, hasDaysOff))
		assert.Equal(t, 0.0, safety.AverageWhere([]person{}, daysOff, hasDaysOff))
	})
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, safety.Percentage(3, 0))
	assert.Equal(t, 0.0, safety.Percentage(3, -1))
	assert.Equal(t, 50.0, safety.Percentage(2, 4))
	assert.Equal(t, 150.0, safety.Percentage(3, 2))
}

func TestCountWhere(t *testing.T) {
	assert.Equal(t, 2, safety.CountWhere(people(), hasDaysOff))
}

func TestCountByStatus(t *testing.T) {
	statuses := []safety.Status{
		safety.StatusValid,
		safety.StatusValid,
		safety.StatusExpired,
		safety.StatusExpiringSoon,
		safety.StatusUnderReview,
	}

	got := safety.CountByStatus(statuses, func(s safety.Status) safety.Status { return s })
	assert.Equal(t, safety.StatusCounts{
		Total:        5,
		Valid:        2,
		ExpiringSoon: 1,
		Expired:      1,
		UnderReview:  1,
	}, got)
}

func TestCountByActionStatus(t *testing.T) {
	statuses := []safety.ActionStatus{
		safety.ActionPending,
		safety.ActionOverdue,
		safety.ActionOverdue,
		safety.ActionDone,
	}

	got := safety.CountByActionStatus(statuses, func(s safety.ActionStatus) safety.ActionStatus { return s })
	assert.Equal(t, safety.ActionCounts{Total: 4, Pending: 1, Overdue: 2, Done: 1}, got)
}
