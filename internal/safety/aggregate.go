package safety

import "github.com/samber/lo"

// AverageWhere returns the mean of value over records satisfying keep.
// An empty subset averages to 0.
func AverageWhere[T any](records []T, value func(T) float64, keep func(T) bool) float64 {
	subset := lo.Filter(records, func(r T, _ int) bool { return keep(r) })
	if len(subset) == 0 {
		return 0
	}
	return lo.SumBy(subset, value) / float64(len(subset))
}

// Percentage returns subset as a percentage of reference. A non-positive
// reference yields 0.
func Percentage(subset, reference int) float64 {
	if reference <= 0 {
		return 0
	}
	return float64(subset) / float64(reference) * 100
}

// CountWhere counts records satisfying keep.
func CountWhere[T any](records []T, keep func(T) bool) int {
	return lo.CountBy(records, keep)
}

// StatusCounts is a histogram of classifier statuses.
type StatusCounts struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
	UnderReview  int `json:"under_review"`
	Archived     int `json:"archived"`
}

// CountByStatus tallies the status of each record.
func CountByStatus[T any](records []T, status func(T) Status) StatusCounts {
	counts := StatusCounts{Total: len(records)}
	for _, r := range records {
		switch status(r) {
		case StatusValid:
			counts.Valid++
		case StatusExpiringSoon:
			counts.ExpiringSoon++
		case StatusExpired:
			counts.Expired++
		case StatusUnderReview:
			counts.UnderReview++
		case StatusArchived:
			counts.Archived++
		}
	}
	return counts
}

// ActionCounts is a histogram of action statuses.
type ActionCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Overdue    int `json:"overdue"`
}

// CountByActionStatus tallies the action status of each record.
func CountByActionStatus[T any](records []T, status func(T) ActionStatus) ActionCounts {
	groups := lo.GroupBy(records, status)
	return ActionCounts{
		Total:      len(records),
		Pending:    len(groups[ActionPending]),
		InProgress: len(groups[ActionInProgress]),
		Done:       len(groups[ActionDone]),
		Overdue:    len(groups[ActionOverdue]),
	}
}
