// Package safety holds the record-status and safety-statistics rules shared
// by every SSMA record kind: date-driven status classification, injury
// frequency and severity rates, and in-memory search and aggregation over
// record collections.
//
// Everything in this package is pure. The current date is always a parameter.
package safety

import (
	"encoding/json"
	"errors"
	"slices"
)

var (
	ErrInvalidStatus       = errors.New("status must be valid, expiring_soon, expired, under_review, or archived")
	ErrInvalidActionStatus = errors.New("action status must be pending, in_progress, done, or overdue")
)

// Status is the lifecycle state of a time-bounded record.
type Status string

const (
	StatusValid        Status = "valid"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
	StatusUnderReview  Status = "under_review"
	StatusArchived     Status = "archived"
)

var statuses = []Status{
	StatusValid,
	StatusExpiringSoon,
	StatusExpired,
	StatusUnderReview,
	StatusArchived,
}

// Statuses returns every known status in display order.
func Statuses() []Status {
	return statuses
}

// ParseStatus validates s as a known status.
func ParseStatus(s string) (Status, error) {
	return ParseEnum(s, statuses, ErrInvalidStatus)
}

// UnmarshalJSON rejects unknown status values.
func (s *Status) UnmarshalJSON(data []byte) error {
	return UnmarshalEnum(data, s, statuses, ErrInvalidStatus)
}

// ActionStatus is the state of a follow-up or preventive action.
type ActionStatus string

const (
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "in_progress"
	ActionDone       ActionStatus = "done"
	ActionOverdue    ActionStatus = "overdue"
)

var actionStatuses = []ActionStatus{
	ActionPending,
	ActionInProgress,
	ActionDone,
	ActionOverdue,
}

// ActionStatuses returns every known action status.
func ActionStatuses() []ActionStatus {
	return actionStatuses
}

// ParseActionStatus validates s as a known action status.
func ParseActionStatus(s string) (ActionStatus, error) {
	return ParseEnum(s, actionStatuses, ErrInvalidActionStatus)
}

// UnmarshalJSON rejects unknown action status values.
func (s *ActionStatus) UnmarshalJSON(data []byte) error {
	return UnmarshalEnum(data, s, actionStatuses, ErrInvalidActionStatus)
}

// ParseEnum returns s as E when it is one of values, otherwise invalid.
func ParseEnum[E ~string](s string, values []E, invalid error) (E, error) {
	v := E(s)
	if !slices.Contains(values, v) {
		return "", invalid
	}
	return v, nil
}

// UnmarshalEnum decodes a JSON string into dst, rejecting values outside values.
// An empty string leaves dst unset.
func UnmarshalEnum[E ~string](data []byte, dst *E, values []E, invalid error) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*dst = ""
		return nil
	}
	v, err := ParseEnum(raw, values, invalid)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
