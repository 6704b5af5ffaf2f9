package ppe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/safety"
)

func TestStamp(t *testing.T) {
	var cfg safety.Config
	require.NoError(t, cfg.Finalize(""))
	cls := safety.NewClassifier(cfg)
	today := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	d := func(s string) *safety.Date {
		v := safety.MustParseDate(s)
		return &v
	}
	delivered := safety.MustParseDate("2024-01-10")

	tests := []struct {
		name    string
		cmd     Command
		want    safety.Status
		wantErr error
	}{
		{"replace due tomorrow", Command{DeliveredOn: delivered, ReplaceBy: d("2024-07-16")}, safety.StatusExpiringSoon, nil},
		{"replace overdue", Command{DeliveredOn: delivered, ReplaceBy: d("2024-07-01")}, safety.StatusExpired, nil},
		{"replace far away", Command{DeliveredOn: delivered, ReplaceBy: d("2025-01-10")}, safety.StatusValid, nil},
		{"returned", Command{DeliveredOn: delivered, ReplaceBy: d("2024-07-01"), ReturnedOn: d("2024-06-30")}, safety.StatusArchived, nil},
		{"returned before delivery", Command{DeliveredOn: delivered, ReturnedOn: d("2024-01-01")}, "", ErrDateBeforeIssue},
		{"replace before delivery", Command{DeliveredOn: delivered, ReplaceBy: d("2023-12-31")}, "", ErrDateBeforeIssue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stamp(cls, today, tt.cmd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchFieldsNilCANumber(t *testing.T) {
	records := []Issuance{
		{EmployeeName: "Carla", Equipment: "Luva nitrílica"},
		{EmployeeName: "Diego", Equipment: "Capacete", CANumber: func() *string { s := "CA-31469"; return &s }()},
	}

	got := safety.Filter(records, "ca-314", searchFields.Select([]string{"ca_number", "equipment"}))
	require.Len(t, got, 1)
	assert.Equal(t, "Diego", got[0].EmployeeName)
}
