package documents

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

	date := func(s string) *safety.Date {
		d := safety.MustParseDate(s)
		return &d
	}

	tests := []struct {
		name    string
		cmd     Command
		want    safety.Status
		wantErr error
	}{
		{"review due today", Command{ReviewOn: date("2024-07-15")}, safety.StatusExpiringSoon, nil},
		{"review overdue", Command{ReviewOn: date("2024-07-14")}, safety.StatusExpired, nil},
		{"no review date", Command{}, safety.StatusValid, nil},
		{"archived override", Command{ReviewOn: date("2020-01-01"), Status: safety.StatusArchived}, safety.StatusArchived, nil},
		{"review before issue", Command{IssuedOn: date("2024-05-01"), ReviewOn: date("2024-04-30")}, "", ErrReviewBeforeIssue},
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
