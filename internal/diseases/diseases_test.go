package diseases

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []Disease{
		{Status: StatusOnLeave, CATIssued: true},
		{Status: StatusOnLeave},
		{Status: StatusUnderTreatment, CATIssued: true},
		{Status: StatusRecovered, CATIssued: true},
	}

	got := summarize(records)

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 2, got.ByStatus[StatusOnLeave])
	assert.Equal(t, 1, got.WithoutCAT)
	assert.InDelta(t, 50.0, got.OnLeavePercent, 1e-9)
}

func TestSummarizeEmptyHasZeroPercent(t *testing.T) {
	got := summarize(nil)
	assert.Equal(t, 0, got.Total)
	assert.Zero(t, got.OnLeavePercent)
}

func TestFiltersFromQuery(t *testing.T) {
	f := FiltersFromQuery(url.Values{"status": {"on_leave"}, "icd_code": {"M65"}})
	require.NotNil(t, f.Status)
	assert.Equal(t, StatusOnLeave, *f.Status)
	require.NotNil(t, f.ICDCode)

	f = FiltersFromQuery(url.Values{"status": {"valid"}})
	assert.Nil(t, f.Status)
}

func TestStatusOrDefault(t *testing.T) {
	assert.Equal(t, StatusUnderTreatment, statusOrDefault(""))
	assert.Equal(t, StatusRecovered, statusOrDefault(StatusRecovered))
}
