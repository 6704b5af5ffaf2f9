package settings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/ssma/pkg/settings"
)

type status string

func TestKey(t *testing.T) {
	assert.Equal(t, "SSMA_DB_HOST", settings.Key("SSMA_DB", "HOST"))
	assert.Equal(t, "SSMA_API_CORS", settings.Key(settings.Key("SSMA", "API"), "CORS"))
	assert.Empty(t, settings.Key("", "HOST"))
}

func TestDefaultAndOverlay(t *testing.T) {
	port := 0
	settings.Default(&port, 5432)
	assert.Equal(t, 5432, port)
	settings.Default(&port, 1)
	assert.Equal(t, 5432, port)

	host := "localhost"
	settings.Overlay(&host, "")
	assert.Equal(t, "localhost", host)
	settings.Overlay(&host, "db.internal")
	assert.Equal(t, "db.internal", host)

	origins := []string{"a"}
	settings.OverlaySlice(&origins, nil)
	assert.Equal(t, []string{"a"}, origins)
	settings.OverlaySlice(&origins, []string{})
	assert.Empty(t, origins)
}

func TestEnvReaders(t *testing.T) {
	t.Setenv("TEST_NAME", "ssma")
	t.Setenv("TEST_PORT", " 6543 ")
	t.Setenv("TEST_BAD_PORT", "abc")
	t.Setenv("TEST_ENABLED", "true")
	t.Setenv("TEST_STATUSES", "under_review, archived ,,")

	var name string
	settings.String(&name, "TEST_NAME")
	assert.Equal(t, "ssma", name)

	port := 5432
	settings.Int(&port, "TEST_PORT")
	assert.Equal(t, 6543, port)
	settings.Int(&port, "TEST_BAD_PORT")
	assert.Equal(t, 6543, port)

	var size int32
	settings.Int(&size, "TEST_PORT")
	assert.Equal(t, int32(6543), size)

	var enabled bool
	settings.Bool(&enabled, "TEST_ENABLED")
	assert.True(t, enabled)

	var statuses []status
	settings.List(&statuses, "TEST_STATUSES")
	assert.Equal(t, []status{"under_review", "archived"}, statuses)

	untouched := "keep"
	settings.String(&untouched, "TEST_UNSET")
	settings.String(&untouched, "")
	assert.Equal(t, "keep", untouched)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 90*time.Second, settings.Duration("1m30s"))
	assert.Zero(t, settings.Duration("soon"))

	assert.NoError(t, settings.CheckDuration("timeout", "5s"))
	err := settings.CheckDuration("timeout", "5")
	assert.ErrorContains(t, err, "invalid timeout")
}
