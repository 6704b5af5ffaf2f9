package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/config"
	"github.com/JaimeStill/ssma/internal/safety"
)

const baseConfig = `
shutdown_timeout = "20s"
version = "1.0.0"

[server]
port = 8080

[database]
host = "localhost"
name = "ssma"
user = "ssma"
password = "ssma"

[storage]
connection_string = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=a2V5;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

[api]
max_upload_size = "20 MiB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[safety]
expiring_soon_window_days = 45
timezone = "America/Sao_Paulo"

[safety.search]
trainings = ["employee_name"]
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "db.prod"

[api.cors]
enabled = true
origins = ["https://ssma.example.com"]
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvSSMAEnv, "")
	return dir
}

func TestLoadBase(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeoutDuration())
	assert.Equal(t, "ssma", cfg.Database.Name)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, int64(20<<20), cfg.API.MaxUploadSizeBytes())
	assert.Equal(t, 25, cfg.API.Pagination.DefaultPageSize)
	assert.Equal(t, "SSMA API", cfg.API.OpenAPI.Title)
	assert.False(t, cfg.API.CORS.Enabled)
	assert.Equal(t, 45, cfg.Safety.ExpiringSoonWindowDays)
	assert.Equal(t, "America/Sao_Paulo", cfg.Safety.Location().String())
	assert.Equal(t, []string{"employee_name"}, cfg.Safety.SearchFields("trainings"))
	assert.Equal(t, safety.DefaultSearch()["ppe"], cfg.Safety.SearchFields("ppe"))
	assert.Equal(t, "local", cfg.Env())
}

func TestLoadOverlay(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, "config.production.toml", overlayConfig)
	t.Setenv(config.EnvSSMAEnv, "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.prod", cfg.Database.Host)
	assert.Equal(t, "ssma", cfg.Database.User)
	assert.True(t, cfg.API.CORS.Enabled)
	assert.Equal(t, []string{"https://ssma.example.com"}, cfg.API.CORS.Origins)
	assert.Equal(t, "production", cfg.Env())
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	t.Setenv("SSMA_SERVER_PORT", "7070")
	t.Setenv("SSMA_DB_HOST", "db.env")
	t.Setenv("SSMA_API_MAX_UPLOAD_SIZE", "50MB")
	t.Setenv("SSMA_API_CORS_ENABLED", "true")
	t.Setenv("SSMA_API_PAGINATION_MAX_PAGE_SIZE", "200")
	t.Setenv("SSMA_SAFETY_EXPIRING_SOON_WINDOW_DAYS", "60")
	t.Setenv("SSMA_SAFETY_OVERRIDE_STATUSES", "archived")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "db.env", cfg.Database.Host)
	assert.Equal(t, int64(50_000_000), cfg.API.MaxUploadSizeBytes())
	assert.True(t, cfg.API.CORS.Enabled)
	assert.Equal(t, 200, cfg.API.Pagination.MaxPageSize)
	assert.Equal(t, 60, cfg.Safety.ExpiringSoonWindowDays)
	assert.Equal(t, []safety.Status{safety.StatusArchived}, cfg.Safety.OverrideStatuses)
}

func TestLoadDotEnv(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, config.DotEnvFile, "SSMA_DB_NAME=from_dotenv\nSSMA_SERVER_PORT=6060\n")
	t.Setenv("SSMA_SERVER_PORT", "5050")
	t.Cleanup(func() { os.Unsetenv("SSMA_DB_NAME") })

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.Database.Name)
	assert.Equal(t, 5050, cfg.Server.Port)
}

func TestLoadWithoutFiles(t *testing.T) {
	inTempDir(t)
	t.Setenv("SSMA_DB_NAME", "ssma")
	t.Setenv("SSMA_DB_USER", "ssma")
	t.Setenv("SSMA_STORAGE_ACCOUNT_URL", "https://ssma.blob.core.windows.net")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(50_000_000), cfg.API.MaxUploadSizeBytes())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"SSMA_SERVER_PORT": "70000"}, "server: invalid port"},
		{"bad upload size", map[string]string{"SSMA_API_MAX_UPLOAD_SIZE": "lots"}, "api: invalid max_upload_size"},
		{"bad timezone", map[string]string{"SSMA_SAFETY_TIMEZONE": "Mars/Olympus"}, "safety: invalid timezone"},
		{"bad status", map[string]string{"SSMA_SAFETY_MISSING_DATE_STATUS": "unknown"}, "safety: missing_date_status"},
		{"auth without issuer", map[string]string{"SSMA_AUTH_ENABLED": "true"}, "auth: issuer required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			writeFile(t, dir, config.BaseConfigFile, baseConfig)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, config.BaseConfigFile, "[server\nport = ")

	_, err := config.Load()
	assert.ErrorContains(t, err, "parse config")
}
