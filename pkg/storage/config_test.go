package storage_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/pkg/storage"
)

const azurite = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
	"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
	"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestConfigFinalize(t *testing.T) {
	cfg := storage.Config{ConnectionString: azurite}
	require.NoError(t, cfg.Finalize(""))
	assert.Equal(t, "attachments", cfg.ContainerName)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.TryTimeoutDuration())

	t.Setenv("TEST_STORAGE_CONTAINER_NAME", "ssma-anexos")
	require.NoError(t, cfg.Finalize("TEST_STORAGE"))
	assert.Equal(t, "ssma-anexos", cfg.ContainerName)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr string
	}{
		{"no credentials", storage.Config{}, "connection_string or account_url required"},
		{"plain http account", storage.Config{AccountURL: "http://acct.blob.core.windows.net"}, "https"},
		{"no host", storage.Config{AccountURL: "https://"}, "https"},
		{"negative retries", storage.Config{ConnectionString: azurite, MaxRetries: -1}, "max_retries"},
		{"bad try timeout", storage.Config{ConnectionString: azurite, TryTimeout: "soon"}, "try_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Finalize(""), tt.wantErr)
		})
	}

	ok := storage.Config{AccountURL: "https://acct.blob.core.windows.net"}
	assert.NoError(t, ok.Finalize(""))
}

func TestConfigMerge(t *testing.T) {
	base := storage.Config{ContainerName: "attachments", ConnectionString: azurite}
	base.Merge(&storage.Config{AccountURL: "https://acct.blob.core.windows.net"})

	assert.Equal(t, "attachments", base.ContainerName)
	assert.Equal(t, azurite, base.ConnectionString)
	assert.Equal(t, "https://acct.blob.core.windows.net", base.AccountURL)
}

func TestMapHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, storage.MapHTTPStatus(fmt.Errorf("get: %w", storage.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, storage.MapHTTPStatus(storage.ErrInvalidKey))
	assert.Equal(t, http.StatusBadRequest, storage.MapHTTPStatus(storage.ErrEmptyKey))
	assert.Equal(t, http.StatusBadGateway, storage.MapHTTPStatus(errors.New("connection refused")))
}
