package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	tests := map[string]error{
		"trainings/6f1c/cert.pdf": nil,
		"":                        ErrEmptyKey,
		"../etc/passwd":           ErrInvalidKey,
		"ppe/../../x":             ErrInvalidKey,
		"/exams/a.pdf":            ErrInvalidKey,
	}
	for key, want := range tests {
		if want == nil {
			assert.NoError(t, validateKey(key), key)
			continue
		}
		assert.ErrorIs(t, validateKey(key), want, key)
	}
}

func TestOperationsRejectBadKeys(t *testing.T) {
	cfg := Config{ConnectionString: "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
		"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
		"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"}
	require.NoError(t, cfg.Finalize(""))

	sys, err := New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, sys.Upload(ctx, "", strings.NewReader("x"), Object{}), ErrEmptyKey)
	_, err = sys.Download(ctx, "../secret")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, sys.Delete(ctx, "/abs"), ErrInvalidKey)
}
