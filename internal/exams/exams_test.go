package exams_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/exams"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

type mockSystem struct {
	exams.System
	createFn func(ctx context.Context, cmd exams.Command) (*exams.Exam, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*exams.Exam, error)
}

func (m *mockSystem) Create(ctx context.Context, cmd exams.Command) (*exams.Exam, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*exams.Exam, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Attachments() *attachments.Store { return nil }

func setupMux(sys exams.System) *http.ServeMux {
	h := exams.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		1024,
	)
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}
	return mux
}

func TestKindAndResultJSON(t *testing.T) {
	var cmd exams.Command
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"return_to_work","result":"unfit"}`), &cmd))
	assert.Equal(t, exams.KindReturnToWork, cmd.Kind)
	assert.Equal(t, exams.ResultUnfit, cmd.Result)

	err := json.Unmarshal([]byte(`{"kind":"annual"}`), &cmd)
	assert.ErrorIs(t, err, exams.ErrInvalidKind)

	err = json.Unmarshal([]byte(`{"result":"apto"}`), &cmd)
	assert.ErrorIs(t, err, exams.ErrInvalidResult)
}

func TestFiltersFromQuery(t *testing.T) {
	f := exams.FiltersFromQuery(url.Values{
		"kind":   {"periodic"},
		"result": {"fit"},
		"status": {"expired"},
	})
	require.NotNil(t, f.Kind)
	assert.Equal(t, exams.KindPeriodic, *f.Kind)
	require.NotNil(t, f.Result)
	assert.Equal(t, exams.ResultFit, *f.Result)
	require.NotNil(t, f.Status)
	assert.Equal(t, safety.StatusExpired, *f.Status)

	f = exams.FiltersFromQuery(url.Values{"kind": {"weekly"}})
	assert.Nil(t, f.Kind)
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{exams.ErrNotFound, http.StatusNotFound},
		{exams.ErrExpiryBeforeIssue, http.StatusBadRequest},
		{exams.ErrInvalidKind, http.StatusBadRequest},
		{attachments.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{attachments.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exams.MapHTTPStatus(tt.err), tt.err.Error())
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd exams.Command) (*exams.Exam, error) {
			return &exams.Exam{ID: uuid.New(), Kind: cmd.Kind, Result: cmd.Result, Status: safety.StatusValid}, nil
		},
	}
	mux := setupMux(sys)

	t.Run("created", func(t *testing.T) {
		body := `{"employee_name":"Eva","department":"Logística","kind":"admission","result":"fit","issued_on":"2024-07-01","expires_on":"2025-07-01"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/exams", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var got exams.Exam
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, exams.KindAdmission, got.Kind)
	})

	t.Run("unknown kind", func(t *testing.T) {
		body := `{"kind":"annual","result":"fit","issued_on":"2024-07-01"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/exams", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerDownloadMissingAttachment(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*exams.Exam, error) {
			return nil, exams.ErrNotFound
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/exams/"+uuid.NewString()+"/attachment", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerAttachTooLarge(t *testing.T) {
	mux := setupMux(&mockSystem{})

	body := "--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"aso.pdf\"\r\n\r\n" +
		strings.Repeat("x", 4096) + "\r\n--b--\r\n"
	req := httptest.NewRequest("POST", "/exams/"+uuid.NewString()+"/attachment", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
