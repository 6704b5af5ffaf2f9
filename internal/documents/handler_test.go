package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/documents"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*documents.Document, error)
	createFn func(ctx context.Context, cmd documents.Command) (*documents.Document, error)
	updateFn func(ctx context.Context, id uuid.UUID, cmd documents.Command) (*documents.Document, error)
	uploadFn func(ctx context.Context, cmd documents.Command, upload *attachments.Upload) (*documents.Document, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler(maxUploadSize int64) *documents.Handler {
	return documents.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, maxUploadSize)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd documents.Command) (*documents.Document, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd documents.Command) (*documents.Document, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Upload(ctx context.Context, cmd documents.Command, upload *attachments.Upload) (*documents.Document, error) {
	return m.uploadFn(ctx, cmd, upload)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Summary(context.Context, string, documents.Filters) (*documents.Summary, error) {
	return &documents.Summary{}, nil
}

func (m *mockSystem) Attach(context.Context, uuid.UUID, *attachments.Upload) (*documents.Document, error) {
	return nil, attachments.ErrInvalidFile
}

func (m *mockSystem) Attachments() *attachments.Store { return nil }

func (m *mockSystem) Refresh(context.Context, time.Time) (int, error) { return 0, nil }

func newTestHandler(sys *mockSystem) *documents.Handler {
	return sys.Handler(50 * 1024 * 1024)
}

func setupMux(h *documents.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleDoc() documents.Document {
	review := safety.MustParseDate("2025-03-01")
	return documents.Document{
		ID:       uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Title:    "PGR 2024",
		Category: "PGR",
		ReviewOn: &review,
		Status:   safety.StatusValid,
		Attachment: &attachments.Attachment{
			Filename:    "pgr-2024.pdf",
			ContentType: "application/pdf",
			SizeBytes:   1024,
			StorageKey:  "documents/550e8400-e29b-41d4-a716-446655440000/pgr-2024.pdf",
		},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func createMultipartForm(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestHandlerList(t *testing.T) {
	doc := sampleDoc()

	t.Run("passes query filters", func(t *testing.T) {
		var captured documents.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, f documents.Filters) (*pagination.PageResult[documents.Document], error) {
				captured = f
				result := pagination.NewPageResult([]documents.Document{doc}, 1, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents?status=expiring_soon&category=PGR&filename=pgr", nil)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured.Status)
		assert.Equal(t, safety.StatusExpiringSoon, *captured.Status)
		require.NotNil(t, captured.Category)
		assert.Equal(t, "PGR", *captured.Category)
		require.NotNil(t, captured.Filename)
		assert.Equal(t, "pgr", *captured.Filename)
	})
}

func TestHandlerFind(t *testing.T) {
	doc := sampleDoc()

	t.Run("returns document by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*documents.Document, error) {
				if id != doc.ID {
					return nil, documents.ErrNotFound
				}
				return &doc, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+doc.ID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got documents.Document
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.NotNil(t, got.Attachment)
		assert.Equal(t, "pgr-2024.pdf", got.Attachment.Filename)
		require.NotNil(t, got.ReviewOn)
		assert.Equal(t, "2025-03-01", got.ReviewOn.String())
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerCreate(t *testing.T) {
	doc := sampleDoc()

	t.Run("json body creates metadata only", func(t *testing.T) {
		var captured documents.Command
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd documents.Command) (*documents.Document, error) {
				captured = cmd
				return &doc, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body := []byte(`{"title":"PCMSO","category":"PCMSO","review_on":"2025-01-31","status":"archived"}`)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, safety.StatusArchived, captured.Status)
	})

	t.Run("multipart body uploads file with metadata", func(t *testing.T) {
		var capturedCmd documents.Command
		var capturedUpload *attachments.Upload
		sys := &mockSystem{
			uploadFn: func(_ context.Context, cmd documents.Command, up *attachments.Upload) (*documents.Document, error) {
				capturedCmd, capturedUpload = cmd, up
				return &doc, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, contentType := createMultipartForm(t, "ltcat.txt", []byte("laudo"), map[string]string{
			"title":     "LTCAT",
			"category":  "LTCAT",
			"review_on": "2025-06-30",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "LTCAT", capturedCmd.Title)
		require.NotNil(t, capturedCmd.ReviewOn)
		assert.Equal(t, "2025-06-30", capturedCmd.ReviewOn.String())
		require.NotNil(t, capturedUpload)
		assert.Equal(t, "ltcat.txt", capturedUpload.Filename)
		assert.Nil(t, capturedUpload.PageCount)
	})

	t.Run("multipart with bad date returns 400", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		body, contentType := createMultipartForm(t, "x.pdf", []byte("x"), map[string]string{
			"title":     "X",
			"category":  "PGR",
			"review_on": "30/06/2025",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("system error maps status", func(t *testing.T) {
		sys := &mockSystem{
			uploadFn: func(_ context.Context, _ documents.Command, _ *attachments.Upload) (*documents.Document, error) {
				return nil, documents.ErrReviewBeforeIssue
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, contentType := createMultipartForm(t, "x.pdf", []byte("x"), map[string]string{"title": "X", "category": "PGR"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerDelete(t *testing.T) {
	docID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	t.Run("deletes document", func(t *testing.T) {
		var capturedID uuid.UUID
		sys := &mockSystem{
			deleteFn: func(_ context.Context, id uuid.UUID) error {
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/documents/"+docID.String(), nil))

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, docID, capturedID)
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				return documents.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/documents/"+docID.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
