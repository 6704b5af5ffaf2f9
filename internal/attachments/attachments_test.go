package attachments_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/pkg/lifecycle"
	"github.com/JaimeStill/ssma/pkg/storage"
)

type fakeStorage struct {
	blobs   map[string][]byte
	objects map[string]storage.Object
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		blobs:   map[string][]byte{},
		objects: map[string]storage.Object{},
	}
}

func (f *fakeStorage) Start(*lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(_ context.Context, key string, r io.Reader, obj storage.Object) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	f.objects[key] = obj
	return nil
}

func (f *fakeStorage) Download(_ context.Context, key string) (*storage.Blob, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   f.objects[key].ContentType,
		ContentLength: int64(len(data)),
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if _, ok := f.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.blobs, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStorePut(t *testing.T) {
	fs := newFakeStorage()
	store := attachments.NewStore(fs, "trainings", discard())
	id := uuid.MustParse("6f1c2b9e-4a3d-4c1e-9b7a-2d5e8f0a1b2c")

	att, err := store.Put(context.Background(), id, &attachments.Upload{
		Data:        []byte("certificate"),
		Filename:    "../NR-35 certificado.txt",
		ContentType: "text/plain",
	})
	require.NoError(t, err)

	wantKey := "trainings/6f1c2b9e-4a3d-4c1e-9b7a-2d5e8f0a1b2c/NR-35%20certificado.txt"
	assert.Equal(t, wantKey, att.StorageKey)
	assert.Equal(t, int64(len("certificate")), att.SizeBytes)
	assert.Equal(t, "../NR-35 certificado.txt", att.Filename)
	assert.Equal(t, []byte("certificate"), fs.blobs[wantKey])
	assert.Equal(t, map[string]string{"kind": "trainings", "record_id": id.String()}, fs.objects[wantKey].Metadata)
}

func TestStoreDiscard(t *testing.T) {
	fs := newFakeStorage()
	fs.blobs["exams/a/aso.pdf"] = []byte("x")
	store := attachments.NewStore(fs, "exams", discard())

	store.Discard(context.Background(), "")
	store.Discard(context.Background(), "exams/a/aso.pdf")
	store.Discard(context.Background(), "exams/a/missing.pdf")

	assert.Equal(t, []string{"exams/a/aso.pdf"}, fs.deleted)
}

func TestStoreServe(t *testing.T) {
	fs := newFakeStorage()
	fs.blobs["documents/d/ppra.pdf"] = []byte("%PDF-1.4")
	fs.objects["documents/d/ppra.pdf"] = storage.Object{ContentType: "application/pdf"}
	store := attachments.NewStore(fs, "documents", discard())

	t.Run("streams blob", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/documents/d/attachment", nil)
		store.Serve(rec, req, &attachments.Attachment{Filename: "PPRA 2026.pdf", StorageKey: "documents/d/ppra.pdf"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, "8", rec.Header().Get("Content-Length"))
		assert.Equal(t, `attachment; filename="PPRA 2026.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4", rec.Body.String())
	})

	t.Run("record without attachment", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store.Serve(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing blob", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store.Serve(rec, httptest.NewRequest(http.MethodGet, "/", nil), &attachments.Attachment{StorageKey: "documents/d/gone.pdf"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestParseUpload(t *testing.T) {
	t.Run("sniffs octet-stream parts", func(t *testing.T) {
		req := multipartRequest(t, "file", "fispq.txt", []byte("hello world"))
		up, err := attachments.ParseUpload(req, 1<<20, discard())
		require.NoError(t, err)

		assert.Equal(t, "fispq.txt", up.Filename)
		assert.Equal(t, "text/plain; charset=utf-8", up.ContentType)
		assert.Nil(t, up.PageCount)
	})

	t.Run("wrong field", func(t *testing.T) {
		req := multipartRequest(t, "document", "a.txt", []byte("x"))
		_, err := attachments.ParseUpload(req, 1<<20, discard())
		assert.ErrorIs(t, err, attachments.ErrInvalidFile)
	})

	t.Run("empty file", func(t *testing.T) {
		req := multipartRequest(t, "file", "a.txt", nil)
		_, err := attachments.ParseUpload(req, 1<<20, discard())
		assert.ErrorIs(t, err, attachments.ErrInvalidFile)
	})

	t.Run("too large", func(t *testing.T) {
		req := multipartRequest(t, "file", "a.txt", bytes.Repeat([]byte("x"), 4096))
		_, err := attachments.ParseUpload(req, 512, discard())
		assert.ErrorIs(t, err, attachments.ErrFileTooLarge)
	})
}

func TestMapHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, attachments.MapHTTPStatus(attachments.ErrNotFound))
	assert.Equal(t, http.StatusRequestEntityTooLarge, attachments.MapHTTPStatus(attachments.ErrFileTooLarge))
	assert.Equal(t, http.StatusBadRequest, attachments.MapHTTPStatus(attachments.ErrInvalidFile))
	assert.Equal(t, http.StatusInternalServerError, attachments.MapHTTPStatus(io.ErrUnexpectedEOF))
}

func TestColumnsAttachment(t *testing.T) {
	var empty attachments.Columns
	assert.Nil(t, empty.Attachment())
	assert.Len(t, empty.Targets(), 5)

	key, name := "ppe/x/ca.pdf", "ca.pdf"
	size, pages := int64(120), 2
	cols := attachments.Columns{StorageKey: &key, Filename: &name, SizeBytes: &size, PageCount: &pages}

	att := cols.Attachment()
	require.NotNil(t, att)
	assert.Equal(t, key, att.StorageKey)
	assert.Equal(t, name, att.Filename)
	assert.Equal(t, size, att.SizeBytes)
	assert.Equal(t, &pages, att.PageCount)
	assert.Empty(t, att.ContentType)
}
