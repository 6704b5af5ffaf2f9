package attachments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/pkg/handlers"
	"github.com/JaimeStill/ssma/pkg/storage"
)

// Store writes attachment blobs under a per-kind key prefix.
type Store struct {
	storage storage.System
	prefix  string
	logger  *slog.Logger
}

// NewStore creates a Store for the record kind named prefix (e.g. "trainings").
func NewStore(store storage.System, prefix string, logger *slog.Logger) *Store {
	return &Store{
		storage: store,
		prefix:  prefix,
		logger:  logger.With("system", "attachments", "kind", prefix),
	}
}

// Key builds the storage key of a file attached to record id.
func (s *Store) Key(id uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", s.prefix, id, sanitizeFilename(filename))
}

// Put uploads the file for record id and returns its description.
func (s *Store) Put(ctx context.Context, id uuid.UUID, up *Upload) (Attachment, error) {
	key := s.Key(id, up.Filename)

	obj := storage.Object{
		ContentType: up.ContentType,
		Metadata: map[string]string{
			"kind":      s.prefix,
			"record_id": id.String(),
		},
	}
	if err := s.storage.Upload(ctx, key, bytes.NewReader(up.Data), obj); err != nil {
		return Attachment{}, fmt.Errorf("upload attachment blob: %w", err)
	}

	return Attachment{
		Filename:    up.Filename,
		ContentType: up.ContentType,
		SizeBytes:   int64(len(up.Data)),
		PageCount:   up.PageCount,
		StorageKey:  key,
	}, nil
}

// Discard deletes a blob after the owning row no longer references it.
// Failures are logged; a missing blob is ignored.
func (s *Store) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("attachment blob delete failed", "key", key, "error", err)
	}
}

// Serve streams att to w as a download.
func (s *Store) Serve(w http.ResponseWriter, r *http.Request, att *Attachment) {
	if att == nil {
		handlers.RespondError(w, s.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	blob, err := s.storage.Download(r.Context(), att.StorageKey)
	if err != nil {
		handlers.RespondError(w, s.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}

	filename := att.Filename
	if filename == "" {
		filename = path.Base(att.StorageKey)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		s.logger.Warn("attachment stream interrupted", "key", att.StorageKey, "error", err)
	}
}
