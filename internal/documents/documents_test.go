package documents_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/documents"
	"github.com/JaimeStill/ssma/internal/safety"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"invalid", documents.ErrInvalid, http.StatusBadRequest},
		{"review before issue", documents.ErrReviewBeforeIssue, http.StatusBadRequest},
		{"file too large", attachments.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", attachments.ErrInvalidFile, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", documents.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documents.MapHTTPStatus(tt.err))
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"status":       {"expired"},
			"category":     {"PCMSO"},
			"title":        {"2024"},
			"filename":     {"pcmso"},
			"content_type": {"application/pdf"},
			"review_from":  {"2024-01-01"},
			"review_to":    {"2024-12-31"},
		}

		f := documents.FiltersFromQuery(values)

		require.NotNil(t, f.Status)
		assert.Equal(t, safety.StatusExpired, *f.Status)
		require.NotNil(t, f.Category)
		assert.Equal(t, "PCMSO", *f.Category)
		require.NotNil(t, f.Title)
		assert.Equal(t, "2024", *f.Title)
		require.NotNil(t, f.ContentType)
		assert.Equal(t, "application/pdf", *f.ContentType)
		require.NotNil(t, f.ReviewFrom)
		assert.Equal(t, "2024-01-01", f.ReviewFrom.String())
		require.NotNil(t, f.ReviewTo)
		assert.Equal(t, "2024-12-31", f.ReviewTo.String())
	})

	t.Run("empty values", func(t *testing.T) {
		f := documents.FiltersFromQuery(url.Values{})

		assert.Nil(t, f.Status)
		assert.Nil(t, f.Category)
		assert.Nil(t, f.Title)
		assert.Nil(t, f.ReviewFrom)
	})

	t.Run("unknown status ignored", func(t *testing.T) {
		f := documents.FiltersFromQuery(url.Values{"status": {"pending"}})

		assert.Nil(t, f.Status)
	})
}
