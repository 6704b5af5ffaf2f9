package documents

import (
	"net/url"

	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/pkg/query"
	"github.com/JaimeStill/ssma/pkg/repository"
)

const columns = `id, title, category, description, responsible, issued_on, review_on, status, ` +
	attachments.ColumnNames + `, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "id").
	Project("title", "title").
	Project("category", "category").
	Project("description", "description").
	Project("responsible", "responsible").
	Project("issued_on", "issued_on").
	Project("review_on", "review_on").
	Project("status", "status").
	Project("attachment_key", "attachment_key").
	Project("attachment_filename", "filename").
	Project("attachment_content_type", "content_type").
	Project("attachment_size_bytes", "size_bytes").
	Project("attachment_page_count", "page_count").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{
	Field: "review_on",
}

var searchFields = safety.Fields[Document]{
	"title":    func(d Document) string { return d.Title },
	"category": func(d Document) string { return d.Category },
	"description": func(d Document) string {
		if d.Description == nil {
			return ""
		}
		return *d.Description
	},
	"filename": func(d Document) string {
		if d.Attachment == nil {
			return ""
		}
		return d.Attachment.Filename
	},
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Status, Category, and ContentType use exact
// matching. Title and Filename use case-insensitive contains matching.
type Filters struct {
	Status      *safety.Status `json:"status,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Filename    *string        `json:"filename,omitempty"`
	ContentType *string        `json:"content_type,omitempty"`
	ReviewFrom  *safety.Date   `json:"review_from,omitempty"`
	ReviewTo    *safety.Date   `json:"review_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("status", f.Status).
		WhereEquals("category", f.Category).
		WhereContains("title", f.Title).
		WhereContains("filename", f.Filename).
		WhereEquals("content_type", f.ContentType).
		WhereDateRange("review_on", f.ReviewFrom, f.ReviewTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s, err := safety.ParseStatus(values.Get("status")); err == nil {
		f.Status = &s
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if d, err := safety.ParseDate(values.Get("review_from")); err == nil {
		f.ReviewFrom = &d
	}

	if d, err := safety.ParseDate(values.Get("review_to")); err == nil {
		f.ReviewTo = &d
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	var att attachments.Columns
	dest := []any{
		&d.ID,
		&d.Title,
		&d.Category,
		&d.Description,
		&d.Responsible,
		&d.IssuedOn,
		&d.ReviewOn,
		&d.Status,
	}
	dest = append(dest, att.Targets()...)
	dest = append(dest, &d.CreatedAt, &d.UpdatedAt)

	if err := s.Scan(dest...); err != nil {
		return d, err
	}
	d.Attachment = att.Attachment()
	return d, nil
}
