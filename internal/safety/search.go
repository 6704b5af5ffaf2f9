package safety

import (
	"strings"

	"github.com/samber/lo"
)

// Field reads one searchable text value from a record.
type Field[T any] func(T) string

// Fields maps searchable field names to accessors for one record kind.
type Fields[T any] map[string]Field[T]

// Select returns the accessors for names in order, skipping unknown names.
func (f Fields[T]) Select(names []string) []Field[T] {
	selected := make([]Field[T], 0, len(names))
	for _, name := range names {
		if fn, ok := f[name]; ok {
			selected = append(selected, fn)
		}
	}
	return selected
}

// Matches reports whether the lowercased query is a substring of any field.
// An empty query matches every record.
func Matches[T any](record T, query string, fields []Field[T]) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return lo.SomeBy(fields, func(f Field[T]) bool {
		return strings.Contains(strings.ToLower(f(record)), q)
	})
}

// Filter returns the records matching query across fields, preserving order.
// An empty query returns records unmodified.
func Filter[T any](records []T, query string, fields []Field[T]) []T {
	if query == "" {
		return records
	}
	return lo.Filter(records, func(r T, _ int) bool {
		return Matches(r, query, fields)
	})
}
