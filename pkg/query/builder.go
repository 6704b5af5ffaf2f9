package query

import (
	"reflect"
	"strconv"
	"strings"
)

// predicate is one AND-joined WHERE term. Each '?' in text is bound, in
// order, to the matching entry of args and numbered when rendered.
type predicate struct {
	text string
	args []any
}

// SortField is one ORDER BY term keyed by its logical field name.
type SortField struct {
	Field      string
	Descending bool
}

// Builder assembles PostgreSQL statements over a ProjectionMap. Filters
// with nil or empty values are skipped, so callers chain every optional
// filter unconditionally.
type Builder struct {
	proj     *ProjectionMap
	preds    []predicate
	sort     []SortField
	fallback []SortField
}

// NewBuilder returns a Builder ordered by fallback until OrderByFields is called.
func NewBuilder(proj *ProjectionMap, fallback ...SortField) *Builder {
	return &Builder{proj: proj, fallback: fallback}
}

// ParseSortFields reads a sort string such as "course,-expiresOn", where a
// leading "-" selects descending order.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// OrderByFields replaces the fallback order. Unmapped fields are dropped at render.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals matches field against value.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.add(b.proj.Column(field)+" = ?", value)
}

// WhereContains matches field case-insensitively against *value as a substring.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.add(b.proj.Column(field)+" ILIKE ?", like(*value))
}

// WhereDateRange bounds field inclusively; either bound may be nil.
func (b *Builder) WhereDateRange(field string, from, to any) *Builder {
	col := b.proj.Column(field)
	if !isNil(from) {
		b.add(col+" >= ?", from)
	}
	if !isNil(to) {
		b.add(col+" <= ?", to)
	}
	return b
}

// WhereSearch matches *search against any of fields. Fields the projection
// does not map are ignored; if none remain the filter is skipped.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" {
		return b
	}

	var terms []string
	var args []any
	for _, f := range fields {
		if b.proj.Has(f) {
			terms = append(terms, b.proj.Column(f)+" ILIKE ?")
			args = append(args, like(*search))
		}
	}
	if len(terms) == 0 {
		return b
	}
	return b.add("("+strings.Join(terms, " OR ")+")", args...)
}

// Build renders the filtered, ordered SELECT.
func (b *Builder) Build() (string, []any) {
	return b.selectSQL(true, "")
}

// BuildCount renders a COUNT(*) over the same filters.
func (b *Builder) BuildCount() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.proj.From())
	args := b.writeWhere(&sb)
	return sb.String(), args
}

// BuildPage renders one 1-based page of the ordered SELECT.
func (b *Builder) BuildPage(page, size int) (string, []any) {
	offset := (page - 1) * size
	return b.selectSQL(true, " LIMIT "+strconv.Itoa(size)+" OFFSET "+strconv.Itoa(offset))
}

// BuildSingle renders a lookup of one row by idField, ignoring other filters.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	single := &Builder{proj: b.proj}
	single.add(b.proj.Column(idField)+" = ?", id)
	return single.selectSQL(false, "")
}

func (b *Builder) add(text string, args ...any) *Builder {
	b.preds = append(b.preds, predicate{text: text, args: args})
	return b
}

func (b *Builder) selectSQL(ordered bool, tail string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.proj.Columns())
	sb.WriteString(" FROM ")
	sb.WriteString(b.proj.From())
	args := b.writeWhere(&sb)
	if ordered {
		b.writeOrder(&sb)
	}
	sb.WriteString(tail)
	return sb.String(), args
}

// writeWhere numbers placeholders from $1 across predicates in insertion order.
func (b *Builder) writeWhere(sb *strings.Builder) []any {
	if len(b.preds) == 0 {
		return nil
	}

	var args []any
	sb.WriteString(" WHERE ")
	for i, p := range b.preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		next := 0
		for _, r := range p.text {
			if r != '?' || next >= len(p.args) {
				sb.WriteRune(r)
				continue
			}
			args = append(args, p.args[next])
			next++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(args)))
		}
	}
	return args
}

func (b *Builder) writeOrder(sb *strings.Builder) {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.fallback
	}

	first := true
	for _, f := range fields {
		if !b.proj.Has(f.Field) {
			continue
		}
		if first {
			sb.WriteString(" ORDER BY ")
			first = false
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(b.proj.Column(f.Field))
		if f.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
}

func like(s string) string {
	return "%" + s + "%"
}

// isNil treats typed nil pointers held in an interface as nil, so optional
// filter fields can be passed straight through.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
