// Package query renders PostgreSQL statements from a projection of
// logical field names onto the columns of one aliased table.
package query

import "strings"

// ProjectionMap maps the JSON field names a kind exposes onto qualified
// alias.column references. Projection order is the SELECT column order
// and must match the kind's scan function.
type ProjectionMap struct {
	from    string
	alias   string
	byField map[string]string
	ordered []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:    schema + "." + table + " " + alias,
		alias:   alias,
		byField: map[string]string{},
	}
}

// Project appends column to the SELECT list under the logical name field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	ref := p.alias + "." + column
	p.byField[field] = ref
	p.ordered = append(p.ordered, ref)
	return p
}

// From is the FROM clause body.
func (p *ProjectionMap) From() string {
	return p.from
}

// Column resolves field to its column, passing unmapped names through.
func (p *ProjectionMap) Column(field string) string {
	if ref, ok := p.byField[field]; ok {
		return ref
	}
	return field
}

func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.byField[field]
	return ok
}

// Columns is the comma separated SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
