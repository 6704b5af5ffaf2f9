// Package routes declares handler groups once so the same definitions can
// be registered on a ServeMux and described in the OpenAPI document.
package routes

import "net/http"

// Route binds a method and a pattern relative to its group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Path joins prefix and the route pattern. The root of an empty prefix is "/".
func (r Route) Path(prefix string) string {
	if p := prefix + r.Pattern; p != "" {
		return p
	}
	return "/"
}
