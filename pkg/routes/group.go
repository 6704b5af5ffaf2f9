package routes

import "net/http"

// Group collects routes under a shared prefix. Child prefixes are
// appended to the parent's.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Visit is called by Walk with the full prefix of the group that owns r.
type Visit func(prefix string, r Route)

// Walk visits every route of groups depth first, parents before children.
func Walk(visit Visit, groups ...Group) {
	for _, g := range groups {
		walk(visit, "", g)
	}
}

func walk(visit Visit, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		visit(prefix, r)
	}
	for _, child := range g.Children {
		walk(visit, prefix, child)
	}
}

// Register adds every route of groups to mux as "METHOD path" patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(func(prefix string, r Route) {
		mux.HandleFunc(r.Method+" "+r.Path(prefix), r.Handler)
	}, groups...)
}
