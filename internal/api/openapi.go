package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/ssma/pkg/openapi"
	"github.com/JaimeStill/ssma/pkg/routes"
)

var pathParam = regexp.MustCompile(`\{(\w+)(?:\.\.\.)?\}`)

// buildSpec describes every registered route. Operations are tagged with
// the first segment of their group prefix.
func buildSpec(cfg openapi.Config, version, basePath string, groups ...routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg, version)
	spec.AddServer(basePath)

	routes.Walk(func(prefix string, r routes.Route) {
		path := r.Path(prefix)
		tag := strings.Split(strings.TrimPrefix(prefix, "/"), "/")[0]
		spec.Path(path).Set(r.Method, operation(r.Method, path, tag))
	}, groups...)
	return spec
}

// requireAuth adds the bearer token failure to every operation.
func requireAuth(spec *openapi.Spec) {
	for _, item := range spec.Paths {
		for _, op := range []*openapi.Operation{item.Get, item.Post, item.Put, item.Delete} {
			if op != nil {
				op.Responses[http.StatusUnauthorized] = openapi.ResponseRef("Unauthorized")
			}
		}
	}
}

func operation(method, path, tag string) *openapi.Operation {
	op := &openapi.Operation{
		Summary:   fmt.Sprintf("%s %s", method, path),
		Tags:      []string{tag},
		Responses: map[int]*openapi.Response{},
	}

	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, openapi.PathParam(m[1], m[1]+" identifier"))
	}

	object := &openapi.Schema{Type: "object"}
	attachment := strings.HasSuffix(path, "/attachment")

	switch method {
	case http.MethodGet:
		switch {
		case attachment:
			op.Responses[http.StatusOK] = &openapi.Response{
				Description: "Attachment content",
				Content: map[string]*openapi.MediaType{
					"application/octet-stream": {Schema: openapi.Binary()},
				},
			}
			op.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
		case strings.HasSuffix(path, "}"):
			op.Responses[http.StatusOK] = &openapi.Response{Description: "Record"}
			op.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
		default:
			op.Parameters = append(op.Parameters, openapi.QueryParam("search", "string", "Free-text search", false))
			op.Responses[http.StatusOK] = &openapi.Response{Description: "Result"}
		}
	case http.MethodPost:
		switch {
		case strings.HasSuffix(path, "/search"):
			op.RequestBody = openapi.RequestBodyJSON("PageRequest", true)
			op.Responses[http.StatusOK] = &openapi.Response{Description: "Page of records"}
		case attachment:
			op.RequestBody = &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"multipart/form-data": {Schema: &openapi.Schema{
						Type:       "object",
						Properties: map[string]*openapi.Schema{"file": openapi.Binary()},
					}},
				},
			}
			op.Responses[http.StatusOK] = &openapi.Response{Description: "Attached"}
		default:
			op.RequestBody = openapi.JSONBody(object)
			op.Responses[http.StatusCreated] = &openapi.Response{Description: "Created"}
		}
		op.Responses[http.StatusBadRequest] = openapi.ResponseRef("BadRequest")
		op.Responses[http.StatusConflict] = openapi.ResponseRef("Conflict")
	case http.MethodPut:
		op.RequestBody = openapi.JSONBody(object)
		op.Responses[http.StatusOK] = &openapi.Response{Description: "Updated"}
		op.Responses[http.StatusBadRequest] = openapi.ResponseRef("BadRequest")
		op.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	case http.MethodDelete:
		op.Responses[http.StatusNoContent] = &openapi.Response{Description: "Deleted"}
		op.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	}

	return op
}
