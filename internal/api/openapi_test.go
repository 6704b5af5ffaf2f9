package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/pkg/openapi"
	"github.com/JaimeStill/ssma/pkg/routes"
)

func noop(http.ResponseWriter, *http.Request) {}

func TestBuildSpec(t *testing.T) {
	group := routes.Group{
		Prefix: "/trainings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: noop},
			{Method: "POST", Pattern: "/search", Handler: noop},
			{Method: "GET", Pattern: "/{id}", Handler: noop},
			{Method: "DELETE", Pattern: "/{id}", Handler: noop},
			{Method: "POST", Pattern: "/{id}/attachment", Handler: noop},
		},
	}

	spec := buildSpec(openapi.Config{Title: "SSMA API"}, "1.2.0", "/api", group)

	assert.Equal(t, "3.1.0", spec.OpenAPI)
	assert.Equal(t, "1.2.0", spec.Info.Version)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "/api", spec.Servers[0].URL)

	list := spec.Paths["/trainings"]
	require.NotNil(t, list)
	require.NotNil(t, list.Get)
	assert.Equal(t, []string{"trainings"}, list.Get.Tags)

	search := spec.Paths["/trainings/search"]
	require.NotNil(t, search.Post)
	assert.Contains(t, search.Post.RequestBody.Content, "application/json")

	item := spec.Paths["/trainings/{id}"]
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Delete)
	require.Len(t, item.Delete.Parameters, 1)
	assert.Equal(t, "path", item.Delete.Parameters[0].In)
	assert.Contains(t, item.Delete.Responses, http.StatusNoContent)

	upload := spec.Paths["/trainings/{id}/attachment"]
	require.NotNil(t, upload.Post)
	assert.Contains(t, upload.Post.RequestBody.Content, "multipart/form-data")

	_, err := openapi.MarshalJSON(spec)
	assert.NoError(t, err)
}

func TestRequireAuth(t *testing.T) {
	group := routes.Group{
		Prefix: "/actions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: noop},
			{Method: "PUT", Pattern: "/{id}", Handler: noop},
		},
	}

	spec := buildSpec(openapi.Config{Title: "SSMA API"}, "1.0.0", "/api", group)
	requireAuth(spec)

	assert.Contains(t, spec.Paths["/actions"].Get.Responses, http.StatusUnauthorized)
	assert.Contains(t, spec.Paths["/actions/{id}"].Put.Responses, http.StatusUnauthorized)
	assert.Nil(t, spec.Paths["/actions/{id}"].Delete)
}
