package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/pkg/openapi"
)

func newSpec(t *testing.T) *openapi.Spec {
	t.Helper()
	var cfg openapi.Config
	require.NoError(t, cfg.Finalize(""))
	return openapi.NewSpec(cfg, "1.2.0")
}

func TestNewSpec(t *testing.T) {
	spec := newSpec(t)

	assert.Equal(t, "3.1.0", spec.OpenAPI)
	assert.Equal(t, "SSMA API", spec.Info.Title)
	assert.Equal(t, "1.2.0", spec.Info.Version)
	assert.NotEmpty(t, spec.Info.Description)
	assert.Contains(t, spec.Components.Schemas, "PageRequest")
	assert.Contains(t, spec.Components.Responses, "Unauthorized")
}

func TestPathSet(t *testing.T) {
	spec := newSpec(t)

	list := &openapi.Operation{Summary: "List trainings"}
	create := &openapi.Operation{Summary: "Create training"}
	spec.Path("/trainings").Set(http.MethodGet, list)
	spec.Path("/trainings").Set(http.MethodPost, create)
	spec.Path("/trainings").Set(http.MethodPatch, &openapi.Operation{})

	item := spec.Paths["/trainings"]
	require.NotNil(t, item)
	assert.Same(t, list, item.Get)
	assert.Same(t, create, item.Post)
	assert.Nil(t, item.Put)
	assert.Len(t, spec.Paths, 1)
}

func TestMarshalJSON(t *testing.T) {
	spec := newSpec(t)
	spec.AddServer("/api")
	spec.Path("/ppe/{id}").Set(http.MethodGet, &openapi.Operation{
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "PPE issuance ID")},
		Responses: map[int]*openapi.Response{
			200: {Description: "OK"},
			404: openapi.ResponseRef("NotFound"),
		},
	})

	data, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "/api", doc["servers"].([]any)[0].(map[string]any)["url"])

	op := doc["paths"].(map[string]any)["/ppe/{id}"].(map[string]any)["get"].(map[string]any)
	responses := op["responses"].(map[string]any)
	assert.Equal(t, "#/components/responses/NotFound", responses["404"].(map[string]any)["$ref"])
	param := op["parameters"].([]any)[0].(map[string]any)
	assert.Equal(t, "uuid", param["schema"].(map[string]any)["format"])
}

func TestServeSpec(t *testing.T) {
	h := openapi.ServeSpec([]byte(`{"openapi":"3.1.0"}`))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	h(cached, req)

	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "SSMA Planta Norte")

	var cfg openapi.Config
	require.NoError(t, cfg.Finalize("TEST_OPENAPI"))
	assert.Equal(t, "SSMA Planta Norte", cfg.Title)

	cfg.Merge(&openapi.Config{Description: "overlay"})
	assert.Equal(t, "overlay", cfg.Description)
	assert.Equal(t, "SSMA Planta Norte", cfg.Title)
}
