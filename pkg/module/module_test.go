package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/ssma/pkg/middleware"
	"github.com/JaimeStill/ssma/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, r.URL.Path)
}

func TestNewValidatesPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		assert.Panics(t, func() { module.New(prefix, http.NotFoundHandler()) }, prefix)
	}
	assert.NotPanics(t, func() { module.New("/api", http.NotFoundHandler()) })
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))

	tests := map[string]string{
		"/api/trainings/summary": "/trainings/summary",
		"/api":                   "/",
	}
	for in, want := range tests {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, in, nil))
		assert.Equal(t, want, rec.Body.String(), in)
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})
	m.Use(middleware.RequestID())

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ppe", nil))

	assert.Equal(t, "api", rec.Header().Get("X-Module"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestModuleChainBuiltOnce(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))

	built := 0
	m.Use(func(next http.Handler) http.Handler {
		built++
		return next
	})

	for range 2 {
		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ppe", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, built)

	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Late", "1")
			next.ServeHTTP(w, r)
		})
	})
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ppe", nil))
	assert.Empty(t, rec.Header().Get("X-Late"))
	assert.Equal(t, 1, built)
}

func TestRouter(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/api", http.HandlerFunc(echoPath)))
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok")
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/exams", http.StatusOK, "/exams"},
		{"/api/exams/", http.StatusOK, "/exams"},
		{"/healthz", http.StatusOK, "ok"},
		{"/apiary", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
