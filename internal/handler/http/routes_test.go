package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_UnknownRoute(t *testing.T) {
	rr := do(t, newTestHandler(nil, nil, ""), http.MethodGet, "/api/unknown", nil, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInit_WrongMethod(t *testing.T) {
	rr := do(t, newTestHandler(nil, nil, ""), http.MethodGet, "/api/auth/login", nil, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/users/7/passwords"},
		{http.MethodPost, "/api/users/7/passwords"},
		{http.MethodPut, "/api/users/7/passwords/i1"},
		{http.MethodDelete, "/api/users/7/passwords/i1"},
		{http.MethodPut, "/api/users/7/password"},
	}

	h := newTestHandler(nil, nil, "")
	for _, rt := range routes {
		rr := do(t, h, rt.method, rt.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", rt.method, rt.path)
	}
}

func TestInit_TraceIDEchoed(t *testing.T) {
	rr := do(t, newTestHandler(nil, nil, ""), http.MethodGet, "/api/health", nil, http.Header{traceIDHeader: {"t-1"}})

	assert.Equal(t, "t-1", rr.Header().Get(traceIDHeader))
}

func TestInit_RecoversFromPanic(t *testing.T) {
	// nil services make the health handler dereference a nil pointer.
	h := &Handler{logger: newTestHandler(nil, nil, "").logger}

	rr := do(t, h, http.MethodGet, "/api/health", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
