package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ─────────────────────────────────────────────
// auth + userScope
// ─────────────────────────────────────────────

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
	}{
		{"no header", nil},
		{"no scheme", http.Header{"Authorization": {"valid"}}},
		{"empty token", http.Header{"Authorization": {"Bearer "}}},
		{"invalid token", bearer("forged")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newTestHandler(nil, nil, ""), http.MethodGet, "/api/users/7/passwords", nil, tt.header)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, errorBody(t, rr))
		})
	}
}

func TestAuth_StoresUserID(t *testing.T) {
	h := newTestHandler(nil, nil, "")

	var got int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetUserIDFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid")

	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(7), got)
}

func TestUserScope(t *testing.T) {
	items := &fakeItemService{
		listFn: func(context.Context, int64) ([]models.CipheredItem, error) { return nil, nil },
	}
	h := newTestHandler(nil, items, "")

	rr := do(t, h, http.MethodGet, "/api/users/8/passwords", nil, bearer("valid"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, app.MsgAccessDenied, errorBody(t, rr))

	rr = do(t, h, http.MethodGet, "/api/users/abc/passwords", nil, bearer("valid"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgNoUserIDProvided, errorBody(t, rr))

	rr = do(t, h, http.MethodGet, "/api/users/7/passwords", nil, bearer("valid"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ─────────────────────────────────────────────
// withIntegrityCheck
// ─────────────────────────────────────────────

func TestIntegrityCheck(t *testing.T) {
	h := newTestHandler(nil, nil, "hash-key")
	body := []byte(`{"username":"alice","password":"pw"}`)

	tests := []struct {
		name       string
		body       []byte
		hash       string
		wantNext   bool
		wantStatus int
	}{
		{"valid hash", body, h.hasher.SumHex(body), true, http.StatusOK},
		{"wrong hash", body, h.hasher.SumHex([]byte("other")), false, http.StatusBadRequest},
		{"missing hash", body, "", false, http.StatusBadRequest},
		{"not hex", body, "zz", false, http.StatusBadRequest},
		{"empty body", nil, "", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []byte
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = io.ReadAll(r.Body)
			})

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			if tt.hash != "" {
				req.Header.Set(utils.HashHeader, tt.hash)
			}
			rr := httptest.NewRecorder()

			h.withIntegrityCheck(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantNext {
				assert.Equal(t, len(tt.body), len(seen), "body must be restored for the next handler")
			} else {
				assert.Equal(t, app.MsgRequestHashMismatch, errorBody(t, rr))
			}
		})
	}
}

func TestIntegrityCheck_DisabledWithoutKey(t *testing.T) {
	h := newTestHandler(nil, nil, "")
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	req.Header.Set(utils.HashHeader, "garbage")
	h.withIntegrityCheck(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestIntegrityCheck_ThroughRouter(t *testing.T) {
	auth := &fakeAuthService{
		loginFn: func(context.Context, models.Credentials) (models.User, error) {
			return models.User{UserID: 7}, nil
		},
	}
	items := &fakeItemService{
		listFn: func(context.Context, int64) ([]models.CipheredItem, error) { return nil, nil },
	}
	h := newTestHandler(auth, items, "hash-key")

	rr := do(t, h, http.MethodPost, "/api/auth/login", aliceCredentials, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/auth/login", aliceCredentials, http.Header{utils.HashHeader: {"00"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ─────────────────────────────────────────────
// withTraceID
// ─────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := newTestHandler(nil, nil, "")

	var ctxTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxTraceID, _ = r.Context().Value(utils.TraceIDCtxKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "my-trace")
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)

	assert.Equal(t, "my-trace", rr.Header().Get(traceIDHeader))
	assert.Equal(t, "my-trace", ctxTraceID)

	rr = httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	generated := rr.Header().Get(traceIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, ctxTraceID)
}

func TestWithTraceID_UniqueUnderConcurrency(t *testing.T) {
	h := newTestHandler(nil, nil, "")
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			ids <- rr.Header().Get(traceIDHeader)
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate trace id %s", id)
		seen[id] = true
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "abc-123")

	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := newTestHandler(nil, nil, "")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/7/passwords", bytes.NewReader([]byte(`{"password":"secret"}`)))
	req = req.WithContext(l.WithContext(req.Context()))

	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/api/users/7/passwords"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":5`)
	assert.NotContains(t, out, "secret")
}

func TestWithLogging_EmptyResponseLogsOK(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	h := newTestHandler(nil, nil, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/users/7/passwords/abc", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	h.withLogging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"size":0`)
}

// ─────────────────────────────────────────────
// withSecurityHeaders
// ─────────────────────────────────────────────

func TestSecurityHeaders_OnEveryResponse(t *testing.T) {
	h := newTestHandler(nil, nil, "")

	for _, rr := range []*httptest.ResponseRecorder{
		do(t, h, http.MethodGet, "/api/health", nil, nil),
		do(t, h, http.MethodGet, "/api/users/7/passwords", nil, nil),
		do(t, h, http.MethodGet, "/nowhere", nil, nil),
	} {
		for k, v := range securityHeaders {
			assert.Equal(t, v, rr.Header().Get(k), k)
		}
	}
}
