package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestWrapOrder(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Wrap(okHandler(), mk("outer"), mk("inner"))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRequestIDGenerated(t *testing.T) {
	var fromCtx string
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromContext(r.Context())
	}), RequestID())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	assert.Equal(t, id, fromCtx)
}

func TestRequestIDReused(t *testing.T) {
	h := Wrap(okHandler(), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := serve(h, req)

	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
}

func TestRequestIDInvalidReplaced(t *testing.T) {
	h := Wrap(okHandler(), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad\x01id")
	rec := serve(h, req)

	assert.NotEqual(t, "bad\x01id", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	h := Wrap(okHandler(), RateLimit(RateLimitConfig{RPS: 1, Burst: 2}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	assert.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, http.StatusOK, serve(h, req).Code)

	rec := serve(h, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	h := Wrap(okHandler(), RateLimit(RateLimitConfig{RPS: 1, Burst: 1}))

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.0.0.2:1234"

	assert.Equal(t, http.StatusOK, serve(h, first).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, first).Code)
	assert.Equal(t, http.StatusOK, serve(h, second).Code)
}

func TestRateLimitUsesForwardedFor(t *testing.T) {
	h := Wrap(okHandler(), RateLimit(RateLimitConfig{RPS: 1, Burst: 1}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, req).Code)
}

func TestCORSPreflight(t *testing.T) {
	h := Wrap(okHandler(), CORS(CORSConfig{
		AllowOrigins:  []string{"https://shop.example.com"},
		ExposeHeaders: []string{"X-Session-ID"},
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Session-ID")
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := Wrap(okHandler(), CORS(CORSConfig{AllowOrigins: []string{"https://shop.example.com"}}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := serve(h, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSExposesSessionHeader(t *testing.T) {
	h := Wrap(okHandler(), CORS(CORSConfig{ExposeHeaders: []string{"X-Session-ID"}}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := serve(h, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Session-ID", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestRecovery(t *testing.T) {
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Recovery())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
