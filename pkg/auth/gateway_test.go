package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateway(cfg SecConfig) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-Role", r.Header.Get("X-Role-Name"))
		w.WriteHeader(http.StatusOK)
	})
	return AuthenticateRequestMiddleware(cfg)(inner)
}

func do(t *testing.T, h http.Handler, method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "127.0.0.1:54321"
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGatewayRejectsMissingCredential(t *testing.T) {
	h := gateway(SecConfig{DemoAuth: true})
	rec := do(t, h, http.MethodGet, "/v1/conversations", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestGatewayDemoToken(t *testing.T) {
	h := gateway(SecConfig{DemoAuth: true})

	rec := do(t, h, http.MethodGet, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+DemoToken)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "creator", rec.Header().Get("X-Seen-Role"))

	// demo token is only honored when demo auth is enabled
	h2 := gateway(SecConfig{})
	rec2 := do(t, h2, http.MethodGet, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+DemoToken)
	})
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestGatewayAPIKeyHeader(t *testing.T) {
	h := gateway(SecConfig{CreatorKeys: map[string]struct{}{"ck_1": {}}})
	rec := do(t, h, http.MethodGet, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("X-API-Key", "ck_1")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "creator", rec.Header().Get("X-Seen-Role"))
}

func TestGatewayViewerIsReadOnly(t *testing.T) {
	h := gateway(SecConfig{ViewerKeys: map[string]struct{}{"vk_1": {}}})

	get := do(t, h, http.MethodGet, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("X-API-Key", "vk_1")
	})
	assert.Equal(t, http.StatusOK, get.Code)

	post := do(t, h, http.MethodPost, "/v1/conversations/conv_1/messages", func(r *http.Request) {
		r.Header.Set("X-API-Key", "vk_1")
	})
	assert.Equal(t, http.StatusForbidden, post.Code)
}

func TestGatewayAdminPaths(t *testing.T) {
	h := gateway(SecConfig{
		CreatorKeys: map[string]struct{}{"ck_1": {}},
		AdminKeys:   map[string]struct{}{"ak_1": {}},
	})

	denied := do(t, h, http.MethodPost, "/v1/admin/reset", func(r *http.Request) {
		r.Header.Set("X-API-Key", "ck_1")
	})
	assert.Equal(t, http.StatusForbidden, denied.Code)

	allowed := do(t, h, http.MethodPost, "/v1/admin/reset", func(r *http.Request) {
		r.Header.Set("X-API-Key", "ak_1")
	})
	assert.Equal(t, http.StatusOK, allowed.Code)
	assert.Equal(t, "admin", allowed.Header().Get("X-Seen-Role"))
}

func TestGatewayOpenPaths(t *testing.T) {
	h := gateway(SecConfig{})
	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/docs/index.html"} {
		rec := do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestGatewayCORSPreflight(t *testing.T) {
	h := gateway(SecConfig{AllowedOrigins: []string{"https://dash.example.com"}})

	rec := do(t, h, http.MethodOptions, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("Origin", "https://dash.example.com")
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	// unknown origins get no CORS headers
	rec2 := do(t, h, http.MethodOptions, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("Origin", "https://evil.example.com")
	})
	assert.Empty(t, rec2.Header().Get("Access-Control-Allow-Origin"))
}

func TestGatewayIPWhitelist(t *testing.T) {
	h := gateway(SecConfig{
		IPWhitelist: []string{"203.0.113.9"},
		DemoAuth:    true,
	})
	rec := do(t, h, http.MethodGet, "/v1/conversations", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+DemoToken)
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGatewayRateLimit(t *testing.T) {
	h := gateway(SecConfig{
		DemoAuth: true,
		RPS:      1,
		Burst:    1,
	})
	withToken := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+DemoToken) }

	first := do(t, h, http.MethodGet, "/v1/conversations", withToken)
	require.Equal(t, http.StatusOK, first.Code)

	second := do(t, h, http.MethodGet, "/v1/conversations", withToken)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}
