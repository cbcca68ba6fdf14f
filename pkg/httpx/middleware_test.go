package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/pkg/httpx"
	"github.com/trackware/gatekeep/pkg/jwtx"
)

var (
	testSecret   = []byte("middleware-test-secret")
	testVerifier = &jwtx.Verifier{Secret: testSecret, Issuer: "gatekeep"}
	testSigner   = &jwtx.Signer{Secret: testSecret, Issuer: "gatekeep", TTL: time.Hour}
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	h := httpx.Chain(okHandler(), httpx.AuthnMiddleware(testVerifier))

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		raw, err := testSigner.Sign("ops", []string{"admin:read"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		forger := &jwtx.Signer{Secret: []byte("wrong"), Issuer: "gatekeep", TTL: time.Hour}
		raw, err := forger.Sign("ops", []string{"admin:write"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := &jwtx.Signer{Secret: testSecret, Issuer: "gatekeep", TTL: -time.Minute}
		raw, err := expired.Sign("ops", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAnyScope(t *testing.T) {
	h := httpx.Chain(okHandler(),
		httpx.AuthnMiddleware(testVerifier),
		httpx.RequireAnyScope("admin:write"),
	)

	t.Run("allows a matching scope", func(t *testing.T) {
		raw, err := testSigner.Sign("ops", []string{"admin:read", "admin:write"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids without the scope", func(t *testing.T) {
		raw, err := testSigner.Sign("viewer", []string{"admin:read"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "insufficient_scope")
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	}
	h := httpx.Chain(okHandler(), httpx.RateLimitByIP(cfg))

	doReq := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/resolve/acme.com", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("limits after the burst is spent", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doReq("198.51.100.1").Code)
		require.Equal(t, http.StatusOK, doReq("198.51.100.1").Code)

		rec := doReq("198.51.100.1")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("keys are independent per ip", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doReq("198.51.100.2").Code)
	})

	t.Run("honours x-forwarded-for", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/resolve/acme.com", nil)
		req.RemoteAddr = "198.51.100.3:12345"
		req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		// Shares the exhausted bucket of the forwarded client address.
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "5")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "7")

	cfg := httpx.ParseRateLimitFromEnv("TEST", httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	})
	require.Equal(t, 5, cfg.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, 7, cfg.Burst)

	t.Setenv("RATELIMIT_TEST_REQUESTS", "garbage")
	cfg = httpx.ParseRateLimitFromEnv("TEST", httpx.RateLimitConfig{RequestsPerWindow: 9, Window: time.Minute, Burst: 9})
	require.Equal(t, 9, cfg.RequestsPerWindow, "unparseable values fall back to the default")
}
