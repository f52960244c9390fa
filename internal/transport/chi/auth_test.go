package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authRequest(t *testing.T, mw func(http.Handler) http.Handler, path, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)
	return rec
}

func TestBearerAuth_DisabledWithoutKeys(t *testing.T) {
	mw := BearerAuthMiddleware(nil)
	if rec := authRequest(t, mw, "/v1/query", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want pass-through when no keys configured", rec.Code)
	}
}

func TestBearerAuth_ValidKey(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	if rec := authRequest(t, mw, "/v1/query", "Bearer secret-key"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with a valid key", rec.Code)
	}
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	if rec := authRequest(t, mw, "/v1/query", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without authorization", rec.Code)
	}
}

func TestBearerAuth_WrongScheme(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	if rec := authRequest(t, mw, "/v1/query", "Basic c2VjcmV0"); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for non-Bearer scheme", rec.Code)
	}
}

func TestBearerAuth_InvalidKey(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	if rec := authRequest(t, mw, "/v1/query", "Bearer wrong-key"); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for an unknown key", rec.Code)
	}
}

func TestBearerAuth_ExemptPaths(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret-key"})
	for _, path := range []string{"/health", "/metrics"} {
		if rec := authRequest(t, mw, path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, must bypass auth", path, rec.Code)
		}
	}
}

func TestBearerAuth_EmptyKeysFiltered(t *testing.T) {
	// Blank entries in the key list must not enable an empty bearer token,
	// and a list of only blanks means auth stays disabled.
	mw := BearerAuthMiddleware([]string{""})
	if rec := authRequest(t, mw, "/v1/query", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d, blank-only key list must disable auth", rec.Code)
	}

	mw = BearerAuthMiddleware([]string{"real-key", ""})
	if rec := authRequest(t, mw, "/v1/query", "Bearer "); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, empty bearer token must be rejected", rec.Code)
	}
}
