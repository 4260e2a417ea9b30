// ABOUTME: Tests for the dashboard HTTP surface
// ABOUTME: Drives full login/logout round trips against a fake backend

package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botdeck/botdeck/internal/api"
	"github.com/botdeck/botdeck/internal/botapi"
	"github.com/botdeck/botdeck/internal/credstore"
	"github.com/botdeck/botdeck/internal/session"
)

// newDashboard wires a dashboard server against a fake backend and runs the
// startup session check so the guard is past the Authenticating state.
func newDashboard(t *testing.T, backend http.Handler) (*Server, *session.Controller) {
	t.Helper()
	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	store := credstore.NewMemStore()
	client := api.New(api.Config{
		BaseURL: upstream.URL,
		Tokens:  api.StoreTokens(store),
	})
	ctrl := session.New(client, store, nil)
	ctrl.Init(t.Context())

	return New(ctrl, botapi.NewClient(client)), ctrl
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		if req["password"] != "Sup3r!secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "a", "refresh_token": "r"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "1", "email": "a@b.com", "username": "alice",
			"is_active": true, "is_superuser": false, "email_verified": true,
			"created_at": "2025-01-02T15:04:05Z",
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /bots", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	return mux
}

func TestUnauthenticatedVisitRedirectsToLogin(t *testing.T) {
	srv, _ := newDashboard(t, authBackend(t))
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversations", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?return_to=%2Fconversations", rec.Header().Get("Location"))
}

func TestLoginPageRendersWithoutRedirect(t *testing.T) {
	srv, _ := newDashboard(t, authBackend(t))
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestLoginRoundTrip(t *testing.T) {
	srv, ctrl := newDashboard(t, authBackend(t))
	handler := srv.Handler()

	form := url.Values{
		"email":     {"a@b.com"},
		"password":  {"Sup3r!secret"},
		"return_to": {"/conversations"},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/conversations", rec.Header().Get("Location"))
	assert.Equal(t, session.StatusAuthenticated, ctrl.Status())

	// Now authenticated, the login page bounces home
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginFailureRerendersForm(t *testing.T) {
	srv, ctrl := newDashboard(t, authBackend(t))
	handler := srv.Handler()

	form := url.Values{
		"email":    {"a@b.com"},
		"password": {"wrong"},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "failed login re-renders, no redirect")
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Equal(t, session.StatusUnauthenticated, ctrl.Status())
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	srv, ctrl := newDashboard(t, authBackend(t))
	handler := srv.Handler()

	form := url.Values{"email": {"a@b.com"}, "password": {"Sup3r!secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, session.StatusAuthenticated, ctrl.Status())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, session.StatusUnauthenticated, ctrl.Status())
}

func TestRenderMarkdown(t *testing.T) {
	html := string(renderMarkdown("**bold** and `code`"))
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<code>code</code>")

	// Raw HTML in message content must not pass through
	html = string(renderMarkdown(`<script>alert(1)</script>`))
	assert.NotContains(t, html, "<script>")
}
