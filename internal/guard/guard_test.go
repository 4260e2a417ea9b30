// ABOUTME: Tests for the route guard decision table and middleware
// ABOUTME: Verifies return_to handling and that auth pages never redirect to themselves

package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/botdeck/botdeck/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		path   string
		want   Decision
	}{
		{"authenticating holds app pages", session.StatusAuthenticating, "/bots", Wait},
		{"authenticating allows login page", session.StatusAuthenticating, "/login", Allow},
		{"unauthenticated redirected from app page", session.StatusUnauthenticated, "/bots", ToLogin},
		{"unauthenticated redirected from home", session.StatusUnauthenticated, "/", ToLogin},
		{"unauthenticated allowed on login", session.StatusUnauthenticated, "/login", Allow},
		{"unauthenticated allowed on register", session.StatusUnauthenticated, "/register", Allow},
		{"unauthenticated allowed on forgot-password", session.StatusUnauthenticated, "/forgot-password", Allow},
		{"unauthenticated allowed on reset-password", session.StatusUnauthenticated, "/reset-password", Allow},
		{"authenticated allowed on app page", session.StatusAuthenticated, "/bots", Allow},
		{"authenticated sent home from login", session.StatusAuthenticated, "/login", ToHome},
		{"authenticated sent home from register", session.StatusAuthenticated, "/register", ToHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.status, tt.path); got != tt.want {
				t.Errorf("Decide(%v, %q) = %v, want %v", tt.status, tt.path, got, tt.want)
			}
		})
	}
}

func TestLoginRedirectTarget(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/bots/7", "/login?return_to=%2Fbots%2F7"},
		{"/conversations?bot=3", "/login?return_to=%2Fconversations%3Fbot%3D3"},
		{"/", "/login"},
		{"", "/login"},
	}
	for _, tt := range tests {
		if got := LoginRedirectTarget(tt.uri); got != tt.want {
			t.Errorf("LoginRedirectTarget(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestReturnTo(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain path", "/login?return_to=%2Fbots%2F7", "/bots/7"},
		{"missing", "/login", "/"},
		{"absolute url rejected", "/login?return_to=https%3A%2F%2Fevil.example", "/"},
		{"protocol-relative rejected", "/login?return_to=%2F%2Fevil.example", "/"},
		{"bare slash", "/login?return_to=%2F", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := ReturnTo(r); got != tt.want {
				t.Errorf("ReturnTo(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

type fixedStatus session.Status

func (s fixedStatus) Status() session.Status { return session.Status(s) }

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("page"))
	})

	t.Run("unauthenticated app request redirects with return_to", func(t *testing.T) {
		handler := Middleware(fixedStatus(session.StatusUnauthenticated), nil)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bots/7", nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/login?return_to=%2Fbots%2F7" {
			t.Errorf("Location = %q", got)
		}
	})

	t.Run("unauthenticated login request passes through", func(t *testing.T) {
		handler := Middleware(fixedStatus(session.StatusUnauthenticated), nil)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (no redirect from the login page)", rec.Code, http.StatusOK)
		}
		if rec.Header().Get("Location") != "" {
			t.Errorf("unexpected redirect: %q", rec.Header().Get("Location"))
		}
	})

	t.Run("authenticated login request goes home", func(t *testing.T) {
		handler := Middleware(fixedStatus(session.StatusAuthenticated), nil)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/" {
			t.Errorf("Location = %q, want /", got)
		}
	})

	t.Run("authenticating holds without redirect", func(t *testing.T) {
		waiting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("loading"))
		})
		handler := Middleware(fixedStatus(session.StatusAuthenticating), waiting)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bots", nil))

		if rec.Header().Get("Location") != "" {
			t.Errorf("unexpected redirect during startup check: %q", rec.Header().Get("Location"))
		}
		if rec.Body.String() != "loading" {
			t.Errorf("body = %q, want waiting page", rec.Body.String())
		}
	})
}
