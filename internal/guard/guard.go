// ABOUTME: Route guard deciding access to dashboard pages by session state
// ABOUTME: Redirects carry a return_to parameter; auth pages never redirect to themselves

package guard

import (
	"net/http"
	"net/url"

	"github.com/botdeck/botdeck/internal/session"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// HomePath is where authenticated visitors are sent away from auth pages.
const HomePath = "/"

// authPaths are reachable without a session. An authenticated visitor is
// redirected off them instead.
var authPaths = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
}

// Decision is the guard's verdict for a request.
type Decision int

const (
	// Allow serves the requested page.
	Allow Decision = iota

	// Wait holds the request on a neutral page until the startup session
	// check resolves. No redirect is issued in this state.
	Wait

	// ToLogin redirects to the login page, preserving the requested path.
	ToLogin

	// ToHome redirects an authenticated visitor off an auth page.
	ToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case ToLogin:
		return "to-login"
	case ToHome:
		return "to-home"
	default:
		return "unknown"
	}
}

// IsAuthPath reports whether path is reachable without a session.
func IsAuthPath(path string) bool {
	return authPaths[path]
}

// Decide maps a session status and request path to a verdict. An
// unauthenticated visitor already on an auth page is allowed through, never
// redirected, so the guard cannot loop.
func Decide(status session.Status, path string) Decision {
	onAuthPage := IsAuthPath(path)
	switch status {
	case session.StatusAuthenticating:
		if onAuthPage {
			return Allow
		}
		return Wait
	case session.StatusUnauthenticated:
		if onAuthPage {
			return Allow
		}
		return ToLogin
	case session.StatusAuthenticated:
		if onAuthPage {
			return ToHome
		}
		return Allow
	default:
		return ToLogin
	}
}

// LoginRedirectTarget builds the login URL carrying the originally requested
// URI so a successful login can land the visitor where they were headed.
func LoginRedirectTarget(requestURI string) string {
	if requestURI == "" || requestURI == HomePath {
		return LoginPath
	}
	return LoginPath + "?return_to=" + url.QueryEscape(requestURI)
}

// ReturnTo extracts a safe post-login destination from the request. Only
// same-origin absolute paths are honored; anything else falls back to home.
func ReturnTo(r *http.Request) string {
	target := r.URL.Query().Get("return_to")
	if target == "" {
		target = r.PostFormValue("return_to")
	}
	if len(target) < 2 || target[0] != '/' || target[1] == '/' {
		return HomePath
	}
	return target
}

// StatusSource supplies the current session status. *session.Controller
// satisfies it.
type StatusSource interface {
	Status() session.Status
}

// Middleware applies Decide to every request, redirecting or holding as the
// verdict requires. waiting renders the neutral holding page; a nil waiting
// falls back to a plain 200.
func Middleware(source StatusSource, waiting http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Decide(source.Status(), r.URL.Path) {
			case Wait:
				if waiting != nil {
					waiting.ServeHTTP(w, r)
					return
				}
				w.WriteHeader(http.StatusOK)
			case ToLogin:
				http.Redirect(w, r, LoginRedirectTarget(r.URL.RequestURI()), http.StatusSeeOther)
			case ToHome:
				http.Redirect(w, r, HomePath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
