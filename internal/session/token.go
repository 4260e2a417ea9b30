// ABOUTME: Local access-token expiry inspection
// ABOUTME: Parses the exp claim without verification; signatures are server-side

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway refreshes slightly early so a token does not expire while a
// request carrying it is in flight.
const refreshLeeway = 30 * time.Second

// tokenExpired reports whether the access token's exp claim has passed (or
// will pass within leeway). Tokens that are not parseable JWTs, or carry no
// exp claim, are treated as not expired: the backend is the authority and
// will reject them with a 401 if they are stale.
func tokenExpired(token string, leeway time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(leeway).After(exp.Time)
}
