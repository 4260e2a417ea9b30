// ABOUTME: Tests for local access-token expiry inspection
// ABOUTME: Uses signed HS256 tokens; the parser never checks signatures

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  bool
	}{
		{
			name: "valid for an hour",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
			},
			want: false,
		},
		{
			name: "already expired",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
			},
			want: true,
		},
		{
			name: "expires inside the leeway window",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.MapClaims{"exp": time.Now().Add(10 * time.Second).Unix()})
			},
			want: true,
		},
		{
			name: "no exp claim",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.MapClaims{"sub": "1"})
			},
			want: false,
		},
		{
			name:  "opaque token",
			token: func(t *testing.T) string { return "not-a-jwt" },
			want:  false,
		},
		{
			name:  "empty token",
			token: func(t *testing.T) string { return "" },
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.token(t), refreshLeeway); got != tt.want {
				t.Errorf("tokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
