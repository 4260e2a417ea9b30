// Package session owns the client-side authentication lifecycle for botdeck.
//
// A Controller is the single source of truth for "who is logged in" and the
// only component allowed to write the credential store. It is a plain state
// machine, independent of any UI:
//
//   - Authenticating: initial state, until the startup credential check
//     resolves (Init runs it exactly once per Controller).
//   - Unauthenticated: no valid session.
//   - Authenticated: a backend-verified user profile is held in memory.
//
// # Operations
//
//	Login(ctx, email, password)   POST /auth/login, persist pair, fetch profile
//	Logout(ctx)                   best-effort remote invalidation, then local clear
//	Register(ctx, input)          POST /auth/register, then auto-login
//	Refresh(ctx)                  exchange the refresh token for a new pair
//	ForgotPassword / ResetPassword / Verify
//
// # Consistency
//
// The three credential-store writers (login, logout, refresh) serialize their
// store-write phases through one mutex, and every write bumps a generation
// counter. An operation that started against an older generation discards its
// result instead of applying it, so a refresh resolving after a concurrent
// logout can never resurrect cleared credentials.
//
// A failed refresh always forces the logout transition; the session is never
// left half-applied. Logout's backend call is best-effort remote invalidation
// by policy: its failure is logged and ignored, and logout always succeeds
// locally.
package session
