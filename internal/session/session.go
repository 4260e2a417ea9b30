// ABOUTME: Session controller state machine for the botdeck client
// ABOUTME: Sole writer of the credential store; serializes login/logout/refresh

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/botdeck/botdeck/internal/api"
	"github.com/botdeck/botdeck/internal/credstore"
)

// Status is the session state.
type Status int

const (
	// StatusAuthenticating is the initial state, until the startup credential
	// check resolves.
	StatusAuthenticating Status = iota

	// StatusUnauthenticated means no valid session exists.
	StatusUnauthenticated

	// StatusAuthenticated means a backend-verified user profile is held.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	// ErrNotAuthenticated is returned by operations that need stored
	// credentials when none exist.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthExpired is returned when a refresh attempt fails; the session
	// has already been forced to a clean unauthenticated state.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrSuperseded is returned when an operation's result arrived after a
	// concurrent session change and was discarded.
	ErrSuperseded = errors.New("superseded by a concurrent session change")
)

// Controller owns the in-memory session state and is the only component that
// mutates the credential store. Safe for concurrent use.
type Controller struct {
	client *api.Client
	creds  credstore.Store
	logger *slog.Logger

	mu          sync.Mutex
	status      Status
	user        *User
	gen         uint64 // bumped on every store write; guards late results
	initialized bool
	listeners   []func()
}

// New creates a controller in the Authenticating state. Call Init to run the
// startup credential check.
func New(client *api.Client, creds credstore.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client: client,
		creds:  creds,
		logger: logger.With("component", "session"),
		status: StatusAuthenticating,
	}
}

// Status returns the current session status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// User returns the authenticated profile, or nil.
func (c *Controller) User() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// OnChange registers fn to run after every session state change. Callbacks
// run synchronously, outside the controller's lock.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Dispose detaches listeners and invalidates in-flight operations. Late
// results arriving after Dispose are discarded.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.listeners = nil
}

// Init runs the startup credential check: with a stored pair it verifies the
// session via GET /auth/me, otherwise it settles as unauthenticated. Any
// failure, including a network one, logs out locally; the next user-initiated
// login establishes a fresh session. Runs at most once per controller.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	start := c.gen
	_, ok := c.creds.Load()
	c.mu.Unlock()

	if !ok {
		c.settle(start, StatusUnauthenticated, nil, true)
		return
	}

	var user User
	if err := c.client.Get(ctx, "/auth/me", &user); err != nil {
		c.logger.Warn("startup session check failed, logging out locally", "error", err)
		c.settle(start, StatusUnauthenticated, nil, true)
		return
	}

	c.logger.Info("session restored", "user", user.Username)
	c.settle(start, StatusAuthenticated, &user, false)
}

// Login exchanges credentials for a token pair, persists it, and fetches the
// user profile. On any failure the credential store is left exactly as it
// was and the session stays unauthenticated.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.mu.Lock()
	start := c.gen
	prev, hadPrev := c.creds.Load()
	c.mu.Unlock()

	var tokens tokenResponse
	if err := c.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &tokens); err != nil {
		return err
	}

	// Persist the pair first; the profile fetch below authenticates with it.
	// The save bumps the generation and re-baselines start so a concurrent
	// writer supersedes this login, and this login supersedes any operation
	// still holding the old generation.
	c.mu.Lock()
	if c.gen != start {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err := c.creds.Save(credstore.Pair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("persisting credentials: %w", err)
	}
	c.gen++
	start = c.gen
	c.mu.Unlock()

	var user User
	if err := c.client.Get(ctx, "/auth/me", &user); err != nil {
		// Roll the store back so a failed login leaves no trace.
		c.mu.Lock()
		if c.gen == start {
			if hadPrev {
				c.creds.Save(prev)
			} else {
				c.creds.Clear()
			}
			c.gen++
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.gen != start {
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.status = StatusAuthenticated
	c.user = &user
	c.gen++
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Info("logged in", "user", user.Username)
	notify(listeners)
	return nil
}

// Logout invalidates the session. The backend call is best-effort remote
// invalidation: its failure is ignored by policy, and the local session is
// always cleared.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		c.logger.Debug("remote logout failed, clearing locally anyway", "error", err)
	}

	c.mu.Lock()
	clearErr := c.creds.Clear()
	c.status = StatusUnauthenticated
	c.user = nil
	c.gen++
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Info("logged out")
	notify(listeners)
	return clearErr
}

// Register creates an account and, on success, logs straight in with the
// same credentials. Input is validated locally before any request goes out;
// a registration failure never attempts the login.
func (c *Controller) Register(ctx context.Context, input RegisterInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	req := registerRequest{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		FullName: input.FullName,
	}
	if err := c.client.Post(ctx, "/auth/register", req, nil); err != nil {
		return err
	}

	return c.Login(ctx, input.Email, input.Password)
}

// Refresh exchanges the stored refresh token for a new pair. With no stored
// token it fails immediately without a network call. A backend failure
// forces the logout transition so a failed refresh is never half-applied.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	start := c.gen
	pair, ok := c.creds.Load()
	c.mu.Unlock()

	if !ok {
		return ErrNotAuthenticated
	}

	var tokens tokenResponse
	if err := c.client.Post(ctx, "/auth/refresh", refreshRequest{RefreshToken: pair.RefreshToken}, &tokens); err != nil {
		c.logger.Warn("token refresh failed, forcing logout", "error", err)
		c.forceLogout(start)
		return fmt.Errorf("%w: %s", ErrAuthExpired, api.DetailOf(err))
	}

	c.mu.Lock()
	if c.gen != start {
		// A concurrent logout (or login) won; do not resurrect credentials.
		c.mu.Unlock()
		c.logger.Debug("discarding refresh result after concurrent session change")
		return ErrSuperseded
	}
	err := c.creds.Save(credstore.Pair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
	c.gen++
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("persisting refreshed credentials: %w", err)
	}
	return nil
}

// EnsureFresh refreshes the session when the stored access token has expired
// (or is about to). Opaque tokens pass through untouched.
func (c *Controller) EnsureFresh(ctx context.Context) error {
	pair, ok := c.creds.Load()
	if !ok {
		return ErrNotAuthenticated
	}
	if !tokenExpired(pair.AccessToken, refreshLeeway) {
		return nil
	}
	c.logger.Debug("access token expired, refreshing")
	return c.Refresh(ctx)
}

// ForgotPassword requests a password-reset email. The backend answers the
// same way whether or not the account exists.
func (c *Controller) ForgotPassword(ctx context.Context, email string) error {
	return c.client.Post(ctx, "/auth/forgot-password", forgotPasswordRequest{Email: email}, nil)
}

// ResetPassword redeems a reset token for a new password. The new password
// is validated locally first. Stored credentials are left untouched:
// sessions logged in elsewhere keep their refresh tokens.
func (c *Controller) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	return c.client.Post(ctx, "/auth/reset-password", resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

// Verify asks the backend whether the current access token is valid.
func (c *Controller) Verify(ctx context.Context) (bool, string, error) {
	var out verifyResponse
	if err := c.client.Get(ctx, "/auth/verify", &out); err != nil {
		return false, "", err
	}
	return out.Valid, out.UserID, nil
}

// settle applies the outcome of the startup check, discarding it when the
// session generation moved on in the meantime.
func (c *Controller) settle(start uint64, status Status, user *User, clear bool) {
	c.mu.Lock()
	if c.gen != start {
		c.mu.Unlock()
		return
	}
	if clear {
		c.creds.Clear()
	}
	c.status = status
	c.user = user
	c.gen++
	listeners := c.snapshotListeners()
	c.mu.Unlock()
	notify(listeners)
}

// forceLogout performs the logout transition without a backend call, unless
// the session generation already moved on.
func (c *Controller) forceLogout(start uint64) {
	c.mu.Lock()
	if c.gen != start {
		c.mu.Unlock()
		return
	}
	c.creds.Clear()
	c.status = StatusUnauthenticated
	c.user = nil
	c.gen++
	listeners := c.snapshotListeners()
	c.mu.Unlock()
	notify(listeners)
}

// snapshotListeners must be called with c.mu held.
func (c *Controller) snapshotListeners() []func() {
	out := make([]func(), len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
