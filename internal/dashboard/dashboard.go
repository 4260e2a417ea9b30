// ABOUTME: Server-rendered dashboard for managing bots and conversations
// ABOUTME: Pages are gated by the route guard; forms drive the session controller

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/botdeck/botdeck/internal/api"
	"github.com/botdeck/botdeck/internal/botapi"
	"github.com/botdeck/botdeck/internal/guard"
	"github.com/botdeck/botdeck/internal/session"
)

// Server handles dashboard routes. All pages except the auth screens require
// an authenticated session; the route guard enforces that.
type Server struct {
	session *session.Controller
	bots    *botapi.Client
	logger  *slog.Logger
}

// New creates a dashboard server over a session controller and resource client.
func New(ctrl *session.Controller, bots *botapi.Client) *Server {
	return &Server{
		session: ctrl,
		bots:    bots,
		logger:  slog.Default().With("component", "dashboard"),
	}
}

// Handler returns the full dashboard handler with the route guard applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	waiting := http.HandlerFunc(s.handleLoadingPage)
	return guard.Middleware(s.session, waiting)(mux)
}

// registerRoutes registers all dashboard routes on the given mux
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Auth screens (reachable without a session)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /forgot-password", s.handleForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", s.handleForgotPassword)
	mux.HandleFunc("GET /reset-password", s.handleResetPasswordPage)
	mux.HandleFunc("POST /reset-password", s.handleResetPassword)

	// Session
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Bots
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /bots/{id}", s.handleBotDetail)
	mux.HandleFunc("POST /bots/{id}/start", s.handleBotStart)
	mux.HandleFunc("POST /bots/{id}/stop", s.handleBotStop)
	mux.HandleFunc("POST /bots/{id}/restart", s.handleBotRestart)

	// Conversations
	mux.HandleFunc("GET /conversations", s.handleConversations)
	mux.HandleFunc("GET /conversations/{id}", s.handleConversationDetail)
	mux.HandleFunc("POST /conversations/{id}/delete", s.handleConversationDelete)

	s.logger.Info("dashboard routes registered")
}

func (s *Server) handleLoadingPage(w http.ResponseWriter, r *http.Request) {
	s.renderLoadingPage(w)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLoginPage(w, "", guard.ReturnTo(r))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	returnTo := guard.ReturnTo(r)

	if err := s.session.Login(r.Context(), email, password); err != nil {
		s.logger.Debug("login failed", "error", err)
		s.renderLoginPage(w, api.DetailOf(err), returnTo)
		return
	}

	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.renderRegisterPage(w, "", session.RegisterInput{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	input := session.RegisterInput{
		Email:           r.PostFormValue("email"),
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		FullName:        r.PostFormValue("full_name"),
	}

	if err := s.session.Register(r.Context(), input); err != nil {
		// Re-render with the form values so the visitor only fixes the
		// offending field. Passwords are never echoed back.
		input.Password = ""
		input.ConfirmPassword = ""
		s.renderRegisterPage(w, errorMessage(err), input)
		return
	}

	http.Redirect(w, r, guard.HomePath, http.StatusSeeOther)
}

func (s *Server) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.renderForgotPasswordPage(w, "", false)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	if err := s.session.ForgotPassword(r.Context(), email); err != nil {
		s.renderForgotPasswordPage(w, api.DetailOf(err), false)
		return
	}
	s.renderForgotPasswordPage(w, "", true)
}

func (s *Server) handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.renderResetPasswordPage(w, "", r.URL.Query().Get("token"))
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PostFormValue("token")
	newPassword := r.PostFormValue("new_password")

	if err := s.session.ResetPassword(r.Context(), token, newPassword); err != nil {
		s.renderResetPasswordPage(w, errorMessage(err), token)
		return
	}

	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(r.Context()); err != nil {
		s.logger.Warn("clearing credentials failed", "error", err)
	}
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	bots, err := s.bots.ListBots(r.Context())
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}
	s.renderDashboard(w, s.session.User(), bots)
}

func (s *Server) handleBotDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	bot, err := s.bots.GetBot(r.Context(), id)
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}

	// Status is advisory; the detail page still renders if the probe fails
	status, err := s.bots.BotStatus(r.Context(), id)
	if err != nil {
		s.logger.Debug("bot status unavailable", "bot_id", id, "error", err)
		status = nil
	}

	s.renderBotDetail(w, s.session.User(), bot, status)
}

func (s *Server) handleBotStart(w http.ResponseWriter, r *http.Request) {
	s.botLifecycleAction(w, r, s.bots.StartBot)
}

func (s *Server) handleBotStop(w http.ResponseWriter, r *http.Request) {
	s.botLifecycleAction(w, r, s.bots.StopBot)
}

func (s *Server) handleBotRestart(w http.ResponseWriter, r *http.Request) {
	s.botLifecycleAction(w, r, s.bots.RestartBot)
}

func (s *Server) botLifecycleAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) error) {
	id := r.PathValue("id")
	if err := action(r.Context(), id); err != nil {
		s.renderErrorPage(w, err)
		return
	}
	http.Redirect(w, r, "/bots/"+id, http.StatusSeeOther)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	botID := r.URL.Query().Get("bot_id")

	convs, err := s.bots.ListConversations(r.Context(), botID)
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}
	s.renderConversations(w, s.session.User(), convs, botID)
}

func (s *Server) handleConversationDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	conv, err := s.bots.GetConversation(r.Context(), id)
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}

	msgs, err := s.bots.Messages(r.Context(), id)
	if err != nil {
		s.renderErrorPage(w, err)
		return
	}

	s.renderConversationDetail(w, s.session.User(), conv, msgs)
}

func (s *Server) handleConversationDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.bots.DeleteConversation(r.Context(), id); err != nil {
		s.renderErrorPage(w, err)
		return
	}
	http.Redirect(w, r, "/conversations", http.StatusSeeOther)
}

// errorMessage prefers the local validation message over the generic backend
// detail extraction.
func errorMessage(err error) string {
	var valErr *session.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return api.DetailOf(err)
}
