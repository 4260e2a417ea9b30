// ABOUTME: Template rendering functions for the dashboard UI
// ABOUTME: Loads templates from embedded filesystem and renders them

package dashboard

import (
	"html/template"
	"net/http"

	"github.com/botdeck/botdeck/internal/api"
	"github.com/botdeck/botdeck/internal/botapi"
	"github.com/botdeck/botdeck/internal/session"
)

// Template data types. The base template shows the nav bar only when User is
// set; the auth screens leave it nil.
type loginData struct {
	Title    string
	User     *session.User
	Error    string
	ReturnTo string
}

type registerData struct {
	Title string
	User  *session.User
	Error string
	Form  session.RegisterInput
}

type forgotPasswordData struct {
	Title string
	User  *session.User
	Error string
	Sent  bool
}

type resetPasswordData struct {
	Title string
	User  *session.User
	Error string
	Token string
}

type dashboardData struct {
	Title string
	User  *session.User
	Bots  []botapi.Bot
}

type botDetailData struct {
	Title  string
	User   *session.User
	Bot    *botapi.Bot
	Status *botapi.BotStatus
}

type conversationsData struct {
	Title         string
	User          *session.User
	Conversations []botapi.Conversation
	BotID         string
}

type renderedMessage struct {
	Role string
	HTML template.HTML
}

type conversationDetailData struct {
	Title        string
	User         *session.User
	Conversation *botapi.Conversation
	Messages     []renderedMessage
}

type errorData struct {
	Title   string
	User    *session.User
	Message string
}

// renderLoginPage renders the login page
func (s *Server) renderLoginPage(w http.ResponseWriter, errorMsg, returnTo string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/login.html"))

	data := loginData{
		Title:    "Sign in",
		Error:    errorMsg,
		ReturnTo: returnTo,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render login page", "error", err)
	}
}

// renderRegisterPage renders the account creation page
func (s *Server) renderRegisterPage(w http.ResponseWriter, errorMsg string, form session.RegisterInput) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/register.html"))

	data := registerData{
		Title: "Create account",
		Error: errorMsg,
		Form:  form,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render register page", "error", err)
	}
}

// renderForgotPasswordPage renders the reset-request page
func (s *Server) renderForgotPasswordPage(w http.ResponseWriter, errorMsg string, sent bool) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/forgot_password.html"))

	data := forgotPasswordData{
		Title: "Forgot password",
		Error: errorMsg,
		Sent:  sent,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render forgot password page", "error", err)
	}
}

// renderResetPasswordPage renders the new-password form
func (s *Server) renderResetPasswordPage(w http.ResponseWriter, errorMsg, token string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/reset_password.html"))

	data := resetPasswordData{
		Title: "Reset password",
		Error: errorMsg,
		Token: token,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render reset password page", "error", err)
	}
}

// renderLoadingPage renders the neutral holding page shown while the startup
// session check is still running
func (s *Server) renderLoadingPage(w http.ResponseWriter) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/loading.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, errorData{Title: "Loading"}); err != nil {
		s.logger.Error("failed to render loading page", "error", err)
	}
}

// renderDashboard renders the bot overview
func (s *Server) renderDashboard(w http.ResponseWriter, user *session.User, bots []botapi.Bot) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/dashboard.html"))

	data := dashboardData{
		Title: "Bots",
		User:  user,
		Bots:  bots,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render dashboard", "error", err)
	}
}

// renderBotDetail renders a single bot with its runtime status
func (s *Server) renderBotDetail(w http.ResponseWriter, user *session.User, bot *botapi.Bot, status *botapi.BotStatus) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/bot_detail.html"))

	data := botDetailData{
		Title:  bot.Name,
		User:   user,
		Bot:    bot,
		Status: status,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render bot detail", "error", err)
	}
}

// renderConversations renders the conversation list
func (s *Server) renderConversations(w http.ResponseWriter, user *session.User, convs []botapi.Conversation, botID string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/conversations.html"))

	data := conversationsData{
		Title:         "Conversations",
		User:          user,
		Conversations: convs,
		BotID:         botID,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render conversations", "error", err)
	}
}

// renderConversationDetail renders a conversation with its message history
func (s *Server) renderConversationDetail(w http.ResponseWriter, user *session.User, conv *botapi.Conversation, msgs []botapi.Message) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/conversation_detail.html"))

	rendered := make([]renderedMessage, 0, len(msgs))
	for _, m := range msgs {
		rendered = append(rendered, renderedMessage{
			Role: m.Role,
			HTML: renderMarkdown(m.Content),
		})
	}

	data := conversationDetailData{
		Title:        "Conversation",
		User:         user,
		Conversation: conv,
		Messages:     rendered,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render conversation detail", "error", err)
	}
}

// renderErrorPage renders a backend failure as a page
func (s *Server) renderErrorPage(w http.ResponseWriter, err error) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/error.html"))

	data := errorData{
		Title:   "Error",
		Message: api.DetailOf(err),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status := api.StatusOf(err); status >= 400 {
		w.WriteHeader(status)
	} else {
		w.WriteHeader(http.StatusBadGateway)
	}
	if execErr := tmpl.Execute(w, data); execErr != nil {
		s.logger.Error("failed to render error page", "error", execErr)
	}
}
