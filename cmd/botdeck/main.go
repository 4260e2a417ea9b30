// ABOUTME: Entry point for the botdeck CLI and dashboard
// ABOUTME: Manages sessions, bots, and conversations against the botdeck backend

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/botdeck/botdeck/internal/api"
	"github.com/botdeck/botdeck/internal/botapi"
	"github.com/botdeck/botdeck/internal/config"
	"github.com/botdeck/botdeck/internal/credstore"
	"github.com/botdeck/botdeck/internal/session"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _           _      _           _
| |__   ___ | |_ __| | ___  ___| | __
| '_ \ / _ \| __/ _' |/ _ \/ __| |/ /
| |_) | (_) | || (_| |  __/ (__|   <
|_.__/ \___/ \__\__,_|\___|\___|_|\_\
`

// getConfigPath returns the path to the botdeck config file.
// Priority: BOTDECK_CONFIG env var > XDG_CONFIG_HOME/botdeck/config.toml > ~/.config/botdeck/config.toml
func getConfigPath() string {
	if envPath := os.Getenv("BOTDECK_CONFIG"); envPath != "" {
		return envPath
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "config.toml" // fallback
	}
	return path
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = runInit()
	case "serve":
		err = runServe(ctx)
	case "login":
		err = cmdLogin(ctx)
	case "logout":
		err = cmdLogout(ctx)
	case "register":
		err = cmdRegister(ctx)
	case "me":
		err = cmdMe(ctx)
	case "status":
		err = cmdStatus(ctx)
	case "refresh":
		err = cmdRefresh(ctx)
	case "forgot-password":
		err = cmdForgotPassword(ctx, args)
	case "reset-password":
		err = cmdResetPassword(ctx, args)
	case "bots":
		err = cmdBots(ctx, args)
	case "conversations":
		err = cmdConversations(ctx, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: botdeck <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  init                      Create a new config file interactively")
	fmt.Println("  serve                     Start the local dashboard")
	fmt.Println("  login                     Sign in and store the session")
	fmt.Println("  logout                    Sign out and clear stored credentials")
	fmt.Println("  register                  Create an account and sign in")
	fmt.Println("  me                        Show the signed-in account")
	fmt.Println("  status                    Show session status")
	fmt.Println("  refresh                   Force a token refresh")
	fmt.Println("  forgot-password <email>   Request a password reset email")
	fmt.Println("  reset-password <token>    Redeem a reset token")
	fmt.Println("  bots                      List bots")
	fmt.Println("  bots show <id>            Show a bot with its runtime status")
	fmt.Println("  bots start|stop|restart <id>")
	fmt.Println("  bots health <id>          Run an on-demand health check")
	fmt.Println("  bots delete <id>          Delete a bot")
	fmt.Println("  conversations [--bot id]  List conversations")
	fmt.Println("  conversations show <id>   Show a conversation's messages")
	fmt.Println("  conversations delete <id>")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  BOTDECK_CONFIG            Config file path (default: ~/.config/botdeck/config.toml)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  botdeck init")
	fmt.Println("  botdeck login")
	fmt.Println("  botdeck bots")
	fmt.Println("  botdeck serve")
	fmt.Println()
}

// app bundles everything a command needs once the config is loaded.
type app struct {
	cfg     *config.Config
	creds   credstore.Store
	client  *api.Client
	session *session.Controller
	bots    *botapi.Client
	close   func()
}

// newApp loads the config and wires the client stack. Commands hitting
// protected resources should call requireSession first.
func newApp() (*app, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	slogger := setupLogger(cfg.Logging)
	creds, closeStore, err := openCredStore(cfg.Credentials)
	if err != nil {
		return nil, err
	}

	baseURL, err := api.ResolveBaseURL(cfg.API.BaseURL, secureContext(cfg))
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("resolving base URL: %w", err)
	}

	client := api.New(api.Config{
		BaseURL: baseURL,
		Tokens:  api.StoreTokens(creds),
		Logger:  slogger,
	})

	return &app{
		cfg:     cfg,
		creds:   creds,
		client:  client,
		session: session.New(client, creds, slogger),
		bots:    botapi.NewClient(client),
		close:   closeStore,
	}, nil
}

// secureContext reports whether the pipeline should upgrade plain-http
// backend URLs to https. Serving the dashboard over TLS always counts as a
// secure context; otherwise the explicit insecure flag opts out.
func secureContext(cfg *config.Config) bool {
	if cfg.Dashboard.CertFile != "" {
		return true
	}
	return !cfg.API.Insecure
}

// openCredStore builds the configured credential store backend.
func openCredStore(cfg config.CredentialsConfig) (credstore.Store, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = filepath.Join(filepath.Dir(credstore.DefaultPath()), "credentials.db")
		}
		s, err := credstore.NewSQLiteStore(path, cfg.Profile)
		if err != nil {
			return nil, nil, fmt.Errorf("opening credential store: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := credstore.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening credential store: %w", err)
		}
		return s, func() {}, nil
	}
}

// requireSession runs the startup check and refreshes a stale access token.
func (a *app) requireSession(ctx context.Context) error {
	a.session.Init(ctx)
	if a.session.Status() != session.StatusAuthenticated {
		return fmt.Errorf("not signed in (run: botdeck login)")
	}
	return a.session.EnsureFresh(ctx)
}
