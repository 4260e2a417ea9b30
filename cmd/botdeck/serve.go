// ABOUTME: Local dashboard server command
// ABOUTME: Serves the embedded UI, optionally over TLS

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"

	"github.com/botdeck/botdeck/internal/dashboard"
)

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Backend: %s\n", a.client.BaseURL())
	green.Print("    ▶ ")
	fmt.Printf("Listen:  %s\n", a.cfg.Dashboard.Addr)
	fmt.Println()

	// Resolve the stored session in the background; the guard holds pages
	// on the loading screen until this settles.
	go a.session.Init(ctx)

	srv := &http.Server{
		Addr:         a.cfg.Dashboard.Addr,
		Handler:      dashboard.New(a.session, a.bots).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if a.cfg.Dashboard.CertFile != "" {
			errCh <- srv.ListenAndServeTLS(a.cfg.Dashboard.CertFile, a.cfg.Dashboard.KeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.session.Dispose()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
