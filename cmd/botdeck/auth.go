// ABOUTME: Session commands: login, logout, register, me, status, refresh
// ABOUTME: Password reset commands live here too

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/botdeck/botdeck/internal/session"
)

func cmdLogin(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	reader := bufio.NewReader(os.Stdin)
	email := prompt(reader, "Email", "")
	password := promptSecret(reader, "Password")

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Signed in as %s\n", a.session.User().DisplayName())
	return nil
}

func cmdLogout(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.session.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}

func cmdRegister(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	reader := bufio.NewReader(os.Stdin)
	input := session.RegisterInput{
		Email:    prompt(reader, "Email", ""),
		Username: prompt(reader, "Username", ""),
		FullName: prompt(reader, "Full name (optional)", ""),
	}
	input.Password = promptSecret(reader, "Password")
	input.ConfirmPassword = promptSecret(reader, "Confirm password")

	if err := a.session.Register(ctx, input); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Account created, signed in as %s\n", a.session.User().DisplayName())
	return nil
}

func cmdMe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	user := a.session.User()

	cyan := color.New(color.FgCyan)
	cyan.Println("Account")
	cyan.Println("-------")
	fmt.Printf("ID:        %s\n", user.ID)
	fmt.Printf("Email:     %s\n", user.Email)
	fmt.Printf("Username:  %s\n", user.Username)
	if user.FullName != "" {
		fmt.Printf("Full name: %s\n", user.FullName)
	}
	fmt.Printf("Verified:  %t\n", user.EmailVerified)
	fmt.Printf("Superuser: %t\n", user.IsSuperuser)
	if user.LastLogin != nil {
		fmt.Printf("Last login: %s\n", user.LastLogin.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdStatus(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.session.Init(ctx)
	status := a.session.Status()

	fmt.Printf("Backend: %s\n", a.client.BaseURL())
	fmt.Printf("Session: %s\n", status)
	if user := a.session.User(); user != nil {
		fmt.Printf("User:    %s\n", user.DisplayName())
	}
	return nil
}

func cmdRefresh(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	fmt.Println("Session refreshed.")
	return nil
}

func cmdForgotPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: botdeck forgot-password <email>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.session.ForgotPassword(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("If an account exists for that address, a reset link is on its way.")
	return nil
}

func cmdResetPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: botdeck reset-password <token>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	newPassword := promptSecret(bufio.NewReader(os.Stdin), "New password")
	if err := a.session.ResetPassword(ctx, args[0], newPassword); err != nil {
		return err
	}
	fmt.Println("Password reset. Sign in with your new password.")
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

// promptSecret reads a line without a default. Echo suppression is left to
// the terminal; pipelines can feed stdin directly.
func promptSecret(reader *bufio.Reader, question string) string {
	fmt.Printf("%s: ", question)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return ""
	}
	return strings.TrimSpace(input)
}
