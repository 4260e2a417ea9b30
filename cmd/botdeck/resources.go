// ABOUTME: Bot and conversation commands for the CLI
// ABOUTME: Tabular listings plus lifecycle and delete actions

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

func cmdBots(ctx context.Context, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireSession(ctx); err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "list" {
		return botsList(ctx, a)
	}

	sub := args[0]
	rest := args[1:]
	if len(rest) != 1 {
		return fmt.Errorf("usage: botdeck bots %s <id>", sub)
	}
	id := rest[0]

	switch sub {
	case "show":
		return botsShow(ctx, a, id)
	case "start":
		if err := a.bots.StartBot(ctx, id); err != nil {
			return err
		}
		fmt.Println("started")
	case "stop":
		if err := a.bots.StopBot(ctx, id); err != nil {
			return err
		}
		fmt.Println("stopped")
	case "restart":
		if err := a.bots.RestartBot(ctx, id); err != nil {
			return err
		}
		fmt.Println("restarted")
	case "health":
		return botsHealth(ctx, a, id)
	case "delete":
		if err := a.bots.DeleteBot(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted")
	default:
		return fmt.Errorf("unknown bots subcommand: %s", sub)
	}
	return nil
}

func botsList(ctx context.Context, a *app) error {
	bots, err := a.bots.ListBots(ctx)
	if err != nil {
		return err
	}

	if len(bots) == 0 {
		fmt.Println("No bots.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tTELEGRAM\tHEALTH\tACTIVE")
	for _, b := range bots {
		telegram := "-"
		if b.IsTelegramConnected {
			telegram = "@" + b.TelegramBotUsername
		}
		health := b.HealthStatus
		if health == "" {
			health = "unknown"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", b.ID, b.Name, b.DifyType, telegram, health, b.IsActive)
	}
	return w.Flush()
}

func botsShow(ctx context.Context, a *app, id string) error {
	bot, err := a.bots.GetBot(ctx, id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Println(bot.Name)
	cyan.Println("----")
	fmt.Printf("ID:            %s\n", bot.ID)
	if bot.Description != "" {
		fmt.Printf("Description:   %s\n", bot.Description)
	}
	fmt.Printf("Endpoint:      %s\n", bot.DifyEndpoint)
	fmt.Printf("Type:          %s\n", bot.DifyType)
	fmt.Printf("Response mode: %s\n", bot.ResponseMode)
	if bot.IsTelegramConnected {
		fmt.Printf("Telegram:      @%s\n", bot.TelegramBotUsername)
	}
	fmt.Printf("Active:        %t\n", bot.IsActive)

	status, err := a.bots.BotStatus(ctx, id)
	if err != nil {
		color.Yellow("Status unavailable: %v\n", err)
		return nil
	}
	fmt.Printf("Running:       %t\n", status.Running)
	if status.HealthStatus != "" {
		fmt.Printf("Health:        %s\n", status.HealthStatus)
	}
	return nil
}

func botsHealth(ctx context.Context, a *app, id string) error {
	result, err := a.bots.HealthCheck(ctx, id)
	if err != nil {
		return err
	}

	if result.Healthy {
		color.Green("healthy (%.0fms)\n", result.Latency)
	} else {
		color.Red("unhealthy: %s\n", result.Detail)
	}
	return nil
}

func cmdConversations(ctx context.Context, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireSession(ctx); err != nil {
		return err
	}

	// List, with an optional bot filter
	if len(args) == 0 || args[0] == "list" || args[0] == "--bot" {
		botID := ""
		for i := 0; i < len(args); i++ {
			if args[i] == "--bot" {
				if i+1 >= len(args) {
					return fmt.Errorf("--bot requires a value")
				}
				botID = args[i+1]
				i++
			}
		}
		return conversationsList(ctx, a, botID)
	}

	sub := args[0]
	rest := args[1:]
	if len(rest) != 1 {
		return fmt.Errorf("usage: botdeck conversations %s <id>", sub)
	}
	id := rest[0]

	switch sub {
	case "show":
		return conversationsShow(ctx, a, id)
	case "delete":
		if err := a.bots.DeleteConversation(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted")
	default:
		return fmt.Errorf("unknown conversations subcommand: %s", sub)
	}
	return nil
}

func conversationsList(ctx context.Context, a *app, botID string) error {
	convs, err := a.bots.ListConversations(ctx, botID)
	if err != nil {
		return err
	}

	if len(convs) == 0 {
		fmt.Println("No conversations.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOT\tTITLE\tUSER\tMESSAGES\tLAST ACTIVITY")
	for _, c := range convs {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		last := "-"
		if c.LastMessageAt != nil {
			last = c.LastMessageAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", c.ID, c.BotID, title, c.TelegramUsername, c.MessageCount, last)
	}
	return w.Flush()
}

func conversationsShow(ctx context.Context, a *app, id string) error {
	msgs, err := a.bots.Messages(ctx, id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	for _, m := range msgs {
		cyan.Printf("[%s] ", m.Role)
		gray.Printf("%s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println(m.Content)
		fmt.Println()
	}
	return nil
}
