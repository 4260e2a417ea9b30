// ABOUTME: Interactive config file creation
// ABOUTME: Writes a TOML config to the XDG location

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("botdeck configuration setup")
	fmt.Println("===========================")
	fmt.Println()

	defaultConfigPath := getConfigPath()

	// Output filename
	outputFile := prompt(reader, "Config file path", defaultConfigPath)

	// Check if file exists
	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if strings.ToLower(overwrite) != "yes" && strings.ToLower(overwrite) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Backend
	fmt.Println("\n--- Backend Configuration ---")
	baseURL := prompt(reader, "Backend API URL", "https://botdeck.example/api/v1")

	// Credentials
	fmt.Println("\n--- Credential Storage ---")
	backend := prompt(reader, "Credential backend (file/sqlite)", "file")
	profile := "default"
	if backend == "sqlite" {
		profile = prompt(reader, "Credential profile", "default")
	}

	// Dashboard
	fmt.Println("\n--- Dashboard Configuration ---")
	addr := prompt(reader, "Dashboard listen address", "127.0.0.1:8787")

	// Logging
	fmt.Println("\n--- Logging Configuration ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	// Generate config
	var cfg strings.Builder
	cfg.WriteString("# botdeck configuration\n")
	cfg.WriteString("# Generated by botdeck init\n\n")

	cfg.WriteString("[api]\n")
	cfg.WriteString(fmt.Sprintf("base_url = \"%s\"\n\n", baseURL))

	cfg.WriteString("[credentials]\n")
	cfg.WriteString(fmt.Sprintf("backend = \"%s\"\n", backend))
	if backend == "sqlite" {
		cfg.WriteString(fmt.Sprintf("profile = \"%s\"\n", profile))
	}
	cfg.WriteString("\n")

	cfg.WriteString("[dashboard]\n")
	cfg.WriteString(fmt.Sprintf("addr = \"%s\"\n\n", addr))

	cfg.WriteString("[logging]\n")
	cfg.WriteString(fmt.Sprintf("level = \"%s\"\n", logLevel))
	cfg.WriteString(fmt.Sprintf("format = \"%s\"\n", logFormat))

	// Ensure config directory exists
	configDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write config file
	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("\nConfig written to %s\n", outputFile)
	fmt.Println("\nNext steps:")
	fmt.Println("  botdeck login")
	fmt.Println("  botdeck serve")

	return nil
}
