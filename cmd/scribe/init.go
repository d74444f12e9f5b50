// ABOUTME: The init command writing a starter config file
// ABOUTME: Prompts for settings, generates a session secret and bootstraps the admin user

package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/2389/scribe/internal/config"
	"github.com/2389/scribe/internal/credentials"
)

// initAnswers are the values collected by runInit
type initAnswers struct {
	HTTPAddr      string
	DataDir       string
	UsersFile     string
	Secret        string
	SessionTTL    string
	AdminUsername string
	LogLevel      string
	LogFormat     string
}

func runInit() error {
	p := newStdinPrompter()

	fmt.Println("scribe configuration setup")
	fmt.Println("==========================")
	fmt.Println()

	outputFile := p.prompt("Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		if !p.confirm("File exists. Overwrite?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	secret, err := generateSecret()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(outputFile)

	fmt.Println("\n--- Server Configuration ---")
	answers := initAnswers{Secret: secret}
	answers.HTTPAddr = p.prompt("HTTP address", config.DefaultHTTPAddr)

	fmt.Println("\n--- Storage Configuration ---")
	answers.DataDir = p.prompt("Document directory", filepath.Join(configDir, "data"))
	answers.UsersFile = p.prompt("Credential file", filepath.Join(configDir, "users.yml"))

	fmt.Println("\n--- Session Configuration ---")
	answers.SessionTTL = p.prompt("Session idle timeout", config.DefaultSessionTTL.String())
	answers.AdminUsername = p.prompt("Admin username", config.DefaultAdminUsername)

	fmt.Println("\n--- Logging Configuration ---")
	answers.LogLevel = p.prompt("Log level (debug/info/warn/error)", "info")
	answers.LogFormat = p.prompt("Log format (text/json)", "text")

	content := renderConfig(answers)

	// Refuse to write something serve would reject
	cfg, err := config.Parse([]byte(content), config.FormatYAML)
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// The file holds the session secret
	if err := os.WriteFile(outputFile, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("\n  ✓ Config written to %s\n", outputFile)
	green.Printf("  ✓ Data directory: %s\n", cfg.Storage.DataDir)

	users := credentials.NewStore(afero.NewOsFs(), cfg.Storage.UsersFile)
	if !users.Exists(cfg.Auth.AdminUsername) && p.confirm(fmt.Sprintf("\nCreate the %q user now?", cfg.Auth.AdminUsername)) {
		if err := addUser(p, users, cfg.Auth.AdminUsername); err != nil {
			return err
		}
		green.Printf("  ✓ Registered %s in %s\n", cfg.Auth.AdminUsername, cfg.Storage.UsersFile)
	}

	fmt.Println("\nTo start the server:")
	fmt.Println("  scribe serve")

	return nil
}

// generateSecret returns a random session signing secret
func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// renderConfig writes answers as a commented YAML config file
func renderConfig(a initAnswers) string {
	var cfg strings.Builder
	cfg.WriteString("# scribe configuration\n")
	cfg.WriteString("# Generated by scribe init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: %q\n", a.HTTPAddr))
	cfg.WriteString("\n")

	cfg.WriteString("storage:\n")
	cfg.WriteString(fmt.Sprintf("  data_dir: %q\n", a.DataDir))
	cfg.WriteString(fmt.Sprintf("  users_file: %q\n", a.UsersFile))
	cfg.WriteString("\n")

	cfg.WriteString("session:\n")
	cfg.WriteString(fmt.Sprintf("  secret: %q\n", a.Secret))
	cfg.WriteString(fmt.Sprintf("  ttl: %q\n", a.SessionTTL))
	cfg.WriteString(fmt.Sprintf("  max_sessions: %d\n", config.DefaultMaxSessions))
	cfg.WriteString(fmt.Sprintf("  cookie_name: %q\n", config.DefaultCookieName))
	cfg.WriteString("\n")

	cfg.WriteString("auth:\n")
	cfg.WriteString(fmt.Sprintf("  admin_username: %q\n", a.AdminUsername))
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: %q\n", a.LogLevel))
	cfg.WriteString(fmt.Sprintf("  format: %q\n", a.LogFormat))

	return cfg.String()
}
