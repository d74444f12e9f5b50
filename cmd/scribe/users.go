// ABOUTME: The useradd and users commands managing the credential file
// ABOUTME: Registers users with an interactive password prompt and lists usernames

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/2389/scribe/internal/config"
	"github.com/2389/scribe/internal/credentials"
)

func openCredentials() (*credentials.Store, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return credentials.NewStore(afero.NewOsFs(), cfg.Storage.UsersFile), nil
}

func runUserAdd(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: scribe useradd USERNAME")
	}
	username := strings.TrimSpace(args[0])

	users, err := openCredentials()
	if err != nil {
		return err
	}

	if err := addUser(newStdinPrompter(), users, username); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("  ✓ Registered %s in %s\n", username, users.Path())
	return nil
}

// addUser prompts for a password and registers username
func addUser(p *prompter, users *credentials.Store, username string) error {
	// Reject empty or taken names before asking for a password
	if err := users.CheckRegistration(username, "", ""); err != nil {
		return err
	}

	password, err := p.newPassword()
	if err != nil {
		return err
	}

	if err := users.Register(username, password); err != nil {
		return fmt.Errorf("registering %s: %w", username, err)
	}
	return nil
}

func runUsers() error {
	users, err := openCredentials()
	if err != nil {
		return err
	}

	names, err := users.Usernames()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No users registered.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
