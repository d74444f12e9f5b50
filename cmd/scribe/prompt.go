// ABOUTME: Interactive terminal prompts for the scribe CLI
// ABOUTME: Reads answers with defaults and passwords without echo

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errPasswordMismatch = errors.New("passwords do not match")

// prompter reads answers from in and writes questions to out. Passwords are
// read without echo when in is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal file descriptor, or -1 when input is not a terminal
	fd int
}

func newStdinPrompter() *prompter {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout, fd: fd}
}

func (p *prompter) prompt(question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	input, err := p.in.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(p.out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func (p *prompter) confirm(question string) bool {
	answer := strings.ToLower(p.prompt(question, "no"))
	return answer == "yes" || answer == "y"
}

func (p *prompter) password(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)

	if p.fd >= 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// newPassword asks for a password and its confirmation
func (p *prompter) newPassword() (string, error) {
	password, err := p.password("Password")
	if err != nil {
		return "", err
	}
	confirmation, err := p.password("Confirm password")
	if err != nil {
		return "", err
	}
	if password != confirmation {
		return "", errPasswordMismatch
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
