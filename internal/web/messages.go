// ABOUTME: User-facing flash and inline messages
// ABOUTME: Maps domain errors from the stores to the text shown on pages

package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2389/scribe/internal/credentials"
	"github.com/2389/scribe/internal/documents"
)

// Fixed messages
const (
	msgWelcome            = "Welcome!"
	msgInvalidCredentials = "Invalid Credentials"
	msgRegistered         = "User registered!"
	msgSignedOut          = "You have been signed out."
	msgNoSuchFileToDelete = "No such file exists to delete"
)

func msgCreated(name string) string    { return name + " was created" }
func msgNotExist(name string) string   { return name + " does not exist" }
func msgUpdated(name string) string    { return name + " has been updated." }
func msgDeleted(name string) string    { return name + " was deleted." }
func msgDuplicated(name string) string { return name + " has been duplicated." }

// filenameError returns the inline message for a rejected document name
func filenameError(err error) string {
	switch {
	case errors.Is(err, documents.ErrEmptyName):
		return "A name is required."
	case errors.Is(err, documents.ErrBadExtension):
		return fmt.Sprintf("Sorry, only %s extensions are accepted.", strings.Join(documents.AllowedExtensions, " "))
	case errors.Is(err, documents.ErrInvalidName):
		return "Sorry, document names cannot contain slashes."
	default:
		return "That name cannot be used."
	}
}

// registrationError returns the inline message for a rejected registration,
// or "" when err is not a registration failure.
func registrationError(err error) string {
	switch {
	case errors.Is(err, credentials.ErrDuplicateUsername):
		return "That username is already taken"
	case errors.Is(err, credentials.ErrPasswordMismatch):
		return "Passwords need to match"
	case errors.Is(err, credentials.ErrEmptyUsername):
		return "A username is required."
	default:
		return ""
	}
}
