// ABOUTME: Access guards deciding whether a request may proceed
// ABOUTME: Failing guards leave a flash message and tell the caller to redirect home

package auth

import (
	"errors"

	"github.com/2389/scribe/internal/session"
)

// Guard errors. Callers redirect to the index when they see one.
var (
	ErrSignInRequired = errors.New("sign in required")
	ErrAdminRequired  = errors.New("admin required")
)

// Flash messages set by failing guards
const (
	MsgSignInRequired = "You must be signed in to do that."
	MsgAdminRequired  = "You must be the admin to view that page."
)

// DefaultAdminUsername is the identity RequireAdmin accepts when none is configured
const DefaultAdminUsername = "admin"

// RequireSignedIn succeeds when someone is signed in. Otherwise it sets the
// sign-in flash message and returns ErrSignInRequired.
func RequireSignedIn(sess *session.Session) error {
	if sess != nil && sess.SignedIn() {
		return nil
	}
	if sess != nil {
		sess.SetFlash(MsgSignInRequired)
	}
	return ErrSignInRequired
}

// RequireAdmin succeeds when the signed-in user is admin. Otherwise it sets
// the admin flash message and returns ErrAdminRequired.
func RequireAdmin(sess *session.Session, admin string) error {
	if admin == "" {
		admin = DefaultAdminUsername
	}
	if sess != nil && sess.Username() == admin {
		return nil
	}
	if sess != nil {
		sess.SetFlash(MsgAdminRequired)
	}
	return ErrAdminRequired
}
