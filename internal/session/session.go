// ABOUTME: Session state for one browser client
// ABOUTME: Tracks the signed-in username and a read-once flash message

package session

import "sync"

// Session is the server-side state for one client. Methods are safe for
// concurrent use; a browser can have several requests in flight.
type Session struct {
	id string

	mu       sync.Mutex
	username string
	flash    string
}

// ID returns the opaque session identifier
func (s *Session) ID() string {
	return s.id
}

// Username returns the signed-in username, or "" when signed out
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// SignedIn reports whether a user is signed in
func (s *Session) SignedIn() bool {
	return s.Username() != ""
}

// SignIn records username as the signed-in user
func (s *Session) SignIn(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// SignOut clears the signed-in user
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
}

// SetFlash stores a message for the next rendered page, replacing any
// message not yet shown.
func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// Take returns the pending flash message and clears it
func (s *Session) Take() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}
