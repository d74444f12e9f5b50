// ABOUTME: In-memory session store with idle TTL and bounded size
// ABOUTME: Evicts least recently used sessions and sweeps expired ones in the background

package session

import (
	"container/list"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// idBytes is the number of random bytes in a session ID
const idBytes = 32

// entry stores a session with its last access time and list element
type entry struct {
	session  *Session
	lastSeen time.Time
	element  *list.Element
}

// Store keeps sessions in memory. Uses a doubly-linked list ordered by last
// access (least recent at front) for O(1) eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	order    *list.List
	ttl      time.Duration
	maxSize  int
	now      func() time.Time
	done     chan struct{}
	closed   bool
}

// NewStore creates a session store. Sessions idle for longer than ttl are
// dropped; at most maxSize sessions are kept. A background goroutine sweeps
// expired sessions until Close is called.
func NewStore(ttl time.Duration, maxSize int) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		order:    list.New(),
		ttl:      ttl,
		maxSize:  maxSize,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// New creates and registers an empty session
func (s *Store) New() (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}

	sess := &Session{id: id}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSize > 0 && len(s.sessions) >= s.maxSize {
		s.evictOldest()
	}

	elem := s.order.PushBack(id)
	s.sessions[id] = &entry{
		session:  sess,
		lastSeen: s.now(),
		element:  elem,
	}
	return sess, nil
}

// Get returns the session for id if it exists and has not expired.
// A successful Get refreshes the session's idle timer.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		s.removeLocked(id, e)
		return nil, false
	}

	e.lastSeen = now
	s.order.MoveToBack(e.element)
	return e.session, true
}

// Delete removes a session. Unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		s.removeLocked(id, e)
	}
}

// Len returns the number of sessions currently held
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// removeLocked deletes an entry. Must be called with mu held.
func (s *Store) removeLocked(id string, e *entry) {
	s.order.Remove(e.element)
	delete(s.sessions, id)
}

// evictOldest removes the least recently used session. Must be called with mu held.
func (s *Store) evictOldest() {
	front := s.order.Front()
	if front == nil {
		return
	}

	id, _ := front.Value.(string)
	s.order.Remove(front)
	delete(s.sessions, id)
}

// cleanup runs in a background goroutine, periodically removing expired sessions
func (s *Store) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCleanup()
		case <-s.done:
			return
		}
	}
}

// runCleanup removes all expired sessions
func (s *Store) runCleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			s.removeLocked(id, e)
		}
	}
}

// Close stops the background sweep. It is safe to call multiple times.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.done)
		s.closed = true
	}
}

// generateID returns a random hex session identifier
func generateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
