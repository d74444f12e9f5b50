// ABOUTME: HTTP middleware for request logging and session resolution
// ABOUTME: Attaches the client's session to the request context and refreshes its cookie

package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/2389/scribe/internal/session"
)

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request tagged with a request ID
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}

// withSession resolves the session for the request and stores it in the context
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.loadSession(r)
		if err != nil {
			s.serverError(w, r, "failed to create session", err)
			return
		}

		if err := s.setSessionCookie(w, r, sess); err != nil {
			s.serverError(w, r, "failed to sign session cookie", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
	})
}

// loadSession returns the session named by the cookie, or a new one when the
// cookie is missing, forged, expired or refers to a dropped session.
func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	if cookie, err := r.Cookie(s.config.CookieName); err == nil && cookie.Value != "" {
		id, err := s.signer.Verify(cookie.Value)
		if err == nil {
			if sess, ok := s.sessions.Get(id); ok {
				return sess, nil
			}
		} else {
			s.logger.Debug("rejected session cookie", "error", err)
		}
	}

	return s.sessions.New()
}

// setSessionCookie writes a freshly signed cookie so active sessions keep a
// valid token for as long as they stay in the store.
func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	token, err := s.signer.Sign(sess.ID(), s.config.SessionTTL)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
