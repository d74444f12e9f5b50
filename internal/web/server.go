// ABOUTME: Document UI server wiring stores, sessions and routes
// ABOUTME: Registers every route on a ServeMux behind logging and session middleware

package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/scribe/internal/auth"
	"github.com/2389/scribe/internal/credentials"
	"github.com/2389/scribe/internal/documents"
	"github.com/2389/scribe/internal/session"
)

// Defaults used when Config leaves a field unset
const (
	DefaultCookieName = "scribe_session"
	DefaultSessionTTL = 24 * time.Hour
)

// Config holds UI settings
type Config struct {
	// CookieName is the name of the session cookie
	CookieName string
	// SessionTTL bounds the lifetime of the signed cookie value
	SessionTTL time.Duration
}

// Deps are the collaborators a Server needs
type Deps struct {
	Documents   *documents.Store
	Credentials *credentials.Store
	Sessions    *session.Store
	Signer      *auth.CookieSigner
	Logger      *slog.Logger
}

// Server handles the document UI routes
type Server struct {
	docs      *documents.Store
	users     *credentials.Store
	sessions  *session.Store
	signer    *auth.CookieSigner
	config    Config
	logger    *slog.Logger
	templates map[string]*pageTemplate
}

// New creates a Server. Templates are parsed immediately; a broken embedded
// template panics at startup rather than on first request.
func New(deps Deps, cfg Config) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}

	return &Server{
		docs:      deps.Documents,
		users:     deps.Credentials,
		sessions:  deps.Sessions,
		signer:    deps.Signer,
		config:    cfg,
		logger:    logger.With("component", "web"),
		templates: parseTemplates(),
	}
}

// Handler returns the full HTTP handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.logRequests(s.withSession(mux))
}

// RegisterRoutes registers all UI routes on the given mux. The caller must
// wrap the mux with session middleware.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /users/signin", s.handleSigninPage)
	mux.HandleFunc("POST /users/signin", s.handleSignin)
	mux.HandleFunc("GET /users/register", s.handleRegisterPage)
	mux.HandleFunc("POST /users/register", s.handleRegister)
	mux.HandleFunc("POST /signout", s.handleSignout)
	mux.HandleFunc("GET /favicon.ico", http.NotFound)

	// Signed-in routes
	mux.HandleFunc("GET /new", s.requireSignedIn(s.handleNewPage))
	mux.HandleFunc("POST /new", s.requireSignedIn(s.handleCreate))
	mux.HandleFunc("GET /{filename}/edit", s.requireSignedIn(s.handleEdit))
	mux.HandleFunc("POST /{filename}/update", s.requireSignedIn(s.handleUpdate))
	mux.HandleFunc("POST /{filename}/delete", s.requireSignedIn(s.handleDelete))

	// Document routes open to everyone
	mux.HandleFunc("GET /{filename}", s.handleView)
	mux.HandleFunc("POST /{filename}/duplicate", s.handleDuplicate)

	s.logger.Debug("routes registered")
}

// requireSignedIn wraps a handler so signed-out requests are sent home
func (s *Server) requireSignedIn(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireSignedIn(session.FromContext(r.Context())); err != nil {
			s.logger.Debug("guard rejected request", "path", r.URL.Path, "error", err)
			redirectHome(w, r)
			return
		}
		next(w, r)
	}
}

// redirectHome sends the client back to the index
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// serverError logs err and responds with a bare 500
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
