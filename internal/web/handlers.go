// ABOUTME: HTTP handlers for documents, sign-in, registration and sign-out
// ABOUTME: Converts store results into redirects with flash messages or 422 pages

package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/2389/scribe/internal/documents"
	"github.com/2389/scribe/internal/session"
)

// handleIndex lists all documents
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageIndex, indexData{
		layoutData: layout(sess, "Documents"),
		Documents:  s.docs.List(),
	})
}

// =============================================================================
// Sign-in, Registration, Sign-out
// =============================================================================

// handleSigninPage renders the sign-in form
func (s *Server) handleSigninPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageSignin, signinData{
		layoutData: layout(sess, "Sign In"),
	})
}

// handleSignin processes the sign-in form submission
func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	username := r.FormValue("username")
	password := r.FormValue("password")

	if !s.users.Verify(username, password) {
		s.logger.Info("sign-in failed", "username", username)
		s.render(w, r, http.StatusUnprocessableEntity, pageSignin, signinData{
			layoutData: layout(sess, "Sign In"),
			Username:   username,
			Error:      msgInvalidCredentials,
		})
		return
	}

	sess.SignIn(username)
	sess.SetFlash(msgWelcome)
	s.logger.Info("sign-in successful", "username", username)
	redirectHome(w, r)
}

// handleRegisterPage renders the registration form
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageRegister, registerData{
		layoutData: layout(sess, "Register"),
	})
}

// handleRegister processes the registration form submission
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	username := r.FormValue("username")
	password := r.FormValue("password")
	confirmation := r.FormValue("password-2")

	err := s.users.CheckRegistration(username, password, confirmation)
	if err == nil {
		err = s.users.Register(username, password)
	}
	if err != nil {
		msg := registrationError(err)
		if msg == "" {
			s.serverError(w, r, "failed to register user", err)
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity, pageRegister, registerData{
			layoutData: layout(sess, "Register"),
			Username:   username,
			Error:      msg,
		})
		return
	}

	sess.SetFlash(msgRegistered)
	s.logger.Info("user registered", "username", username)
	redirectHome(w, r)
}

// handleSignout forgets the signed-in user
func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if user := sess.Username(); user != "" {
		s.logger.Info("signed out", "username", user)
	}
	sess.SignOut()
	sess.SetFlash(msgSignedOut)
	redirectHome(w, r)
}

// =============================================================================
// Document Handlers
// =============================================================================

// handleNewPage renders the new-document form
func (s *Server) handleNewPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageNew, newDocumentData{
		layoutData: layout(sess, "New Document"),
	})
}

// handleCreate creates an empty document
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	raw := r.FormValue("filename")

	name, err := documents.ValidateNewFilename(raw)
	if err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, pageNew, newDocumentData{
			layoutData: layout(sess, "New Document"),
			Filename:   raw,
			Error:      filenameError(err),
		})
		return
	}

	if err := s.docs.Create(name, nil); err != nil {
		s.serverError(w, r, "failed to create document", err)
		return
	}

	sess.SetFlash(msgCreated(name))
	s.logger.Info("document created", "name", name, "username", sess.Username())
	redirectHome(w, r)
}

// handleView serves a document according to its kind
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	name := r.PathValue("filename")

	content, err := s.docs.Read(name)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			sess.SetFlash(msgNotExist(name))
			redirectHome(w, r)
			return
		}
		s.serverError(w, r, "failed to read document", err)
		return
	}

	rendered, err := documents.Render(documents.KindOf(name), content)
	if err != nil {
		if errors.Is(err, documents.ErrUnrenderable) {
			s.logger.Warn("document has no renderer", "name", name)
			w.WriteHeader(http.StatusOK)
			return
		}
		s.serverError(w, r, "failed to render document", err)
		return
	}

	if rendered.HTML {
		title := rendered.Title
		if title == "" {
			title = name
		}
		s.render(w, r, http.StatusOK, pageDocument, documentData{
			layoutData: layout(sess, title),
			Name:       name,
			Content:    template.HTML(rendered.Body), //nolint:gosec // goldmark output, raw HTML disabled
		})
		return
	}

	w.Header().Set("Content-Type", rendered.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered.Body)
}

// handleEdit renders the edit form pre-filled with the document content
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	name := r.PathValue("filename")

	content, err := s.docs.Read(name)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			sess.SetFlash(msgNotExist(name))
			redirectHome(w, r)
			return
		}
		s.serverError(w, r, "failed to read document", err)
		return
	}

	s.render(w, r, http.StatusOK, pageEdit, editData{
		layoutData: layout(sess, "Edit "+name),
		Name:       name,
		Content:    string(content),
	})
}

// handleUpdate overwrites a document with the submitted content
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	name := r.PathValue("filename")

	if err := s.docs.Write(name, []byte(r.FormValue("content"))); err != nil {
		if errors.Is(err, documents.ErrInvalidName) {
			sess.SetFlash(msgNotExist(name))
			redirectHome(w, r)
			return
		}
		s.serverError(w, r, "failed to update document", err)
		return
	}

	sess.SetFlash(msgUpdated(name))
	s.logger.Info("document updated", "name", name, "username", sess.Username())
	redirectHome(w, r)
}

// handleDelete removes a document
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	name := r.PathValue("filename")

	if err := s.docs.Delete(name); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			sess.SetFlash(msgNoSuchFileToDelete)
			redirectHome(w, r)
			return
		}
		s.serverError(w, r, "failed to delete document", err)
		return
	}

	sess.SetFlash(msgDeleted(name))
	s.logger.Info("document deleted", "name", name, "username", sess.Username())
	redirectHome(w, r)
}

// handleDuplicate copies a document next to the original
func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	name := r.PathValue("filename")

	dupName, err := s.docs.Duplicate(name)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			sess.SetFlash(msgNotExist(name))
			redirectHome(w, r)
			return
		}
		s.serverError(w, r, "failed to duplicate document", err)
		return
	}

	sess.SetFlash(msgDuplicated(name))
	s.logger.Info("document duplicated", "name", name, "copy", dupName)
	redirectHome(w, r)
}
