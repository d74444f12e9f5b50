// ABOUTME: Template rendering functions for the document UI
// ABOUTME: Parses embedded page templates once and renders them inside the shared layout

package web

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"github.com/2389/scribe/internal/session"
)

// Page names, matching files under templates/
const (
	pageIndex    = "index"
	pageSignin   = "signin"
	pageRegister = "register"
	pageNew      = "new"
	pageEdit     = "edit"
	pageDocument = "document"
)

// pageTemplate is a page parsed together with the layout
type pageTemplate struct {
	tmpl *template.Template
}

// templateFuncs are available to every page. docPath must wrap any document
// name placed in a URL so characters like '#' and '?' stay part of the name.
var templateFuncs = template.FuncMap{
	"docPath": docPath,
}

// docPath returns the URL path of a document, optionally followed by an action
func docPath(name string, action ...string) string {
	p := "/" + url.PathEscape(name)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

// parseTemplates parses every page with the base layout
func parseTemplates() map[string]*pageTemplate {
	pages := []string{pageIndex, pageSignin, pageRegister, pageNew, pageEdit, pageDocument}
	templates := make(map[string]*pageTemplate, len(pages))
	for _, page := range pages {
		tmpl := template.Must(template.New("base.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/base.html", "templates/"+page+".html"))
		templates[page] = &pageTemplate{tmpl: tmpl}
	}
	return templates
}

// Template data types

// layoutData is shared by every page
type layoutData struct {
	Title string
	User  string
	Flash string
}

type indexData struct {
	layoutData
	Documents []string
}

type signinData struct {
	layoutData
	Username string
	Error    string
}

type registerData struct {
	layoutData
	Username string
	Error    string
}

type newDocumentData struct {
	layoutData
	Filename string
	Error    string
}

type editData struct {
	layoutData
	Name    string
	Content string
}

type documentData struct {
	layoutData
	Name    string
	Content template.HTML
}

// layout builds the shared page fields. It consumes the session's flash
// message, so it must only be called for a page that is actually rendered.
func layout(sess *session.Session, title string) layoutData {
	data := layoutData{Title: title}
	if sess != nil {
		data.User = sess.Username()
		data.Flash = sess.Take()
	}
	return data
}

// render executes a page into a buffer and writes it with the given status.
// Nothing is written to the client if the template fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	pt, ok := s.templates[page]
	if !ok {
		s.logger.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pt.tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		s.serverError(w, r, "failed to render "+page+" page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
