// ABOUTME: Converts raw document content into a servable body
// ABOUTME: Markdown goes through goldmark, text and images pass through

package documents

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrUnrenderable is returned for kinds that have no renderer
var ErrUnrenderable = errors.New("document kind cannot be rendered")

// Content types for rendered documents
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeText = "text/plain"
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Rendered is the servable form of a document
type Rendered struct {
	Body        []byte
	ContentType string
	// HTML is true when Body is an HTML fragment meant for the page layout
	HTML bool
	// Title comes from Markdown front matter, if present
	Title string
}

type frontMatter struct {
	Title string `yaml:"title" toml:"title"`
}

// Render transforms content according to its kind
func Render(kind Kind, content []byte) (Rendered, error) {
	switch {
	case kind == KindMarkdown:
		return renderMarkdown(content)
	case kind == KindText:
		return Rendered{Body: content, ContentType: ContentTypeText}, nil
	case kind.IsImage():
		// Image kinds are named by their media type
		return Rendered{Body: content, ContentType: kind.String()}, nil
	default:
		return Rendered{}, ErrUnrenderable
	}
}

func renderMarkdown(content []byte) (Rendered, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		// Malformed front matter is rendered as ordinary Markdown
		body = content
		meta = frontMatter{}
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return Rendered{}, fmt.Errorf("converting markdown: %w", err)
	}

	return Rendered{
		Body:        buf.Bytes(),
		ContentType: ContentTypeHTML,
		HTML:        true,
		Title:       meta.Title,
	}, nil
}
