// ABOUTME: Document kind classification derived from the file name
// ABOUTME: Replaces ad-hoc extension matching with a closed set of kinds

package documents

import (
	"path/filepath"
)

// Kind identifies how a document's content is served
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindMarkdown
	KindPNG
	KindJPEG
)

// KindOf classifies a document by its extension
func KindOf(name string) Kind {
	switch filepath.Ext(name) {
	case ".txt":
		return KindText
	case ".md":
		return KindMarkdown
	case ".png":
		return KindPNG
	case ".jpg":
		return KindJPEG
	default:
		return KindUnknown
	}
}

// IsImage reports whether the kind is an image format
func (k Kind) IsImage() bool {
	return k == KindPNG || k == KindJPEG
}

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	case KindPNG:
		return ContentTypePNG
	case KindJPEG:
		return ContentTypeJPEG
	default:
		return "unknown"
	}
}
