// Package documents manages the flat directory of user documents.
//
// # Storage
//
// Every document is a single file inside one directory. The file name is the
// document's identity; there are no subdirectories. Store performs no caching:
// each call goes straight to the underlying afero.Fs, so the filesystem is the
// only source of truth.
//
//	docs := documents.NewStore(afero.NewOsFs(), "./data")
//	docs.Create("about.md", []byte("# About"))
//
// # Naming
//
// New names are checked with ValidateNewFilename. An extension, when present,
// must be one of AllowedExtensions. Names without an extension are accepted
// even though no renderer knows how to serve them.
//
// # Rendering
//
// KindOf classifies a name once; Render turns raw content into a servable
// body and content type:
//
//	.md        goldmark HTML (front matter stripped)   text/html
//	.txt       passthrough                             text/plain
//	.png/.jpg  passthrough                             image/png, image/jpeg
//
// Anything else yields ErrUnrenderable.
package documents
