// Package web serves the scribe document UI over HTTP.
//
// # Routes
//
// Public:
//
//	GET  /                      document index, current user, flash
//	GET  /users/signin          sign-in form
//	POST /users/signin          verify credentials (422 on failure)
//	GET  /users/register        registration form
//	POST /users/register        create a user (422 on failure)
//	GET  /{filename}            serve a document by kind
//	POST /{filename}/duplicate  copy a document to NAME_dup.EXT
//	POST /signout               forget the signed-in user
//
// Signed-in only (otherwise 302 to / with a flash message):
//
//	GET  /new                   new-document form
//	POST /new                   create an empty document (422 on bad name)
//	GET  /{filename}/edit       edit form
//	POST /{filename}/update     overwrite content
//	POST /{filename}/delete     remove a document
//
// # Sessions
//
// Every request passes through session middleware that resolves the signed
// session cookie to a session.Session (creating one when the cookie is
// missing, forged or expired) and attaches it to the request context.
// Handlers report outcomes by setting a flash message and redirecting; the
// next rendered page consumes the message.
//
// # Errors
//
// Domain failures never escape as errors: they become a redirect with a
// flash message or a 422 page with an inline message. Storage failures are
// logged and answered with a plain 500.
package web
