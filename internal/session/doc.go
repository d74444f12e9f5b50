// Package session holds per-client session state in process memory.
//
// A Session carries the signed-in username and a one-shot flash message.
// Sessions live in a Store keyed by an opaque random ID; the ID travels to
// the browser inside a signed cookie (see package auth). Nothing is
// persisted, so every session is lost on restart.
//
// Idle sessions expire after the configured TTL. The store also caps the
// number of live sessions and evicts the least recently used one when full.
//
// Handlers never reach for a global: middleware attaches the request's
// session to its context and handlers read it back with FromContext.
package session
