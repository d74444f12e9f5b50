// Package server assembles scribe's stores, sessions and UI into a running
// HTTP server and manages its lifecycle.
//
// Run blocks until the context is canceled or the listener fails, then
// shuts the HTTP server down with a fresh five second deadline and stops the
// session sweeper.
package server
