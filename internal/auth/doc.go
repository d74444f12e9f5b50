// Package auth decides who may do what and protects the session cookie.
//
// # Access Guards
//
// Guards are plain functions over the request's session:
//
//	if err := auth.RequireSignedIn(sess); err != nil {
//		// flash already set; redirect to "/"
//	}
//
// RequireSignedIn accepts any signed-in user. RequireAdmin accepts only the
// configured admin username (default "admin"). A failing guard writes its
// flash message to the session and returns a sentinel error; it never fails
// in any other way.
//
// # Session Cookie
//
// The session cookie carries an HS256 JWT whose "sub" claim is the opaque
// session ID. CookieSigner signs and verifies it with the configured
// session secret, so a forged or truncated cookie never reaches the session
// store.
package auth
