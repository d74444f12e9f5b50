// ABOUTME: Request-scoped access to the current session
// ABOUTME: Provides WithContext/FromContext for passing the session via context

package session

import "context"

// contextKey is the key type for storing a Session in context.Context
type contextKey struct{}

// WithContext returns a new context carrying sess
func WithContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached to ctx, or nil if none
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
