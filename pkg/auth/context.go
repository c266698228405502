// Package auth carries the authenticated caller identity through a
// context.Context.
package auth

import "context"

type userKey struct{}

// User identifies the authenticated caller of a request.
type User struct {
	ID string
}

// WithUser returns a context carrying the given user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext extracts the authenticated user from the context.
// The second return value is false when no user is present or the user
// has no id.
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey{}).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}
