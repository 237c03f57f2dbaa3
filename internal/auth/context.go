package auth

import "context"

type userIDKey struct{}

// WithUserID stores the authenticated user's id on the context. The session
// middleware resolves the token once per request; handlers only ever read
// the id from here.
func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFrom returns the authenticated user's id, if any.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
