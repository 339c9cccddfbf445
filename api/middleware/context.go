package middleware

import "context"

type contextKey string

const (
	ctxUserID      contextKey = "user_id"
	ctxUsername    contextKey = "username"
	ctxAuthorities contextKey = "authorities"
)

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

// AuthoritiesFromContext returns the "ROLE_<name>" authorities of the caller.
func AuthoritiesFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxAuthorities).([]string); ok {
		return v
	}
	return nil
}

// WithIdentity injects an authenticated caller into the context.
func WithIdentity(ctx context.Context, userID int64, username string, authorities []string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	return context.WithValue(ctx, ctxAuthorities, authorities)
}
