package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxHandle    contextKey = "handle"
	ctxAuthToken contextKey = "handcash_auth_token"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func HandleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxHandle).(string); ok {
		return v
	}
	return ""
}

// AuthTokenFromContext returns the wallet auth token resolved from the
// session. It never leaves the process.
func AuthTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAuthToken).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithHandle injects the wallet handle into the context.
func WithHandle(ctx context.Context, handle string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxHandle, handle)
}

// WithAuthToken injects the wallet auth token into the context.
func WithAuthToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAuthToken, token)
}
