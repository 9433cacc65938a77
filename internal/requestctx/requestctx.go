package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	usernameKey  ctxKey = "username"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithUsername records the authenticated caller.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func GetUsername(ctx context.Context) string {
	if value, ok := ctx.Value(usernameKey).(string); ok {
		return value
	}
	return ""
}
