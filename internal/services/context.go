package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	ownerIDKey   contextKey = "owner_id"
	usernameKey  contextKey = "username"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOwner annotates context with the authenticated owner identity.
func WithOwner(ctx context.Context, ownerID int64, username string) context.Context {
	ctx = context.WithValue(ctx, ownerIDKey, ownerID)
	if username != "" {
		ctx = context.WithValue(ctx, usernameKey, username)
	}
	return ctx
}

// OwnerFromContext extracts the authenticated owner identifier if present.
func OwnerFromContext(ctx context.Context) (int64, bool) {
	if v, ok := ctx.Value(ownerIDKey).(int64); ok && v > 0 {
		return v, true
	}
	return 0, false
}

// UsernameFromContext returns the authenticated username if present.
func UsernameFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(usernameKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
