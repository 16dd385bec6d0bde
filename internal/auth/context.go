package auth

import (
	"context"
	"strings"

	"kadrio.org/internal/access"
)

type accessContextKey struct{}
type userIDContextKey struct{}

// ContextWithAccess attaches the resolved access context to the request
// context.
func ContextWithAccess(ctx context.Context, ac access.Context) context.Context {
	return context.WithValue(ctx, accessContextKey{}, ac)
}

// AccessFromContext extracts the access context if authentication ran.
// Absence means the request is unauthenticated and must be treated as
// holding no permissions.
func AccessFromContext(ctx context.Context) (access.Context, bool) {
	if ctx == nil {
		return access.Context{}, false
	}
	ac, ok := ctx.Value(accessContextKey{}).(access.Context)
	return ac, ok
}

// ContextWithUserID stores the authenticated user id for audit trails.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext extracts the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(userIDContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
