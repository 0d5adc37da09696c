package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

type contextKey string

const (
	ctxUserID      contextKey = "user_id"
	ctxSystemRole  contextKey = "system_role"
	ctxWeddingID   contextKey = "wedding_id"
	ctxWeddingRole contextKey = "wedding_role"
)

func UserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func SystemRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSystemRole).(string); ok {
		return v
	}
	return ""
}

func WeddingIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxWeddingID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WeddingRoleFromContext returns the requester's role within the guarded
// wedding. App owners carry WeddingRoleMainAdmin here so downstream role
// checks need no special case.
func WeddingRoleFromContext(ctx context.Context) enums.WeddingRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxWeddingRole).(enums.WeddingRole); ok {
		return v
	}
	return ""
}

// WithUserID injects the authenticated user identifier into the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithSystemRole injects the platform-level role into the context.
func WithSystemRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSystemRole, role)
}

// WithWeddingAccess injects the guarded wedding and the requester's role.
func WithWeddingAccess(ctx context.Context, weddingID uuid.UUID, role enums.WeddingRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxWeddingID, weddingID)
	return context.WithValue(ctx, ctxWeddingRole, role)
}
