package api_context

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

type ctxKey string

const (
	FileIDKey     ctxKey = "fileID"
	FileUUIDKey   ctxKey = "fileUUID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

// FileIDFromContext returns the cleaned public identifier of the requested file.
func FileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(FileIDKey).(string)
	return id, ok && id != ""
}

func FileUUIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(FileUUIDKey).(uuid.UUID)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
