package port

import (
	"context"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// Cache provides caching capabilities for file details.
type Cache interface {
	GetFileDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	GetEtagFileDetails(ctx context.Context, id uuid.UUID) (string, error)
	SetFileDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	SetEtagFileDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time)
	DeleteFileDetails(ctx context.Context, id uuid.UUID) error
	DeleteEtagFileDetails(ctx context.Context, id uuid.UUID) error
}
