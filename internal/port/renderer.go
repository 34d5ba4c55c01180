package port

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// HTTPRenderer mediates between HTTP handlers and the file describer use case.
// It provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderDescribeFile returns the cached JSON result and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderDescribeFile(ctx context.Context, describer FileDescriber, id uuid.UUID) ([]byte, string, error)
}
