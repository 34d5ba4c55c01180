package port

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// MetadataStore is the durable record of every live descriptor.
type MetadataStore interface {
	// Load never fails: a missing or unreadable record yields an empty map.
	Load(ctx context.Context) map[uuid.UUID]model.FileDescriptor
	// Persist replaces the durable record with the given map.
	Persist(ctx context.Context, entries map[uuid.UUID]model.FileDescriptor) error
}
