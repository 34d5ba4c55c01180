package port

import (
	"context"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

type Clock func() time.Time

type IngestInput struct {
	SourcePath       string
	OriginalFilename string
	DisplayTitle     string
	SourceID         string
}

// FileResolver maps a public identifier to a file on disk.
type FileResolver interface {
	ResolvePrefix(ctx context.Context, prefix string) (string, bool)
}

// FileRepository owns the stored files and their descriptors.
type FileRepository interface {
	FileResolver
	Ingest(ctx context.Context, in IngestInput) (uuid.UUID, error)
	Resolve(ctx context.Context, id uuid.UUID) (string, bool)
	Describe(ctx context.Context, id uuid.UUID) (model.FileDescriptor, bool)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
	Stats(ctx context.Context) model.FileStats
	Clear(ctx context.Context) (int, error)
	Root() string
}

// Sweeper removes expired files.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// SweepRunner triggers an immediate sweep.
type SweepRunner interface {
	RunOnce(ctx context.Context) (model.SweepResult, error)
}
