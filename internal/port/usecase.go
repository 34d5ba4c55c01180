package port

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// FileDescriber returns the display details of a stored file.
type FileDescriber interface {
	DescribeFile(ctx context.Context, id uuid.UUID) (*DescribeFileOutput, error)
}
type DescribeFileOutput struct {
	model.FileDescriptor
	StreamURL   string `json:"stream_url"`
	DownloadURL string `json:"download_url"`
	SizeHuman   string `json:"size_human"`
}

// FileDeleter removes a stored file before it expires.
type FileDeleter interface {
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

// StatsReporter aggregates the store for display.
type StatsReporter interface {
	Stats(ctx context.Context) StatsOutput
}
type StatsOutput struct {
	TotalFiles     int     `json:"total_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	TotalSizeHuman string  `json:"total_size_human"`
	TTLHours       int     `json:"ttl_hours"`
}

// StagedIngester pulls a finished file from the staging bucket into the repository.
type StagedIngester interface {
	IngestStaged(ctx context.Context, in StagedIngestInput) (*IngestOutput, error)
}
type StagedIngestInput struct {
	ObjectKey        string `json:"object_key" validate:"required,max=512,object_key"`
	OriginalFilename string `json:"original_filename" validate:"required,max=255,basename"`
	DisplayTitle     string `json:"display_title" validate:"max=512"`
	SourceID         string `json:"source_id" validate:"max=128"`
}
type IngestOutput struct {
	ID          uuid.UUID `json:"id"`
	StreamURL   string    `json:"stream_url"`
	DownloadURL string    `json:"download_url"`
}
