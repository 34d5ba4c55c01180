package model

import (
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// FileDescriptor describes one stored file. It is created on ingestion and
// never mutated afterwards, only deleted.
type FileDescriptor struct {
	ID               uuid.UUID `json:"id"`
	StoredFilename   string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	DisplayTitle     string    `json:"display_title"`
	SourceID         string    `json:"source_id"`
	Extension        string    `json:"extension"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	SizeBytes        int64     `json:"size_bytes"`
}

// Expired reports whether the descriptor is strictly past its expiry at now.
func (d FileDescriptor) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// FileStats is an aggregate over the live descriptors.
type FileStats struct {
	TotalFiles     int   `json:"total_files"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
	TTLHours       int   `json:"ttl_hours"`
}

// SweepResult reports one expiry sweep.
type SweepResult struct {
	Removed    int   `json:"removed"`
	DurationMs int64 `json:"duration_ms"`
}
