package file

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

type fileDeleterSrv struct {
	repo  port.FileRepository
	cache port.Cache
}

// compile-time check: *fileDeleterSrv must satisfy port.FileDeleter
var _ port.FileDeleter = (*fileDeleterSrv)(nil)

func NewFileDeleter(repo port.FileRepository, cache port.Cache) port.FileDeleter {
	return &fileDeleterSrv{repo: repo, cache: cache}
}

// DeleteFile removes the file, its descriptor and any cached details.
func (s *fileDeleterSrv) DeleteFile(ctx context.Context, id uuid.UUID) error {
	existed, err := s.repo.Delete(ctx, id)
	if !existed {
		return ErrNotFound
	}

	if cErr := s.cache.DeleteFileDetails(ctx, id); cErr != nil {
		logger.Warnf(ctx, "failed deleting cache for file #%s: %v", id, cErr)
	}
	if cErr := s.cache.DeleteEtagFileDetails(ctx, id); cErr != nil {
		logger.Warnf(ctx, "failed deleting etag cache for file #%s: %v", id, cErr)
	}

	return err
}
