package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/urls"
)

type stagedIngesterSrv struct {
	repo       port.FileRepository
	strg       port.Storage
	bucket     string
	scratchDir string
	urls       *urls.Builder
}

// compile-time check: *stagedIngesterSrv must satisfy port.StagedIngester
var _ port.StagedIngester = (*stagedIngesterSrv)(nil)

// NewStagedIngester pulls objects from bucket through scratchDir into repo.
func NewStagedIngester(repo port.FileRepository, strg port.Storage, bucket, scratchDir string, urls *urls.Builder) port.StagedIngester {
	return &stagedIngesterSrv{repo: repo, strg: strg, bucket: bucket, scratchDir: scratchDir, urls: urls}
}

// IngestStaged downloads the staged object, hands it to the repository and
// removes it from the bucket. The staged object is kept when ingestion fails.
func (s *stagedIngesterSrv) IngestStaged(ctx context.Context, in port.StagedIngestInput) (*port.IngestOutput, error) {
	info, err := s.strg.StatFile(ctx, s.bucket, in.ObjectKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, fmt.Errorf("staged object %q not found: %w", in.ObjectKey, err)
		}
		return nil, fmt.Errorf("stats for staged object %q failed: %w", in.ObjectKey, err)
	}

	tmpPath, err := s.download(ctx, in, info.SizeBytes)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Ingest(ctx, port.IngestInput{
		SourcePath:       tmpPath,
		OriginalFilename: in.OriginalFilename,
		DisplayTitle:     in.DisplayTitle,
		SourceID:         in.SourceID,
	})
	if err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Warnf(ctx, "failed to clean up scratch file %q: %v", tmpPath, rmErr)
		}
		return nil, err
	}

	if err := s.strg.RemoveFile(ctx, s.bucket, in.ObjectKey); err != nil {
		logger.Warnf(ctx, "failed to clean up staged object %q: %v", in.ObjectKey, err)
	}

	ext := filepath.Ext(tmpPath)
	return &port.IngestOutput{
		ID:          id,
		StreamURL:   s.urls.StreamURL(id, ext),
		DownloadURL: s.urls.DownloadURL(id, ext),
	}, nil
}

// download copies the staged object into a scratch file named after the
// original extension, sniffing one from the content when there is none.
func (s *stagedIngesterSrv) download(ctx context.Context, in port.StagedIngestInput, size int64) (string, error) {
	body, err := s.strg.GetFile(ctx, s.bucket, in.ObjectKey)
	if err != nil {
		return "", fmt.Errorf("get staged object %q failed: %w", in.ObjectKey, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			logger.Warnf(ctx, "failed to close staged object %q: %v", in.ObjectKey, err)
		}
	}()

	ext := filepath.Ext(in.OriginalFilename)
	tmp, err := os.CreateTemp(s.scratchDir, "staged-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, body)
	if err == nil && n != size {
		err = fmt.Errorf("size mismatch: got %d bytes, expected %d", n, size)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cErr := tmp.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download staged object %q failed: %w", in.ObjectKey, err)
	}

	if ext != "" {
		return tmpPath, nil
	}

	mt, err := mimetype.DetectFile(tmpPath)
	if err != nil || mt.Extension() == "" {
		return tmpPath, nil
	}
	named := tmpPath + mt.Extension()
	if err := os.Rename(tmpPath, named); err != nil {
		logger.Warnf(ctx, "could not add sniffed extension %q to %q: %v", mt.Extension(), tmpPath, err)
		return tmpPath, nil
	}
	logger.Debugf(ctx, "sniffed %s for staged object %q", mt.String(), in.ObjectKey)
	return named, nil
}
