package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/tmpfiles-ms-go/internal/config"
	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/storage"
	"github.com/fhuszti/tmpfiles-ms-go/internal/task"
	tfuuid "github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
	"github.com/fhuszti/tmpfiles-ms-go/internal/validation"
)

// Stager uploads a local file to the staging bucket and queues its ingestion.
type Stager struct {
	Storage    port.Storage
	Dispatcher port.TaskDispatcher
	Bucket     string
	NewID      port.UUIDGen
}

func loadStager(cfg *config.Settings) (*Stager, func(), error) {
	if !cfg.QueueEnabled() {
		return nil, nil, errors.New("REDIS_ADDR and MINIO_ENDPOINT are required to stage files")
	}

	strg, err := storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		return nil, nil, fmt.Errorf("minio: %w", err)
	}
	if err := strg.InitBucket(cfg.StagingBucket); err != nil {
		return nil, nil, fmt.Errorf("init bucket %q: %w", cfg.StagingBucket, err)
	}

	d := task.NewDispatcher(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	release := func() {
		if err := d.Close(); err != nil {
			logger.Warnf(context.Background(), "dispatcher close error: %v", err)
		}
	}

	return &Stager{Storage: strg, Dispatcher: d, Bucket: cfg.StagingBucket, NewID: tfuuid.NewUUID}, release, nil
}

// Stage uploads path under a fresh object key and enqueues the ingest task.
// The object is removed again when the task cannot be queued.
func (s *Stager) Stage(ctx context.Context, path, title, sourceID string) (port.StagedIngestInput, error) {
	name := filepath.Base(path)
	in := port.StagedIngestInput{
		ObjectKey:        "staged/" + s.NewID().String() + "/" + name,
		OriginalFilename: name,
		DisplayTitle:     title,
		SourceID:         sourceID,
	}
	if err := validation.ValidateStruct(in); err != nil {
		return in, err
	}

	f, err := os.Open(path)
	if err != nil {
		return in, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return in, err
	}
	if !info.Mode().IsRegular() {
		return in, fmt.Errorf("%s is not a regular file", path)
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return in, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return in, err
	}

	opts := map[string]string{
		"Content-Type":      mt.String(),
		"Original-Filename": name,
	}
	if err := s.Storage.SaveFile(ctx, s.Bucket, in.ObjectKey, f, info.Size(), opts); err != nil {
		return in, fmt.Errorf("upload %q: %w", in.ObjectKey, err)
	}
	logger.Infof(ctx, "📤 Uploaded %s to %s/%s", name, s.Bucket, in.ObjectKey)

	if err := s.Dispatcher.EnqueueIngestStaged(ctx, in); err != nil {
		if rmErr := s.Storage.RemoveFile(ctx, s.Bucket, in.ObjectKey); rmErr != nil {
			logger.Warnf(ctx, "failed to remove staged object %q: %v", in.ObjectKey, rmErr)
		}
		return in, fmt.Errorf("enqueue ingest: %w", err)
	}

	return in, nil
}
