package file

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/tmpfiles-ms-go/internal/mock"
)

func TestDeleteFile_NotFound(t *testing.T) {
	repo := &mock.FileRepository{DeleteOut: false}
	cache := &mock.Cache{}
	svc := NewFileDeleter(repo, cache)

	if err := svc.DeleteFile(context.Background(), fileID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if cache.DelFileCalled {
		t.Error("cache must not be touched for unknown files")
	}
}

func TestDeleteFile_Success(t *testing.T) {
	repo := &mock.FileRepository{DeleteOut: true}
	cache := &mock.Cache{}
	svc := NewFileDeleter(repo, cache)

	if err := svc.DeleteFile(context.Background(), fileID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.DeleteCalled || repo.DeletedID != fileID {
		t.Error("expected repo.Delete to be called with ID")
	}
	if !cache.DelFileCalled || !cache.DelEtagFileCalled {
		t.Error("expected both cache entries to be invalidated")
	}
}

func TestDeleteFile_PersistError(t *testing.T) {
	repo := &mock.FileRepository{DeleteOut: true, DeleteErr: ErrPersistence}
	cache := &mock.Cache{}
	svc := NewFileDeleter(repo, cache)

	err := svc.DeleteFile(context.Background(), fileID)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if !cache.DelFileCalled {
		t.Error("cache must be invalidated even when persisting fails")
	}
}

func TestDeleteFile_CacheErrorIgnored(t *testing.T) {
	repo := &mock.FileRepository{DeleteOut: true}
	cache := &mock.Cache{DelFileErr: errors.New("redis down"), DelEtagFileErr: errors.New("redis down")}
	svc := NewFileDeleter(repo, cache)

	if err := svc.DeleteFile(context.Background(), fileID); err != nil {
		t.Fatalf("cache failures must not surface, got %v", err)
	}
}
