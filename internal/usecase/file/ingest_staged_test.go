package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhuszti/tmpfiles-ms-go/internal/mock"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/urls"
)

func newIngester(t *testing.T, repo *mock.FileRepository, strg *mock.Storage) (port.StagedIngester, string) {
	t.Helper()
	scratch := t.TempDir()
	return NewStagedIngester(repo, strg, "staging", scratch, urls.NewBuilder("http://files.local")), scratch
}

func stagedInput() port.StagedIngestInput {
	return port.StagedIngestInput{
		ObjectKey:        "uploads/abc",
		OriginalFilename: "clip.mp4",
		DisplayTitle:     "Clip",
		SourceID:         "src-1",
	}
}

func TestIngestStaged_ObjectNotFound(t *testing.T) {
	repo := &mock.FileRepository{}
	strg := &mock.Storage{StatErr: ErrObjectNotFound}
	svc, _ := newIngester(t, repo, strg)

	_, err := svc.IngestStaged(context.Background(), stagedInput())
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if repo.IngestCalled {
		t.Error("repository must not be called")
	}
}

func TestIngestStaged_GetError(t *testing.T) {
	repo := &mock.FileRepository{}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: 3}, GetErr: errors.New("get fail")}
	svc, _ := newIngester(t, repo, strg)

	if _, err := svc.IngestStaged(context.Background(), stagedInput()); err == nil || !strings.Contains(err.Error(), "get fail") {
		t.Fatalf("expected get fail, got %v", err)
	}
}

func TestIngestStaged_SizeMismatch(t *testing.T) {
	repo := &mock.FileRepository{}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: 10}, GetOut: []byte("abc")}
	svc, scratch := newIngester(t, repo, strg)

	if _, err := svc.IngestStaged(context.Background(), stagedInput()); err == nil || !strings.Contains(err.Error(), "size mismatch") {
		t.Fatalf("expected size mismatch, got %v", err)
	}
	assertEmptyDir(t, scratch)
	if repo.IngestCalled {
		t.Error("repository must not be called")
	}
}

func TestIngestStaged_IngestError(t *testing.T) {
	repo := &mock.FileRepository{IngestErr: ErrIngestFailure}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: 3}, GetOut: []byte("abc")}
	svc, scratch := newIngester(t, repo, strg)

	if _, err := svc.IngestStaged(context.Background(), stagedInput()); !errors.Is(err, ErrIngestFailure) {
		t.Fatalf("expected ErrIngestFailure, got %v", err)
	}
	assertEmptyDir(t, scratch)
	if strg.RemoveCalled {
		t.Error("staged object must be kept when ingestion fails")
	}
}

func TestIngestStaged_Success(t *testing.T) {
	repo := &mock.FileRepository{IngestOut: fileID}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: 3}, GetOut: []byte("abc")}
	svc, scratch := newIngester(t, repo, strg)

	out, err := svc.IngestStaged(context.Background(), stagedInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := repo.IngestIn
	if filepath.Dir(in.SourcePath) != scratch || filepath.Ext(in.SourcePath) != ".mp4" {
		t.Errorf("unexpected scratch path %q", in.SourcePath)
	}
	data, err := os.ReadFile(in.SourcePath)
	if err != nil || string(data) != "abc" {
		t.Errorf("scratch content = %q, %v", data, err)
	}
	if in.OriginalFilename != "clip.mp4" || in.DisplayTitle != "Clip" || in.SourceID != "src-1" {
		t.Errorf("unexpected ingest input %+v", in)
	}
	if !strg.RemoveCalled || strg.Bucket != "staging" || strg.ObjectKey != "uploads/abc" {
		t.Errorf("expected staged object removal, got bucket=%q key=%q", strg.Bucket, strg.ObjectKey)
	}
	if out.ID != fileID {
		t.Errorf("ID = %s, want %s", out.ID, fileID)
	}
	if want := "http://files.local/files/" + fileID.String() + ".mp4"; out.StreamURL != want {
		t.Errorf("StreamURL = %q, want %q", out.StreamURL, want)
	}
}

func TestIngestStaged_RemoveErrorIgnored(t *testing.T) {
	repo := &mock.FileRepository{IngestOut: fileID}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: 3}, GetOut: []byte("abc"), RemoveErr: errors.New("remove fail")}
	svc, _ := newIngester(t, repo, strg)

	if _, err := svc.IngestStaged(context.Background(), stagedInput()); err != nil {
		t.Fatalf("staged cleanup failure must not surface, got %v", err)
	}
}

func TestIngestStaged_SniffsMissingExtension(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	repo := &mock.FileRepository{IngestOut: fileID}
	strg := &mock.Storage{StatInfoOut: port.FileInfo{SizeBytes: int64(len(png))}, GetOut: png}
	svc, _ := newIngester(t, repo, strg)

	in := stagedInput()
	in.OriginalFilename = "snapshot"
	out, err := svc.IngestStaged(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext := filepath.Ext(repo.IngestIn.SourcePath); ext != ".png" {
		t.Errorf("sniffed extension = %q, want .png", ext)
	}
	if !strings.HasSuffix(out.DownloadURL, ".png") {
		t.Errorf("DownloadURL = %q, want .png suffix", out.DownloadURL)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}
