package file

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/mock"
	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/urls"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

var fileID = uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

func TestDescribeFile_NotFound(t *testing.T) {
	repo := &mock.FileRepository{}
	svc := NewFileDescriber(repo, urls.NewBuilder("http://files.local"))

	_, err := svc.DescribeFile(context.Background(), fileID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDescribeFile_Success(t *testing.T) {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	d := model.FileDescriptor{
		ID:               fileID,
		StoredFilename:   fileID.String() + ".mp4",
		OriginalFilename: "clip.mp4",
		DisplayTitle:     "Clip",
		Extension:        ".mp4",
		CreatedAt:        created,
		ExpiresAt:        created.Add(24 * time.Hour),
		SizeBytes:        2048,
	}
	repo := &mock.FileRepository{Descriptors: map[uuid.UUID]model.FileDescriptor{fileID: d}}
	svc := NewFileDescriber(repo, urls.NewBuilder("http://files.local/"))

	out, err := svc.DescribeFile(context.Background(), fileID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FileDescriptor != d {
		t.Errorf("descriptor = %+v, want %+v", out.FileDescriptor, d)
	}
	if want := "http://files.local/files/" + fileID.String() + ".mp4"; out.StreamURL != want {
		t.Errorf("StreamURL = %q, want %q", out.StreamURL, want)
	}
	if want := "http://files.local/download/" + fileID.String() + ".mp4"; out.DownloadURL != want {
		t.Errorf("DownloadURL = %q, want %q", out.DownloadURL, want)
	}
	if out.SizeHuman != "2.0 KiB" {
		t.Errorf("SizeHuman = %q, want %q", out.SizeHuman, "2.0 KiB")
	}
}
