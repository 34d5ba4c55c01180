package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhuszti/tmpfiles-ms-go/internal/mock"
	tfuuid "github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

var stageID = tfuuid.MustParse("0b6f1c9e-5f1a-4c47-9d2e-3a8f7b1e2c4d")

func newTestStager() (*Stager, *mock.Storage, *mock.MockDispatcher) {
	strg := &mock.Storage{}
	disp := &mock.MockDispatcher{}
	return &Stager{
		Storage:    strg,
		Dispatcher: disp,
		Bucket:     "staging",
		NewID:      func() tfuuid.UUID { return stageID },
	}, strg, disp
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestStage_Success(t *testing.T) {
	s, strg, disp := newTestStager()
	path := writeTemp(t, "clip.mp4", []byte("not really a video"))

	in, err := s.Stage(context.Background(), path, "A clip", "src-1")
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	wantKey := "staged/" + stageID.String() + "/clip.mp4"
	if in.ObjectKey != wantKey {
		t.Errorf("ObjectKey = %q; want %q", in.ObjectKey, wantKey)
	}
	if strg.Bucket != "staging" || string(strg.Saved) != "not really a video" {
		t.Errorf("saved %q into %q", strg.Saved, strg.Bucket)
	}
	if strg.SavedOpts["Original-Filename"] != "clip.mp4" {
		t.Errorf("Original-Filename = %q", strg.SavedOpts["Original-Filename"])
	}
	if !strings.HasPrefix(strg.SavedOpts["Content-Type"], "text/plain") {
		t.Errorf("Content-Type = %q; want text/plain", strg.SavedOpts["Content-Type"])
	}
	if len(disp.IngestInputs) != 1 {
		t.Fatalf("enqueued %d tasks; want 1", len(disp.IngestInputs))
	}
	got := disp.IngestInputs[0]
	if got.ObjectKey != wantKey || got.DisplayTitle != "A clip" || got.SourceID != "src-1" || got.OriginalFilename != "clip.mp4" {
		t.Errorf("unexpected task payload %+v", got)
	}
	if strg.RemoveCalled {
		t.Error("staged object must not be removed on success")
	}
}

func TestStage_EnqueueFailureRemovesObject(t *testing.T) {
	s, strg, disp := newTestStager()
	disp.IngestErr = errors.New("redis down")
	path := writeTemp(t, "clip.mp4", []byte("data"))

	_, err := s.Stage(context.Background(), path, "", "")
	if !errors.Is(err, disp.IngestErr) {
		t.Fatalf("Stage() error = %v; want wrapped %v", err, disp.IngestErr)
	}
	if !strg.RemoveCalled {
		t.Error("expected staged object to be removed")
	}
}

func TestStage_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s, strg, _ := newTestStager()
		if _, err := s.Stage(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), "", ""); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("error = %v; want os.ErrNotExist", err)
		}
		if strg.SaveCalled {
			t.Error("nothing should be uploaded")
		}
	})

	t.Run("directory", func(t *testing.T) {
		s, strg, _ := newTestStager()
		dir := filepath.Join(t.TempDir(), "folder")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Stage(context.Background(), dir, "", ""); err == nil {
			t.Fatal("expected error for a directory")
		}
		if strg.SaveCalled {
			t.Error("nothing should be uploaded")
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		s, strg, disp := newTestStager()
		strg.SaveErr = errors.New("minio down")
		path := writeTemp(t, "clip.mp4", []byte("data"))
		if _, err := s.Stage(context.Background(), path, "", ""); !errors.Is(err, strg.SaveErr) {
			t.Fatalf("error = %v; want %v", err, strg.SaveErr)
		}
		if disp.IngestCalled {
			t.Error("task must not be queued when the upload fails")
		}
	})

	t.Run("title too long", func(t *testing.T) {
		s, strg, _ := newTestStager()
		path := writeTemp(t, "clip.mp4", []byte("data"))
		if _, err := s.Stage(context.Background(), path, strings.Repeat("x", 600), ""); err == nil {
			t.Fatal("expected validation error")
		}
		if strg.SaveCalled {
			t.Error("nothing should be uploaded")
		}
	})
}
