package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// FileName is the metadata document kept next to the stored files.
const FileName = ".metadata.json"

// JSONStore keeps every descriptor in a single indented JSON document.
type JSONStore struct {
	path string
}

// compile-time check: *JSONStore must satisfy port.MetadataStore
var _ port.MetadataStore = (*JSONStore)(nil)

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{path: filepath.Join(dir, FileName)}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the document. Anything short of a well-formed document is
// reported and treated as an empty store.
func (s *JSONStore) Load(ctx context.Context) map[uuid.UUID]model.FileDescriptor {
	entries := make(map[uuid.UUID]model.FileDescriptor)

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof(ctx, "no metadata found at %q, starting empty", s.path)
		return entries
	}
	if err != nil {
		logger.Warnf(ctx, "⚠️  could not read metadata %q, starting empty: %v", s.path, err)
		return entries
	}

	var decoded map[uuid.UUID]model.FileDescriptor
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.Warnf(ctx, "⚠️  metadata %q is corrupt, starting empty: %v", s.path, err)
		return entries
	}

	for id, d := range decoded {
		// the key is authoritative
		d.ID = id
		entries[id] = d
	}
	logger.Infof(ctx, "loaded %d file descriptor(s) from %q", len(entries), s.path)
	return entries
}

// Persist replaces the document atomically: a reader either sees the previous
// document or the new one, never a truncated file.
func (s *JSONStore) Persist(ctx context.Context, entries map[uuid.UUID]model.FileDescriptor) error {
	if entries == nil {
		entries = map[uuid.UUID]model.FileDescriptor{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", file.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", file.ErrPersistence, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %w", file.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: sync temp file: %w", file.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %w", file.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %w", file.ErrPersistence, err)
	}

	if err := syncDir(dir); err != nil {
		logger.Debugf(ctx, "directory sync of %q skipped: %v", dir, err)
	}
	logger.Debugf(ctx, "persisted %d file descriptor(s)", len(entries))
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
