package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// FileRepository owns a flat directory of stored files and the descriptors
// pointing at them. Mutations serialize on mu and persist before returning.
type FileRepository struct {
	root  string
	ttl   time.Duration
	store port.MetadataStore
	newID port.UUIDGen
	now   port.Clock

	mu      sync.RWMutex
	entries map[uuid.UUID]model.FileDescriptor
}

// compile-time check: *FileRepository must satisfy port.FileRepository
var _ port.FileRepository = (*FileRepository)(nil)

// NewFileRepository creates root if needed and loads the descriptors from store.
func NewFileRepository(ctx context.Context, root string, ttl time.Duration, store port.MetadataStore, newID port.UUIDGen, now port.Clock) (*FileRepository, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", abs, err)
	}

	return &FileRepository{
		root:    abs,
		ttl:     ttl,
		store:   store,
		newID:   newID,
		now:     now,
		entries: store.Load(ctx),
	}, nil
}

func (r *FileRepository) Root() string {
	return r.root
}

// Ingest takes ownership of the file at in.SourcePath. The descriptor is only
// kept once the move and the metadata write both succeeded.
func (r *FileRepository) Ingest(ctx context.Context, in port.IngestInput) (uuid.UUID, error) {
	info, err := os.Stat(in.SourcePath)
	if errors.Is(err, fs.ErrNotExist) {
		return uuid.Nil, fmt.Errorf("%w: %q", file.ErrSourceNotFound, in.SourcePath)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: stat %q: %w", file.ErrIngestFailure, in.SourcePath, err)
	}
	if !info.Mode().IsRegular() {
		return uuid.Nil, fmt.Errorf("%w: %q is not a regular file", file.ErrIngestFailure, in.SourcePath)
	}

	id := r.newID()
	ext := filepath.Ext(in.SourcePath)
	name := id.String() + ext
	dest := filepath.Join(r.root, name)

	if err := moveFile(in.SourcePath, dest); err != nil {
		return uuid.Nil, fmt.Errorf("%w: move %q: %w", file.ErrIngestFailure, in.SourcePath, err)
	}

	stored, err := os.Stat(dest)
	if err != nil {
		r.giveBack(ctx, dest, in.SourcePath)
		return uuid.Nil, fmt.Errorf("%w: stat stored file: %w", file.ErrIngestFailure, err)
	}

	created := r.now()
	d := model.FileDescriptor{
		ID:               id,
		StoredFilename:   name,
		OriginalFilename: in.OriginalFilename,
		DisplayTitle:     in.DisplayTitle,
		SourceID:         in.SourceID,
		Extension:        ext,
		CreatedAt:        created,
		ExpiresAt:        created.Add(r.ttl),
		SizeBytes:        stored.Size(),
	}

	r.mu.Lock()
	r.entries[id] = d
	if err := r.store.Persist(ctx, maps.Clone(r.entries)); err != nil {
		delete(r.entries, id)
		r.mu.Unlock()
		r.giveBack(ctx, dest, in.SourcePath)
		return uuid.Nil, fmt.Errorf("%w: %w", file.ErrIngestFailure, err)
	}
	r.mu.Unlock()

	logger.Infof(ctx, "📥 stored %q as #%s (%d bytes, expires %s)", in.OriginalFilename, id, d.SizeBytes, d.ExpiresAt.Format(time.RFC3339))
	return id, nil
}

// giveBack returns a moved file to the caller after a failed ingestion.
func (r *FileRepository) giveBack(ctx context.Context, dest, source string) {
	if err := moveFile(dest, source); err != nil {
		logger.Warnf(ctx, "⚠️  could not hand %q back to %q, removing it: %v", dest, source, err)
		if err := removeFile(dest); err != nil {
			logger.Errorf(ctx, "❌  failed to remove orphan %q: %v", dest, err)
		}
	}
}

// Resolve returns the on-disk path of a live file.
func (r *FileRepository) Resolve(ctx context.Context, id uuid.UUID) (string, bool) {
	r.mu.RLock()
	d, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return "", false
	}
	return r.present(ctx, d)
}

// ResolvePrefix finds the live file whose stored name starts with prefix.
// With several candidates the lexically smallest name wins.
func (r *FileRepository) ResolvePrefix(ctx context.Context, prefix string) (string, bool) {
	if prefix == "" || strings.HasPrefix(prefix, ".") {
		return "", false
	}

	if len(prefix) == len(uuid.Nil.String()) {
		if id, err := uuid.Parse(prefix); err == nil {
			return r.Resolve(ctx, id)
		}
	}

	now := r.now()
	var best *model.FileDescriptor
	r.mu.RLock()
	for _, d := range r.entries {
		if !strings.HasPrefix(d.StoredFilename, prefix) || d.Expired(now) {
			continue
		}
		if best == nil || d.StoredFilename < best.StoredFilename {
			cp := d
			best = &cp
		}
	}
	r.mu.RUnlock()

	if best == nil {
		return "", false
	}
	return r.present(ctx, *best)
}

// Describe returns a copy of the descriptor of a live file.
func (r *FileRepository) Describe(ctx context.Context, id uuid.UUID) (model.FileDescriptor, bool) {
	r.mu.RLock()
	d, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return model.FileDescriptor{}, false
	}
	if _, ok := r.present(ctx, d); !ok {
		return model.FileDescriptor{}, false
	}
	return d, true
}

// present reports the path of d when it is not expired and its file still exists.
func (r *FileRepository) present(ctx context.Context, d model.FileDescriptor) (string, bool) {
	if d.Expired(r.now()) {
		return "", false
	}
	path := filepath.Join(r.root, d.StoredFilename)
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf(ctx, "⚠️  stat %q failed: %v", path, err)
		}
		return "", false
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Delete removes the file and its descriptor. It reports whether a descriptor existed.
func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.entries[id]
	if !ok {
		return false, nil
	}

	r.removeStored(ctx, d)
	delete(r.entries, id)

	if err := r.store.Persist(ctx, maps.Clone(r.entries)); err != nil {
		return true, err
	}
	logger.Infof(ctx, "🗑️  deleted file #%s", id)
	return true, nil
}

// SweepExpired deletes every descriptor strictly past its expiry at now and
// writes the metadata once for the whole batch.
func (r *FileRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.entries {
		if !d.Expired(now) {
			continue
		}
		r.removeStored(ctx, d)
		delete(r.entries, id)
		removed++
		logger.Infof(ctx, "🗑️  deleted expired %q (#%s)", d.DisplayTitle, id)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := r.store.Persist(ctx, maps.Clone(r.entries)); err != nil {
		return removed, err
	}
	logger.Infof(ctx, "🧹 cleaned up %d expired file(s)", removed)
	return removed, nil
}

// Clear removes every stored file, tracked or not, and empties the metadata.
func (r *FileRepository) Clear(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dirEntries, err := os.ReadDir(r.root)
	if err != nil {
		return 0, fmt.Errorf("list upload dir %q: %w", r.root, err)
	}

	removed := 0
	for _, e := range dirEntries {
		if strings.HasPrefix(e.Name(), ".") || !e.Type().IsRegular() {
			continue
		}
		if err := removeFile(filepath.Join(r.root, e.Name())); err != nil {
			logger.Warnf(ctx, "⚠️  could not remove %q: %v", e.Name(), err)
			continue
		}
		removed++
	}

	r.entries = make(map[uuid.UUID]model.FileDescriptor)
	if err := r.store.Persist(ctx, map[uuid.UUID]model.FileDescriptor{}); err != nil {
		return removed, err
	}
	logger.Infof(ctx, "🧹 cleared %d file(s) from %q", removed, r.root)
	return removed, nil
}

// Stats sums the recorded sizes; it does not stat the disk.
func (r *FileRepository) Stats(ctx context.Context) model.FileStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, d := range r.entries {
		total += d.SizeBytes
	}
	return model.FileStats{
		TotalFiles:     len(r.entries),
		TotalSizeBytes: total,
		TTLHours:       int(r.ttl.Hours()),
	}
}

// removeStored deletes the file behind d. A file that is already gone is fine.
func (r *FileRepository) removeStored(ctx context.Context, d model.FileDescriptor) {
	path := filepath.Join(r.root, d.StoredFilename)
	if err := removeFile(path); err != nil {
		logger.Warnf(ctx, "⚠️  could not remove %q: %v", path, err)
	}
}
