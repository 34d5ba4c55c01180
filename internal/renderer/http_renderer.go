package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// locator reports whether a file is still served.
type locator interface {
	Resolve(ctx context.Context, id uuid.UUID) (string, bool)
}

type httpRenderer struct {
	cache port.Cache
	files locator
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache, files locator) port.HTTPRenderer {
	return &httpRenderer{cache: cache, files: files}
}

// RenderDescribeFile fetches file details either from cache or from the wrapped
// use case. It returns the JSON encoded output and a quoted ETag string.
// Cached details are only served while the file itself is still present.
func (r *httpRenderer) RenderDescribeFile(ctx context.Context, describer port.FileDescriber, id uuid.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetFileDetails(ctx, id)
	etag, errEtag := r.cache.GetEtagFileDetails(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		if _, ok := r.files.Resolve(ctx, id); ok {
			return raw, etag, nil
		}
		r.evict(ctx, id)
		return nil, "", file.ErrNotFound
	}

	out, err := describer.DescribeFile(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	r.cache.SetFileDetails(ctx, id, raw, out.ExpiresAt)
	r.cache.SetEtagFileDetails(ctx, id, etag, out.ExpiresAt)

	return raw, etag, nil
}

func (r *httpRenderer) evict(ctx context.Context, id uuid.UUID) {
	if err := r.cache.DeleteFileDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting stale cache for file #%s: %v", id, err)
	}
	if err := r.cache.DeleteEtagFileDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting stale etag cache for file #%s: %v", id, err)
	}
}
