package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
)

const streamChunkSize = 64 * 1024

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mp3":  "audio/mpeg",
	".webm": "video/webm",
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// serveFile writes the file at path, honouring a single byte Range.
func serveFile(w http.ResponseWriter, r *http.Request, path string, attachment bool) {
	ctx := r.Context()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteNotFound(w)
			return
		}
		WriteError(w, http.StatusInternalServerError, "Could not open file", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Could not stat file", err)
		return
	}
	size := info.Size()
	name := filepath.Base(path)

	span := byteRange{start: 0, end: size - 1}
	status := http.StatusOK
	if raw := r.Header.Get("Range"); raw != "" {
		span, err = parseRange(raw, size)
		if err != nil {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			WriteError(w, http.StatusRequestedRangeNotSatisfiable, "Requested range not satisfiable", nil)
			return
		}
		status = http.StatusPartialContent
	}

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}

	h := w.Header()
	h.Set("Content-Type", contentTypeFor(name))
	h.Set("Content-Length", strconv.FormatInt(span.length(), 10))
	h.Set("Accept-Ranges", "bytes")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	h.Set("Cache-Control", "public, max-age=3600")
	h.Set("ETag", fmt.Sprintf("\"%d-%d\"", info.ModTime().Unix(), size))
	if status == http.StatusPartialContent {
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", span.start, span.end, size))
	}
	w.WriteHeader(status)

	if r.Method == http.MethodHead || span.length() <= 0 {
		return
	}

	n, err := copySpan(ctx, w, f, span)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debugf(ctx, "client went away after %d/%d bytes of %s", n, span.length(), name)
			return
		}
		logger.Warnf(ctx, "⚠️  streaming %s stopped after %d/%d bytes: %v", name, n, span.length(), err)
	}
}

// copySpan streams exactly span from f in fixed-size chunks and stops as soon
// as the request context is done or the client stops accepting bytes.
func copySpan(ctx context.Context, w io.Writer, f io.ReaderAt, span byteRange) (int64, error) {
	src := &ctxReader{ctx: ctx, r: io.NewSectionReader(f, span.start, span.length())}
	buf := make([]byte, streamChunkSize)
	// hide io.ReaderFrom so the chunk size is honoured
	return io.CopyBuffer(struct{ io.Writer }{w}, src, buf)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
