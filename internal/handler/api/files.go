package api

import (
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

// StreamFileHandler serves a stored file inline, for playback.
func StreamFileHandler(files port.FileResolver) http.HandlerFunc {
	return fileHandler(files, false)
}

// DownloadFileHandler serves a stored file as an attachment.
func DownloadFileHandler(files port.FileResolver) http.HandlerFunc {
	return fileHandler(files, true)
}

func fileHandler(files port.FileResolver, attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.FileIDFromContext(r.Context())
		if !ok {
			WriteNotFound(w)
			return
		}

		path, ok := files.ResolvePrefix(r.Context(), id)
		if !ok {
			WriteNotFound(w)
			return
		}

		serveFile(w, r, path, attachment)
	}
}
