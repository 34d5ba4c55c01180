package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
)

// DeleteFileHandler removes a file before it expires.
func DeleteFileHandler(svc port.FileDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.FileUUIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteFile(r.Context(), id); err != nil {
			if errors.Is(err, file.ErrNotFound) {
				WriteNotFound(w)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Failed to delete file", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted file #%s", id)
	}
}
